package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// LoadCrate reads and parses the Cargo.toml in dir
func LoadCrate(dir string) (*Crate, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	return ParseCrate(data)
}

// ParseCrate parses Cargo manifest content
func ParseCrate(data []byte) (*Crate, error) {
	var crate Crate
	if err := toml.Unmarshal(data, &crate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return &crate, nil
}
