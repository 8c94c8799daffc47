package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileName is the manifest read from the repository root
const FileName = "Cargo.toml"

const versionToken = "version"

// ExtractVersion returns the release version from manifest content.
// It fails with ErrVersionNotFound when there is no line containing
// "version" or that line has no non-empty quoted value.
func ExtractVersion(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, versionToken) {
			continue
		}
		return versionFromLine(line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to scan manifest: %w", err)
	}
	return "", fmt.Errorf("%w: no line contains %q", ErrVersionNotFound, versionToken)
}

// versionFromLine applies the hyphen replacement and takes the first
// quoted substring. Only the first matching line is ever considered.
func versionFromLine(line string) (string, error) {
	line = strings.ReplaceAll(line, "-", "_")

	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", fmt.Errorf("%w: no quoted value in %q", ErrVersionNotFound, line)
	}
	end := strings.IndexByte(line[start+1:], '"')
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated quote in %q", ErrVersionNotFound, line)
	}

	version := line[start+1 : start+1+end]
	if version == "" {
		return "", fmt.Errorf("%w: empty quoted value in %q", ErrVersionNotFound, line)
	}
	return version, nil
}

// ReadVersion extracts the release version from the manifest at path
func ReadVersion(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", fmt.Errorf("failed to read manifest file: %w", err)
	}
	defer f.Close()

	return ExtractVersion(f)
}
