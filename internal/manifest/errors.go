package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest file not found")

	// ErrVersionNotFound indicates no quoted version could be extracted
	ErrVersionNotFound = errors.New("no version found in manifest")

	// ErrInvalidFormat indicates the manifest is not valid TOML
	ErrInvalidFormat = errors.New("manifest must be valid TOML")
)
