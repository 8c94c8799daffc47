// Package manifest reads release information from Cargo manifests.
//
// # Version Extraction
//
// The release version is taken from the repository root manifest with a
// line-oriented scan rather than a full TOML parse:
//
//  1. take the first line containing "version"
//  2. replace every "-" with "_"
//  3. take the first double-quoted substring and strip the quotes
//
// So a manifest containing
//
//	version = "1.2.0-beta"
//
// yields "1.2.0_beta", which becomes the tag v1.2.0_beta.
//
// # Crate Manifests
//
// LoadCrate parses a package's own Cargo.toml so commands like plan and
// doctor can show crate names and versions:
//
//	crate, err := manifest.LoadCrate("packages/cw-orc-fns-derive")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(crate.Package.Name, crate.Version())
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrFileNotFound: manifest file does not exist
//   - ErrVersionNotFound: no version line or no quoted value on it
//   - ErrInvalidFormat: file is not valid TOML
package manifest
