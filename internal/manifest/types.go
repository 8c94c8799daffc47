package manifest

// Crate is the subset of a Cargo manifest the release tooling reads
type Crate struct {
	Package   PackageSection   `toml:"package"`
	Workspace WorkspaceSection `toml:"workspace"`
}

// PackageSection is the [package] table. Version is either a string or
// an inline table such as { workspace = true }.
type PackageSection struct {
	Name        string `toml:"name"`
	Version     any    `toml:"version"`
	Description string `toml:"description"`
	Publish     any    `toml:"publish"`
}

// WorkspaceSection is the [workspace] table
type WorkspaceSection struct {
	Members []string               `toml:"members"`
	Package WorkspacePackageFields `toml:"package"`
}

// WorkspacePackageFields is the [workspace.package] table
type WorkspacePackageFields struct {
	Version string `toml:"version"`
}

// InheritedVersion is reported by Crate.Version for crates that take
// their version from the workspace
const InheritedVersion = "workspace"

// Version returns the crate version, InheritedVersion when it is taken
// from the workspace, or the workspace version for a virtual manifest
func (c *Crate) Version() string {
	switch v := c.Package.Version.(type) {
	case string:
		return v
	case map[string]any:
		if inherit, ok := v["workspace"].(bool); ok && inherit {
			return InheritedVersion
		}
	}
	return c.Workspace.Package.Version
}

// Publishable reports whether the crate allows publishing. Cargo treats
// publish = false, or an empty registry list, as unpublishable.
func (c *Crate) Publishable() bool {
	switch v := c.Package.Publish.(type) {
	case bool:
		return v
	case []any:
		return len(v) > 0
	}
	return true
}
