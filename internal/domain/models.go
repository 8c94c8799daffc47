package domain

import "path/filepath"

// Package is a single publishable crate and the directory it lives in,
// relative to the repository root
type Package struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	Dir  string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// Path resolves the package directory against root
func (p Package) Path(root string) string {
	return filepath.Join(root, filepath.FromSlash(p.Dir))
}

// String returns the package name
func (p Package) String() string {
	return p.Name
}

// Group is a named, ordered set of packages published together
type Group struct {
	Name     string    `json:"name" yaml:"name" mapstructure:"name"`
	Packages []Package `json:"packages" yaml:"packages" mapstructure:"packages"`
}

// NewGroup builds a group whose package directories share prefix.
// An empty prefix places the packages at the repository root.
func NewGroup(name, prefix string, names ...string) Group {
	pkgs := make([]Package, 0, len(names))
	for _, n := range names {
		dir := n
		if prefix != "" {
			dir = prefix + "/" + n
		}
		pkgs = append(pkgs, Package{Name: n, Dir: dir})
	}
	return Group{Name: name, Packages: pkgs}
}

// Plan is the ordered list of groups for a release
type Plan struct {
	groups []Group
}

// NewPlan copies groups into a plan so later changes to the slice
// don't leak into it
func NewPlan(groups ...Group) Plan {
	cp := make([]Group, 0, len(groups))
	for _, g := range groups {
		pkgs := make([]Package, len(g.Packages))
		copy(pkgs, g.Packages)
		cp = append(cp, Group{Name: g.Name, Packages: pkgs})
	}
	return Plan{groups: cp}
}

// Groups returns a copy of the plan's groups in publish order
func (p Plan) Groups() []Group {
	return NewPlan(p.groups...).groups
}

// Packages flattens the plan into publish order
func (p Plan) Packages() []Package {
	var out []Package
	for _, g := range p.groups {
		out = append(out, g.Packages...)
	}
	return out
}

// Len returns the total number of packages
func (p Plan) Len() int {
	n := 0
	for _, g := range p.groups {
		n += len(g.Packages)
	}
	return n
}

// Validate checks that the plan has at least one package and that no
// package is missing its name or directory
func (p Plan) Validate() error {
	if p.Len() == 0 {
		return ErrEmptyPlan
	}
	for _, g := range p.groups {
		for _, pkg := range g.Packages {
			if pkg.Name == "" {
				return NewValidationError("groups."+g.Name, "package name cannot be empty")
			}
			if pkg.Dir == "" {
				return NewValidationError("groups."+g.Name+"."+pkg.Name, "package directory cannot be empty")
			}
		}
	}
	return nil
}

// Group names used by the default plan
const (
	GroupBase      = "base"
	GroupUtility   = "utility"
	GroupAggregate = "aggregate"
)

// DefaultGroups returns the three release groups in publish order:
// the derive macros under packages/, then the library, then the
// aggregate crate
func DefaultGroups() []Group {
	return []Group{
		NewGroup(GroupBase, "packages", "cw-orc-contract-derive", "cw-orc-fns-derive"),
		NewGroup(GroupUtility, "", "cw-orc"),
		NewGroup(GroupAggregate, "", "cw-plus-orchestrate"),
	}
}

// DefaultPlan returns the plan built from DefaultGroups
func DefaultPlan() Plan {
	return NewPlan(DefaultGroups()...)
}

// Release describes the outcome of a release run
type Release struct {
	Published []Package `json:"published" yaml:"published"`
	Version   string    `json:"version,omitempty" yaml:"version,omitempty"`
	Tag       string    `json:"tag,omitempty" yaml:"tag,omitempty"`
	Pushed    bool      `json:"pushed" yaml:"pushed"`
	DryRun    bool      `json:"dry_run" yaml:"dry_run"`
}

// TagName joins prefix and version into a tag name
func TagName(prefix, version string) string {
	return prefix + version
}
