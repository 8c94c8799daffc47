package app

import (
	"fmt"
	"os/exec"

	"github.com/quantmind-br/cw-release/internal/domain"
	"github.com/quantmind-br/cw-release/internal/git"
	"github.com/quantmind-br/cw-release/internal/manifest"
	"github.com/quantmind-br/cw-release/internal/utils"
)

// CheckStatus is the outcome of a single doctor check
type CheckStatus string

// Check statuses
const (
	StatusOK   CheckStatus = "OK"
	StatusWarn CheckStatus = "WARN"
	StatusFail CheckStatus = "FAILED"
)

// CheckResult is one line of the doctor report
type CheckResult struct {
	Name   string
	Status CheckStatus
	Detail string
}

// DoctorOptions contains the inputs for environment checks
type DoctorOptions struct {
	Plan          domain.Plan
	Root          string
	Manifest      string
	TagPrefix     string
	Remote        string
	Prerequisites []string
	// Remotes may be nil when the root is not a git repository
	Remotes  git.RemoteInspector
	LookPath func(string) (string, error)
}

// Doctor runs every check and returns the results in a stable order:
// tools, manifest version, packages, remote
func Doctor(opts DoctorOptions) []CheckResult {
	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var results []CheckResult

	for _, tool := range opts.Prerequisites {
		if path, err := lookPath(tool); err == nil {
			results = append(results, CheckResult{Name: tool, Status: StatusOK, Detail: path})
		} else {
			results = append(results, CheckResult{Name: tool, Status: StatusWarn, Detail: "not found in PATH"})
		}
	}

	if version, err := manifest.ReadVersion(opts.Manifest); err == nil {
		results = append(results, CheckResult{
			Name:   "release version",
			Status: StatusOK,
			Detail: fmt.Sprintf("%s (tag %s)", version, domain.TagName(opts.TagPrefix, version)),
		})
	} else {
		results = append(results, CheckResult{Name: "release version", Status: StatusFail, Detail: err.Error()})
	}

	for _, pkg := range opts.Plan.Packages() {
		results = append(results, checkPackage(pkg, pkg.Path(opts.Root)))
	}

	results = append(results, checkRemote(opts.Remotes, opts.Remote))

	return results
}

func checkPackage(pkg domain.Package, dir string) CheckResult {
	name := "package " + pkg.Dir
	if !utils.DirExists(dir) {
		return CheckResult{Name: name, Status: StatusFail, Detail: "directory not found"}
	}

	crate, err := manifest.LoadCrate(dir)
	if err != nil {
		return CheckResult{Name: name, Status: StatusFail, Detail: err.Error()}
	}
	if !crate.Publishable() {
		return CheckResult{Name: name, Status: StatusWarn, Detail: "publish is disabled in Cargo.toml"}
	}
	if crate.Package.Name != "" && crate.Package.Name != pkg.Name {
		return CheckResult{
			Name:   name,
			Status: StatusWarn,
			Detail: fmt.Sprintf("crate is named %s", crate.Package.Name),
		}
	}
	return CheckResult{Name: name, Status: StatusOK, Detail: crate.Version()}
}

func checkRemote(remotes git.RemoteInspector, remote string) CheckResult {
	name := "remote " + remote
	if remotes == nil {
		return CheckResult{Name: name, Status: StatusFail, Detail: domain.ErrNotRepository.Error()}
	}
	url, err := remotes.RemoteURL(remote)
	if err != nil {
		return CheckResult{Name: name, Status: StatusFail, Detail: err.Error()}
	}
	return CheckResult{Name: name, Status: StatusOK, Detail: url}
}

// Healthy reports whether no check failed
func Healthy(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return false
		}
	}
	return true
}
