package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/cw-release/internal/domain"
	"github.com/quantmind-br/cw-release/internal/manifest"
	"github.com/quantmind-br/cw-release/internal/mocks"
)

func writeCrate(t *testing.T, root, dir, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(dir))
	require.NoError(t, os.MkdirAll(path, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(path, manifest.FileName), []byte(content), 0644))
}

func statusByName(results []CheckResult) map[string]CheckResult {
	out := make(map[string]CheckResult, len(results))
	for _, r := range results {
		out[r.Name] = r
	}
	return out
}

func TestDoctor_Healthy(t *testing.T) {
	root := writeManifest(t, "[workspace.package]\nversion = \"1.2.3\"\n")
	for _, pkg := range domain.DefaultPlan().Packages() {
		writeCrate(t, root, pkg.Dir, "[package]\nname = \""+pkg.Name+"\"\nversion = { workspace = true }\n")
	}

	remotes := &mocks.MockRemoteInspector{}
	remotes.On("RemoteURL", "origin").Return("git@github.com:example/cw-orc.git", nil)

	results := Doctor(DoctorOptions{
		Plan:          domain.DefaultPlan(),
		Root:          root,
		Manifest:      filepath.Join(root, manifest.FileName),
		TagPrefix:     "v",
		Remote:        "origin",
		Prerequisites: []string{"cargo"},
		Remotes:       remotes,
		LookPath:      foundAll,
	})

	assert.True(t, Healthy(results))
	require.Len(t, results, 1+1+4+1)

	byName := statusByName(results)
	assert.Equal(t, StatusOK, byName["cargo"].Status)
	assert.Equal(t, "1.2.3 (tag v1.2.3)", byName["release version"].Detail)
	assert.Equal(t, manifest.InheritedVersion, byName["package cw-orc"].Detail)
	assert.Equal(t, "git@github.com:example/cw-orc.git", byName["remote origin"].Detail)
	remotes.AssertExpectations(t)
}

func TestDoctor_Problems(t *testing.T) {
	root := writeManifest(t, "[workspace]\nmembers = []\n")
	writeCrate(t, root, "packages/cw-orc-contract-derive", "[package]\nname = \"cw-orc-contract-derive\"\npublish = false\n")
	writeCrate(t, root, "packages/cw-orc-fns-derive", "[package]\nname = \"renamed\"\nversion = \"0.1.0\"\n")
	writeCrate(t, root, "cw-orc", "[package\n")

	remotes := &mocks.MockRemoteInspector{}
	remotes.On("RemoteURL", "origin").Return("", domain.ErrRemoteNotFound)

	results := Doctor(DoctorOptions{
		Plan:          domain.DefaultPlan(),
		Root:          root,
		Manifest:      filepath.Join(root, manifest.FileName),
		TagPrefix:     "v",
		Remote:        "origin",
		Prerequisites: []string{"cargo"},
		Remotes:       remotes,
		LookPath:      func(string) (string, error) { return "", errors.New("not found") },
	})

	assert.False(t, Healthy(results))

	byName := statusByName(results)
	assert.Equal(t, StatusWarn, byName["cargo"].Status)
	assert.Equal(t, StatusFail, byName["release version"].Status)
	assert.Equal(t, StatusWarn, byName["package packages/cw-orc-contract-derive"].Status)
	assert.Equal(t, StatusWarn, byName["package packages/cw-orc-fns-derive"].Status)
	assert.Contains(t, byName["package packages/cw-orc-fns-derive"].Detail, "renamed")
	assert.Equal(t, StatusFail, byName["package cw-orc"].Status)
	assert.Equal(t, StatusFail, byName["package cw-plus-orchestrate"].Status)
	assert.Equal(t, "directory not found", byName["package cw-plus-orchestrate"].Detail)
	assert.Equal(t, StatusFail, byName["remote origin"].Status)
}

func TestDoctor_NoRepository(t *testing.T) {
	results := Doctor(DoctorOptions{
		Plan:     domain.NewPlan(domain.NewGroup("utility", "", "cw-orc")),
		Root:     t.TempDir(),
		Manifest: filepath.Join(t.TempDir(), manifest.FileName),
		Remote:   "origin",
	})

	byName := statusByName(results)
	assert.Equal(t, StatusFail, byName["remote origin"].Status)
	assert.Equal(t, domain.ErrNotRepository.Error(), byName["remote origin"].Detail)
}

func TestHealthy(t *testing.T) {
	assert.True(t, Healthy(nil))
	assert.True(t, Healthy([]CheckResult{{Status: StatusOK}, {Status: StatusWarn}}))
	assert.False(t, Healthy([]CheckResult{{Status: StatusOK}, {Status: StatusFail}}))
}
