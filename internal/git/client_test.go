package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/cw-release/internal/domain"
)

// initRepo creates a repository with a single commit and returns its path
func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("version = \"1.2.3\"\n"), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("Cargo.toml")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Release Bot", Email: "release@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir, repo
}

func TestOpen(t *testing.T) {
	t.Run("opens repository root", func(t *testing.T) {
		dir, _ := initRepo(t)
		client, err := Open(dir, ClientOptions{})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("detects repository from subdirectory", func(t *testing.T) {
		dir, _ := initRepo(t)
		sub := filepath.Join(dir, "packages", "cw-orc-fns-derive")
		require.NoError(t, os.MkdirAll(sub, 0755))

		client, err := Open(sub, ClientOptions{})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("not a repository", func(t *testing.T) {
		client, err := Open(t.TempDir(), ClientOptions{})
		assert.Nil(t, client)
		assert.ErrorIs(t, err, domain.ErrNotRepository)
	})
}

func TestAuthMethod(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		assert.Nil(t, authMethod(ClientOptions{}))
	})

	t.Run("configured token", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		auth := authMethod(ClientOptions{Username: "ci", Token: "secret"})
		require.IsType(t, &githttp.BasicAuth{}, auth)
		basic := auth.(*githttp.BasicAuth)
		assert.Equal(t, "ci", basic.Username)
		assert.Equal(t, "secret", basic.Password)
	})

	t.Run("falls back to GITHUB_TOKEN", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "from-env")
		auth := authMethod(ClientOptions{})
		require.IsType(t, &githttp.BasicAuth{}, auth)
		basic := auth.(*githttp.BasicAuth)
		assert.Equal(t, DefaultUsername, basic.Username)
		assert.Equal(t, "from-env", basic.Password)
	})
}

func TestRealClient_CreateTag(t *testing.T) {
	ctx := context.Background()

	t.Run("creates lightweight tag at HEAD", func(t *testing.T) {
		dir, repo := initRepo(t)
		client, err := Open(dir, ClientOptions{})
		require.NoError(t, err)

		require.NoError(t, client.CreateTag(ctx, "v1.2.3"))

		head, err := repo.Head()
		require.NoError(t, err)
		ref, err := repo.Tag("v1.2.3")
		require.NoError(t, err)
		assert.Equal(t, head.Hash(), ref.Hash())
	})

	t.Run("existing tag is an error", func(t *testing.T) {
		dir, _ := initRepo(t)
		client, err := Open(dir, ClientOptions{})
		require.NoError(t, err)

		require.NoError(t, client.CreateTag(ctx, "v1.2.3"))
		err = client.CreateTag(ctx, "v1.2.3")

		assert.ErrorIs(t, err, domain.ErrTagExists)
		var tagErr *domain.TagError
		require.ErrorAs(t, err, &tagErr)
		assert.Equal(t, domain.TagOpCreate, tagErr.Op)
		assert.Equal(t, "v1.2.3", tagErr.Tag)
	})

	t.Run("empty repository has no HEAD", func(t *testing.T) {
		dir := t.TempDir()
		_, err := git.PlainInit(dir, false)
		require.NoError(t, err)
		client, err := Open(dir, ClientOptions{})
		require.NoError(t, err)

		err = client.CreateTag(ctx, "v1.0.0")
		var tagErr *domain.TagError
		assert.ErrorAs(t, err, &tagErr)
	})

	t.Run("cancelled context", func(t *testing.T) {
		dir, _ := initRepo(t)
		client, err := Open(dir, ClientOptions{})
		require.NoError(t, err)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, client.CreateTag(cctx, "v1.2.3"), context.Canceled)
	})
}

func TestRealClient_PushTag(t *testing.T) {
	ctx := context.Background()

	t.Run("missing remote", func(t *testing.T) {
		dir, _ := initRepo(t)
		client, err := Open(dir, ClientOptions{})
		require.NoError(t, err)
		require.NoError(t, client.CreateTag(ctx, "v1.2.3"))

		err = client.PushTag(ctx, "origin", "v1.2.3")
		assert.ErrorIs(t, err, domain.ErrRemoteNotFound)
		var tagErr *domain.TagError
		require.ErrorAs(t, err, &tagErr)
		assert.Equal(t, domain.TagOpPush, tagErr.Op)
		assert.Equal(t, "origin", tagErr.Remote)
	})

	t.Run("pushes to local bare remote", func(t *testing.T) {
		if _, err := exec.LookPath("git-receive-pack"); err != nil {
			t.Skip("git-receive-pack not available")
		}

		dir, repo := initRepo(t)
		remoteDir := t.TempDir()
		bare, err := git.PlainInit(remoteDir, true)
		require.NoError(t, err)

		_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{remoteDir}})
		require.NoError(t, err)

		client, err := Open(dir, ClientOptions{})
		require.NoError(t, err)
		require.NoError(t, client.CreateTag(ctx, "v1.2.3"))
		require.NoError(t, client.PushTag(ctx, "origin", "v1.2.3"))

		ref, err := bare.Reference(plumbing.NewTagReferenceName("v1.2.3"), true)
		require.NoError(t, err)
		head, err := repo.Head()
		require.NoError(t, err)
		assert.Equal(t, head.Hash(), ref.Hash())

		// pushing again is a no-op
		assert.NoError(t, client.PushTag(ctx, "origin", "v1.2.3"))
	})
}

func TestRealClient_RemoteURL(t *testing.T) {
	dir, repo := initRepo(t)
	_, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://github.com/example/cw-orc.git"},
	})
	require.NoError(t, err)

	client, err := Open(dir, ClientOptions{})
	require.NoError(t, err)

	url, err := client.RemoteURL("origin")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/example/cw-orc.git", url)

	_, err = client.RemoteURL("upstream")
	assert.ErrorIs(t, err, domain.ErrRemoteNotFound)
}

// TestClientInterface verifies RealClient implements the package interfaces
func TestClientInterface(t *testing.T) {
	var _ Tagger = (*RealClient)(nil)
	var _ RemoteInspector = (*RealClient)(nil)
}
