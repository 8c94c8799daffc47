package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/quantmind-br/cw-release/internal/domain"
)

// DefaultUsername is sent with a token when no username is configured
const DefaultUsername = "token"

// RealClient implements Tagger using go-git
type RealClient struct {
	repo     *git.Repository
	auth     transport.AuthMethod
	progress io.Writer
}

// ClientOptions contains options for opening a repository
type ClientOptions struct {
	// Username and Token enable HTTP basic auth for pushes. When Token is
	// empty GITHUB_TOKEN is used if set.
	Username string
	Token    string
	Progress io.Writer
}

// Open opens the repository containing root, searching parent directories
// for the .git directory
func Open(root string, opts ClientOptions) (*RealClient, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotRepository, root)
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return NewClient(repo, opts), nil
}

// NewClient wraps an already opened repository
func NewClient(repo *git.Repository, opts ClientOptions) *RealClient {
	return &RealClient{
		repo:     repo,
		auth:     authMethod(opts),
		progress: opts.Progress,
	}
}

func authMethod(opts ClientOptions) transport.AuthMethod {
	token := opts.Token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil
	}

	username := opts.Username
	if username == "" {
		username = DefaultUsername
	}
	return &githttp.BasicAuth{
		Username: username,
		Password: token,
	}
}

// CreateTag creates a lightweight tag at HEAD
func (c *RealClient) CreateTag(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return domain.NewTagError(name, domain.TagOpCreate, "", err)
	}

	head, err := c.repo.Head()
	if err != nil {
		return domain.NewTagError(name, domain.TagOpCreate, "", fmt.Errorf("resolve HEAD: %w", err))
	}

	if _, err := c.repo.CreateTag(name, head.Hash(), nil); err != nil {
		if errors.Is(err, git.ErrTagExists) {
			err = fmt.Errorf("%w: %w", domain.ErrTagExists, err)
		}
		return domain.NewTagError(name, domain.TagOpCreate, "", err)
	}

	return nil
}

// PushTag pushes refs/tags/<name> to remote. A remote that already has
// the tag at the same commit counts as success.
func (c *RealClient) PushTag(ctx context.Context, remote, name string) error {
	ref := plumbing.NewTagReferenceName(name)
	spec := config.RefSpec(fmt.Sprintf("%s:%s", ref, ref))

	err := c.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{spec},
		Auth:       c.auth,
		Progress:   c.progress,
	})
	switch {
	case err == nil, errors.Is(err, git.NoErrAlreadyUpToDate):
		return nil
	case errors.Is(err, git.ErrRemoteNotFound):
		err = fmt.Errorf("%w: %w", domain.ErrRemoteNotFound, err)
	}
	return domain.NewTagError(name, domain.TagOpPush, remote, err)
}

// RemoteURL returns the first URL configured for remote
func (c *RealClient) RemoteURL(remote string) (string, error) {
	r, err := c.repo.Remote(remote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", fmt.Errorf("%w: %s", domain.ErrRemoteNotFound, remote)
		}
		return "", err
	}

	urls := r.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: %s has no URL", domain.ErrRemoteNotFound, remote)
	}
	return urls[0], nil
}
