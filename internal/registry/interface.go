package registry

import (
	"context"

	"github.com/quantmind-br/cw-release/internal/domain"
)

// Publisher publishes a single package to the registry. dir is the
// absolute package directory the publish runs in.
type Publisher interface {
	Publish(ctx context.Context, pkg domain.Package, dir string) error
}
