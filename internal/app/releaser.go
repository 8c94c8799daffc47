package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/quantmind-br/cw-release/internal/domain"
	"github.com/quantmind-br/cw-release/internal/git"
	"github.com/quantmind-br/cw-release/internal/manifest"
	"github.com/quantmind-br/cw-release/internal/registry"
	"github.com/quantmind-br/cw-release/internal/utils"
)

// ConfirmFunc approves a plan before anything is published. Returning an
// error stops the release.
type ConfirmFunc func(plan domain.Plan, remote string) error

// Releaser publishes every package in the plan, then tags the release
type Releaser struct {
	plan          domain.Plan
	root          string
	manifestPath  string
	remote        string
	tagPrefix     string
	prerequisites []string
	publisher     registry.Publisher
	tagger        git.Tagger
	confirm       ConfirmFunc
	out           io.Writer
	progress      io.Writer
	lookPath      func(string) (string, error)
	logger        *utils.Logger
	opts          domain.CommonOptions
}

// ReleaserOptions contains options for creating a releaser
type ReleaserOptions struct {
	domain.CommonOptions
	Plan domain.Plan
	// Root is the repository root package directories are relative to
	Root string
	// Manifest is the file the version is read from, relative to Root
	// unless absolute
	Manifest      string
	Remote        string
	TagPrefix     string
	Prerequisites []string
	Publisher     registry.Publisher
	Tagger        git.Tagger
	Confirm       ConfirmFunc
	// Out receives the per-package progress messages
	Out io.Writer
	// Progress receives the progress bar; nil disables it
	Progress io.Writer
	LookPath func(string) (string, error)
	Logger   *utils.Logger
}

// NewReleaser creates a new releaser with the given options
func NewReleaser(opts ReleaserOptions) (*Releaser, error) {
	if err := opts.Plan.Validate(); err != nil {
		return nil, err
	}
	if opts.Publisher == nil {
		return nil, fmt.Errorf("publisher is required")
	}
	if opts.Tagger == nil && !opts.NoTag && !opts.DryRun {
		return nil, fmt.Errorf("tagger is required unless tagging is disabled")
	}
	if opts.Remote == "" {
		return nil, domain.NewValidationError("remote", "cannot be empty")
	}

	root, err := utils.ResolveDir(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve release root: %w", err)
	}

	manifestPath := opts.Manifest
	if manifestPath == "" {
		manifestPath = manifest.FileName
	}
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(root, manifestPath)
	}

	r := &Releaser{
		plan:          opts.Plan,
		root:          root,
		manifestPath:  manifestPath,
		remote:        opts.Remote,
		tagPrefix:     opts.TagPrefix,
		prerequisites: opts.Prerequisites,
		publisher:     opts.Publisher,
		tagger:        opts.Tagger,
		confirm:       opts.Confirm,
		out:           opts.Out,
		progress:      opts.Progress,
		lookPath:      opts.LookPath,
		logger:        opts.Logger,
		opts:          opts.CommonOptions,
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.lookPath == nil {
		r.lookPath = exec.LookPath
	}
	if r.logger == nil {
		r.logger = utils.NewNopLogger()
	}
	r.logger = r.logger.WithComponent("releaser")

	return r, nil
}

// Root returns the resolved repository root
func (r *Releaser) Root() string {
	return r.root
}

// ManifestPath returns the resolved manifest path
func (r *Releaser) ManifestPath() string {
	return r.manifestPath
}

// Run executes the release: publish every group in order, then read the
// version and create and push the tag. The first failure stops the run;
// the returned Release lists what was published before it.
func (r *Releaser) Run(ctx context.Context) (*domain.Release, error) {
	startTime := time.Now()

	r.logger.Info().
		Str("root", r.root).
		Int("packages", r.plan.Len()).
		Bool("dry_run", r.opts.DryRun).
		Msg("Starting release")

	r.CheckPrerequisites()

	if r.opts.Confirm && r.confirm != nil {
		if err := r.confirm(r.plan, r.remote); err != nil {
			return nil, err
		}
	}

	release := &domain.Release{DryRun: r.opts.DryRun}

	if err := r.publishAll(ctx, release); err != nil {
		return release, err
	}
	if r.opts.DryRun {
		fmt.Fprintln(r.out, "Dry run complete, nothing was published")
	} else {
		fmt.Fprintln(r.out, "All packages published")
	}

	version, err := manifest.ReadVersion(r.manifestPath)
	if err != nil {
		return release, fmt.Errorf("failed to extract release version: %w", err)
	}
	release.Version = version
	release.Tag = domain.TagName(r.tagPrefix, version)

	log := r.logger.WithTag(release.Tag)

	if r.opts.NoTag {
		log.Info().Msg("Tagging disabled, skipping tag")
		return release, nil
	}
	if r.opts.DryRun {
		log.Info().Str("remote", r.remote).Msg("Dry run, skipping tag creation and push")
		return release, nil
	}

	if err := r.tagger.CreateTag(ctx, release.Tag); err != nil {
		return release, err
	}
	fmt.Fprintf(r.out, "Created tag %s\n", release.Tag)

	if err := r.tagger.PushTag(ctx, r.remote, release.Tag); err != nil {
		return release, err
	}
	release.Pushed = true
	fmt.Fprintf(r.out, "Pushed tag %s to %s\n", release.Tag, r.remote)

	log.Info().
		Int("published", len(release.Published)).
		Dur("duration", time.Since(startTime)).
		Msg("Release completed")

	return release, nil
}

func (r *Releaser) publishAll(ctx context.Context, release *domain.Release) error {
	// Debug logs would tear through the bar
	if r.progress != nil && !r.opts.Verbose {
		bar := utils.NewProgressBar(r.plan.Len(), utils.DescPublishing, r.progress)
		defer func() { _ = bar.Finish() }()

		return r.publishGroups(ctx, release, func() { _ = bar.Add(1) })
	}
	return r.publishGroups(ctx, release, func() {})
}

func (r *Releaser) publishGroups(ctx context.Context, release *domain.Release, done func()) error {
	action := "Publishing"
	if r.opts.DryRun {
		action = "Would publish"
	}

	for _, group := range r.plan.Groups() {
		r.logger.Debug().
			Str("group", group.Name).
			Int("packages", len(group.Packages)).
			Msg("Publishing group")

		for _, pkg := range group.Packages {
			if err := ctx.Err(); err != nil {
				return err
			}

			fmt.Fprintf(r.out, "%s %s\n", action, pkg.Name)
			if err := r.publisher.Publish(ctx, pkg, pkg.Path(r.root)); err != nil {
				r.logger.WithPackage(pkg.Name, pkg.Dir).Error().Err(err).Msg("Publish failed")
				return err
			}

			release.Published = append(release.Published, pkg)
			done()
		}
	}
	return nil
}

// CheckPrerequisites looks up every prerequisite tool and returns the
// missing ones. Missing tools are logged as warnings only.
func (r *Releaser) CheckPrerequisites() []string {
	var missing []string
	for _, tool := range r.prerequisites {
		path, err := r.lookPath(tool)
		if err != nil {
			r.logger.Warn().Str("tool", tool).Msg("Prerequisite not found, continuing")
			missing = append(missing, tool)
			continue
		}
		r.logger.Debug().Str("tool", tool).Str("path", path).Msg("Prerequisite found")
	}
	return missing
}
