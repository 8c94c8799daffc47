package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/quantmind-br/cw-release/internal/domain"
	"github.com/quantmind-br/cw-release/internal/utils"
)

// CargoPublisher runs the registry publish command in each package directory
type CargoPublisher struct {
	argv   []string
	stdout io.Writer
	stderr io.Writer
	dryRun bool
	logger *utils.Logger
}

// CargoOptions contains options for creating a CargoPublisher
type CargoOptions struct {
	// Command is the publish command line, e.g. "cargo publish --locked"
	Command string
	Stdout  io.Writer
	Stderr  io.Writer
	DryRun  bool
	Logger  *utils.Logger
}

// NewCargoPublisher parses the command line and creates a CargoPublisher
func NewCargoPublisher(opts CargoOptions) (*CargoPublisher, error) {
	argv, err := shellwords.Parse(opts.Command)
	if err != nil {
		return nil, fmt.Errorf("invalid publish command %q: %w", opts.Command, err)
	}
	if len(argv) == 0 {
		return nil, domain.NewValidationError("registry.command", "cannot be empty")
	}

	p := &CargoPublisher{
		argv:   argv,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		dryRun: opts.DryRun,
		logger: opts.Logger,
	}
	if p.stdout == nil {
		p.stdout = os.Stdout
	}
	if p.stderr == nil {
		p.stderr = os.Stderr
	}
	if p.logger == nil {
		p.logger = utils.NewNopLogger()
	}
	return p, nil
}

// Command returns the parsed command line
func (p *CargoPublisher) Command() []string {
	return append([]string(nil), p.argv...)
}

// Binary returns the executable the publisher runs
func (p *CargoPublisher) Binary() string {
	return p.argv[0]
}

// Publish runs the publish command with dir as its working directory.
// The working directory of this process is left untouched.
func (p *CargoPublisher) Publish(ctx context.Context, pkg domain.Package, dir string) error {
	log := p.logger.WithPackage(pkg.Name, pkg.Dir)

	if p.dryRun {
		log.Info().Str("command", strings.Join(p.argv, " ")).Msg("Dry run, skipping publish")
		return nil
	}

	cmd := exec.CommandContext(ctx, p.argv[0], p.argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr

	log.Debug().Strs("argv", p.argv).Msg("Running publish command")

	if err := cmd.Run(); err != nil {
		exitCode := 0
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return domain.NewPublishError(pkg, exitCode, err)
	}

	return nil
}
