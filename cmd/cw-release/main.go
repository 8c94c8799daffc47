package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/cw-release/internal/app"
	"github.com/quantmind-br/cw-release/internal/config"
	"github.com/quantmind-br/cw-release/internal/domain"
	gitclient "github.com/quantmind-br/cw-release/internal/git"
	"github.com/quantmind-br/cw-release/internal/registry"
	"github.com/quantmind-br/cw-release/internal/tui"
	"github.com/quantmind-br/cw-release/internal/utils"
	"github.com/quantmind-br/cw-release/pkg/version"
)

var (
	// Dependencies for testing
	execLookPath = exec.LookPath
	newPublisher = func(opts registry.CargoOptions) (registry.Publisher, error) {
		return registry.NewCargoPublisher(opts)
	}
	openTagger = func(root string, opts gitclient.ClientOptions) (gitclient.Tagger, error) {
		return gitclient.Open(root, opts)
	}
	openRemotes = func(root string) (gitclient.RemoteInspector, error) {
		return gitclient.Open(root, gitclient.ClientOptions{})
	}
	confirmRelease app.ConfirmFunc = tui.ConfirmRelease
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit status
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(viper.New())
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, domain.ErrHelpRequested) {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

// cli holds the state shared by the commands of one invocation
type cli struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	c := &cli{v: v}

	rootCmd := &cobra.Command{
		Use:   "cw-release [-h|--help]",
		Short: "Publish the workspace crates and tag the release",
		Long: `cw-release publishes the workspace crates to crates.io in a fixed order
(derive macros, then the library, then the aggregate crate), reads the
version from the root Cargo.toml and pushes the tag v<version> to origin.

Run without arguments to release with settings from the config file and
CWRELEASE_* environment variables. Use "cw-release publish" for flags.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsHelpInvocation(args) {
				fmt.Fprint(cmd.OutOrStdout(), app.Usage)
				return domain.ErrHelpRequested
			}
			return c.release(cmd, false)
		},
	}

	// Global flags, parsed by subcommands only
	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./cw-release.yaml, then ~/.cw-release/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("root", "", "Repository root (default \".\")")
	_ = v.BindPFlag("release.root", rootCmd.PersistentFlags().Lookup("root"))

	rootCmd.AddCommand(c.newPublishCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newDoctorCmd())
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// loadConfig reads configuration for this invocation
func (c *cli) loadConfig() (*config.Config, error) {
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	}
	cfg, err := config.LoadFrom(c.v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (c *cli) newLogger(cfg *config.Config, out io.Writer) *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  out,
		Verbose: c.verbose,
	})
}

func (c *cli) newPublishCmd() *cobra.Command {
	var showProgress bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish all packages and tag the release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.release(cmd, showProgress)
		},
	}

	cmd.Flags().Bool("dry-run", false, "Log what would be published and tagged without doing it")
	cmd.Flags().Bool("no-tag", false, "Publish only, skip creating and pushing the tag")
	cmd.Flags().Bool("confirm", false, "Ask for confirmation before publishing")
	cmd.Flags().String("manifest", "", "Manifest to read the version from (default \"Cargo.toml\")")
	cmd.Flags().String("remote", "", "Remote to push the tag to (default \"origin\")")
	cmd.Flags().String("tag-prefix", "", "Prefix for the release tag (default \"v\")")
	cmd.Flags().String("command", "", "Publish command run in each package directory (default \"cargo publish\")")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show publish and push progress on stderr")

	_ = c.v.BindPFlag("release.dry_run", cmd.Flags().Lookup("dry-run"))
	_ = c.v.BindPFlag("release.no_tag", cmd.Flags().Lookup("no-tag"))
	_ = c.v.BindPFlag("release.confirm", cmd.Flags().Lookup("confirm"))
	_ = c.v.BindPFlag("release.manifest", cmd.Flags().Lookup("manifest"))
	_ = c.v.BindPFlag("release.remote", cmd.Flags().Lookup("remote"))
	_ = c.v.BindPFlag("release.tag_prefix", cmd.Flags().Lookup("tag-prefix"))
	_ = c.v.BindPFlag("registry.command", cmd.Flags().Lookup("command"))

	return cmd
}

// release runs the full publish and tag flow
func (c *cli) release(cmd *cobra.Command, showProgress bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger := c.newLogger(cfg, cmd.ErrOrStderr())

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := domain.CommonOptions{
		Verbose: c.verbose,
		DryRun:  cfg.Release.DryRun,
		NoTag:   cfg.Release.NoTag,
		Confirm: cfg.Release.Confirm,
	}

	root, err := utils.ResolveDir(cfg.Release.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve release root: %w", err)
	}

	publisher, err := newPublisher(registry.CargoOptions{
		Command: cfg.Registry.Command,
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		DryRun:  opts.DryRun,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	// Open the repository before publishing so a missing repository
	// fails before anything reaches the registry
	var tagger gitclient.Tagger
	if !opts.NoTag && !opts.DryRun {
		gitOpts := gitclient.ClientOptions{
			Username: cfg.Git.Username,
			Token:    cfg.Git.Token,
		}
		if showProgress {
			gitOpts.Progress = cmd.ErrOrStderr()
		}
		tagger, err = openTagger(root, gitOpts)
		if err != nil {
			return err
		}
	}

	releaserOpts := app.ReleaserOptions{
		CommonOptions: opts,
		Plan:          cfg.Plan(),
		Root:          root,
		Manifest:      cfg.Release.Manifest,
		Remote:        cfg.Release.Remote,
		TagPrefix:     cfg.Release.TagPrefix,
		Prerequisites: cfg.Registry.Prerequisites,
		Publisher:     publisher,
		Tagger:        tagger,
		Confirm:       confirmRelease,
		Out:           cmd.OutOrStdout(),
		LookPath:      execLookPath,
		Logger:        logger,
	}
	if showProgress {
		releaserOpts.Progress = cmd.ErrOrStderr()
	}

	releaser, err := app.NewReleaser(releaserOpts)
	if err != nil {
		return fmt.Errorf("failed to create releaser: %w", err)
	}

	_, err = releaser.Run(ctx)
	return err
}

func (c *cli) newPlanCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the packages in publish order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return app.RenderPlan(cmd.OutOrStdout(), cfg.Plan(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", app.FormatText, "Output format (text or yaml)")

	return cmd
}

func (c *cli) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check release prerequisites",
		Long:  "Verifies the publish tool, the release version, every package directory and the push remote.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			root, err := utils.ResolveDir(cfg.Release.Root)
			if err != nil {
				return fmt.Errorf("failed to resolve release root: %w", err)
			}

			manifestPath := cfg.Release.Manifest
			if !filepath.IsAbs(manifestPath) {
				manifestPath = filepath.Join(root, manifestPath)
			}

			opts := app.DoctorOptions{
				Plan:          cfg.Plan(),
				Root:          root,
				Manifest:      manifestPath,
				TagPrefix:     cfg.Release.TagPrefix,
				Remote:        cfg.Release.Remote,
				Prerequisites: cfg.Registry.Prerequisites,
				LookPath:      execLookPath,
			}
			if remotes, err := openRemotes(root); err == nil {
				opts.Remotes = remotes
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tui.TitleStyle.Render("Checking release prerequisites..."))
			results := app.Doctor(opts)
			for _, r := range results {
				fmt.Fprintf(out, "  %s: %s %s\n", r.Name, styleStatus(r.Status), tui.DescriptionStyle.Render("("+r.Detail+")"))
			}

			fmt.Fprintln(out)
			if app.Healthy(results) {
				fmt.Fprintln(out, "All critical checks passed!")
			} else {
				fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
			}
			return nil
		},
	}
}

func styleStatus(s app.CheckStatus) string {
	switch s {
	case app.StatusOK:
		return tui.SuccessStyle.Render(string(s))
	case app.StatusWarn:
		return tui.WarnStyle.Render(string(s))
	default:
		return tui.ErrorStyle.Render(string(s))
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}
