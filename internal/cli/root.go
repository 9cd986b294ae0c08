package cli

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/raykroeker/vimfiles/internal/version"
	"github.com/raykroeker/vimfiles/pkg/commands"
	"github.com/raykroeker/vimfiles/pkg/config"
	"github.com/raykroeker/vimfiles/pkg/filesystem"
	"github.com/raykroeker/vimfiles/pkg/logging"
	"github.com/raykroeker/vimfiles/pkg/output"
	"github.com/raykroeker/vimfiles/pkg/vcs"
)

// DepsFunc builds the filesystem and git client a command runs against.
type DepsFunc func(cfg *config.Config) commands.Deps

// DefaultDeps uses the real filesystem and the git binary from cfg.
func DefaultDeps(cfg *config.Config) commands.Deps {
	return commands.Deps{
		FS:  filesystem.NewOS(),
		VCS: vcs.NewGitClient(cfg.Git.Binary, cfg.Git.Timeout),
	}
}

// flags holds the global flag values of one root command.
type flags struct {
	verbosity       int
	dryRun          bool
	force           bool
	configFile      string
	directory       string
	configRoot      string
	manifest        string
	jobs            int
	continueOnError bool
	format          string
}

type app struct {
	flags  flags
	format output.Format
	deps   DepsFunc
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(DefaultDeps)
}

func newRootCmd(deps DepsFunc) *cobra.Command {
	initTemplateFormatting()

	a := &app{deps: deps}

	rootCmd := &cobra.Command{
		Use:     "vimfiles",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLoggerWithOutput(a.flags.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")

			format, err := output.ParseFormat(a.flags.format)
			if err != nil {
				return err
			}
			a.format = format
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&a.flags.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.BoolVar(&a.flags.force, "force", false, MsgFlagForce)
	pf.StringVar(&a.flags.configFile, "config", "", MsgFlagConfig)
	pf.StringVarP(&a.flags.directory, "directory", "d", "", MsgFlagDirectory)
	pf.StringVar(&a.flags.configRoot, "config-root", "", MsgFlagConfigRoot)
	pf.StringVar(&a.flags.manifest, "manifest", "", MsgFlagManifest)
	pf.IntVar(&a.flags.jobs, "jobs", 1, MsgFlagJobs)
	pf.BoolVar(&a.flags.continueOnError, "continue-on-error", false, MsgFlagContinueOnError)
	pf.StringVar(&a.flags.format, "format", "auto", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(output.Formats, cobra.ShellCompDirectiveNoFileComp))

	// --noop is accepted as a synonym of --dry-run.
	rootCmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "noop" {
			name = "dry-run"
		}
		return pflag.NormalizedName(name)
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Commands:"},
		&cobra.Group{ID: "misc", Title: "Other:"},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	if err := installTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// overrides turns the flags given on the command line into config keys.
func (a *app) overrides(cmd *cobra.Command) map[string]interface{} {
	set := cmd.Flags().Changed
	o := make(map[string]interface{})
	if set("dry-run") {
		o["dry_run"] = a.flags.dryRun
	}
	if set("force") {
		o["force"] = a.flags.force
	}
	if set("directory") {
		o["install_root"] = a.flags.directory
	}
	if set("config-root") {
		o["config_root"] = a.flags.configRoot
	}
	if set("manifest") {
		o["manifest"] = a.flags.manifest
	}
	if set("jobs") {
		o["jobs"] = a.flags.jobs
	}
	if set("continue-on-error") {
		o["continue_on_error"] = a.flags.continueOnError
	}
	return o
}

func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(config.Options{
		ConfigFile: a.flags.configFile,
		Overrides:  a.overrides(cmd),
	})
}

// run returns the RunE of a command backed by commands.Dispatch. The
// result is rendered even when the command fails part way.
func (a *app) run(kind commands.Kind) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := a.loadConfig(cmd)
		if err != nil {
			return err
		}
		renderer, err := output.NewRenderer(a.format, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		result, err := commands.Dispatch(cmd.Context(), kind, cfg, a.deps(cfg), args...)
		if result != nil {
			if rerr := renderer.RenderResult(result); rerr != nil && err == nil {
				return rerr
			}
		}
		return err
	}
}
