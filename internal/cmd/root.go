package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/asaapi/plugin-init/internal/config"
	oerrors "github.com/asaapi/plugin-init/internal/errors"
	"github.com/asaapi/plugin-init/internal/identity"
	"github.com/asaapi/plugin-init/internal/output"
	"github.com/asaapi/plugin-init/internal/pipeline"
	"github.com/asaapi/plugin-init/internal/workspace"
)

// skipConfigAnnotation marks commands that do not need the template root.
const skipConfigAnnotation = "plugin-init/skip-config"

// rootFlags holds the raw values of the global flags.
type rootFlags struct {
	root       string
	config     string
	logDir     string
	output     string
	verbose    bool
	timestamps bool
	dryRun     bool
	atomic     bool
}

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE
// and passed into every sub-command constructor.
type GlobalConfig struct {
	Config     *config.Config
	Root       string
	ConfigPath string
	LogDir     string
	Output     output.OutputFormat
	Verbose    bool
	DryRun     bool
	Atomic     bool

	logConfig output.LogConfig
	runLog    io.Closer
}

// Close detaches and closes the run log, if one was opened.
func (g *GlobalConfig) Close() error {
	if g.runLog == nil {
		return nil
	}
	console := g.logConfig
	console.File = nil
	output.SetupLogging(console)

	err := g.runLog.Close()
	g.runLog = nil
	return err
}

// NewRootCmd creates the root command for plugin-init.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cfg := &GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "plugin-init <name> <description...>",
		Short: "Turn the ASA API plugin template into a named project",
		Long: `plugin-init rewrites the PluginTemplate solution into a new plugin project.

It updates the vcpkg manifest, the solution, the project and filters files,
every source under Source/ and Source/Public/, and Configs/PluginInfo.json,
then renames the template files after the new project.

All words after the name form the plugin description. Flags go before the
name: everything after it is description text, even words starting with a dash.`,
		Example: `  # Instantiate the template next to the tool
  plugin-init MyPlugin "Adds custom spawn rules"

  # Preview every edit without touching the tree
  plugin-init --dry-run --root ./PluginTemplate MyPlugin Adds custom spawn rules

  # Restore the tree if any step fails
  plugin-init --atomic MyPlugin Adds custom spawn rules`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return initializeGlobals(c, flags, cfg)
		},
		RunE: func(c *cobra.Command, args []string) error {
			defer cfg.Close()
			return runInit(c, args, cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.root, "root", "r", "", "Template root directory (env: PLUGIN_INIT_ROOT)")
	pf.StringVar(&flags.config, "config", "", "Path to config file (env: PLUGIN_INIT_CONFIG)")
	pf.StringVar(&flags.logDir, "log-dir", "", "Run log directory (env: PLUGIN_INIT_LOGDIR)")
	pf.StringVarP(&flags.output, "output", "o", "text", "Output format: "+strings.Join(output.ValidFormats(), ", "))
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	// Stop flag parsing at the name so the description may start with a dash.
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show planned edits without writing anything")
	rootCmd.Flags().BoolVar(&flags.atomic, "atomic", false, "Roll back every change if a step fails (env: PLUGIN_INIT_ATOMIC)")

	rootCmd.AddCommand(NewVerifyCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals resolves configuration and sets up logging.
func initializeGlobals(c *cobra.Command, flags *rootFlags, g *GlobalConfig) error {
	format, ok := output.ParseOutputFormat(flags.output)
	if !ok {
		return exitError(oerrors.NewValidationError(
			fmt.Sprintf("invalid output format %q", flags.output),
			"--output",
			"Use one of: "+strings.Join(output.ValidFormats(), ", "),
		))
	}
	g.Output = format
	g.Verbose = flags.verbose

	// Resolve timestamps: flag (if explicitly set) > config > default (nil = true)
	g.logConfig = output.LogConfig{Verbose: flags.verbose}
	if c.Flags().Changed("timestamps") {
		g.logConfig.Timestamps = output.BoolPtr(flags.timestamps)
	}

	if c.Annotations[skipConfigAnnotation] == "true" {
		output.SetupLogging(g.logConfig)
		return nil
	}

	// The config file may itself move the root, so resolve the root once
	// without it to locate the file, then again with it.
	root, err := config.ResolveRoot(config.ResolveOptions{FlagValue: flags.root})
	if err != nil {
		return exitError(fmt.Errorf("resolving template root: %w", err))
	}
	rootPath, err := absPath(root.Value)
	if err != nil {
		return exitError(err)
	}

	cfgPath := config.ResolveConfigPath(flags.config, rootPath)
	configFile, err := config.ExpandPath(cfgPath.Value)
	if err != nil {
		return exitError(fmt.Errorf("expanding config path: %w", err))
	}

	loaded, err := config.NewLoader().Load(configFile)
	if err != nil {
		return exitError(oerrors.NewValidationError(err.Error(), configFile, "Fix the config file or pass --config"))
	}
	g.Config = loaded
	g.ConfigPath = configFile

	if loaded.Root != "" {
		root, err = config.ResolveRoot(config.ResolveOptions{
			FlagValue:   flags.root,
			ConfigValue: loaded.Root,
		})
		if err != nil {
			return exitError(fmt.Errorf("resolving template root: %w", err))
		}
		if rootPath, err = absPath(root.Value); err != nil {
			return exitError(err)
		}
	}
	g.Root = rootPath

	logDir := config.ResolveLogDir(flags.logDir, loaded.LogDir, rootPath)
	if g.LogDir, err = absPath(logDir.Value); err != nil {
		return exitError(err)
	}

	g.DryRun = flags.dryRun
	g.Atomic = loaded.Atomic
	if c.Flags().Changed("atomic") {
		g.Atomic = flags.atomic
	}

	if g.logConfig.Timestamps == nil && loaded.Log.Timestamps != nil {
		g.logConfig.Timestamps = loaded.Log.Timestamps
	}

	// A dry run leaves the tree untouched, log directory included.
	if !g.DryRun && rootExists(g.Root) {
		f, err := output.OpenRunLog(afero.NewOsFs(), g.LogDir, time.Now())
		if err != nil {
			output.SetupLogging(g.logConfig)
			output.Warn("run log unavailable, logging to console only", "error", err)
		} else {
			g.runLog = f
			g.logConfig.File = f
		}
	}

	output.SetupLogging(g.logConfig)

	config.LogResolvedValues(root, cfgPath, logDir)
	output.Debug("initializing CLI",
		"root", g.Root,
		"config", g.ConfigPath,
		"logDir", g.LogDir,
		"output", g.Output,
		"dryRun", g.DryRun,
		"atomic", g.Atomic,
	)

	return nil
}

// runInit instantiates the template as the project named by args.
func runInit(c *cobra.Command, args []string, g *GlobalConfig) error {
	id, err := identity.New(args[0], strings.Join(args[1:], " "))
	if err != nil {
		return exitError(err)
	}

	ws, err := workspace.NewOS(g.Root, workspace.WithDryRun(g.DryRun))
	if err != nil {
		return exitError(err)
	}

	output.Info("instantiating template",
		"project", id.Name,
		"root", g.Root,
	)

	report, runErr := pipeline.NewPipeline().Run(c.Context(), ws, pipeline.Options{
		Identity: id,
		Atomic:   g.Atomic,
	})

	if report != nil {
		text, err := pipeline.FormatReport(report, g.Output)
		if err != nil {
			return exitError(err)
		}
		fmt.Fprint(c.OutOrStdout(), text)
	}

	if runErr != nil {
		if report == nil {
			return exitError(runErr)
		}
		output.Error("run aborted", "error", runErr)
		return reportedError(oerrors.ExitCodeFromError(runErr), runErr)
	}

	if report.HasFailures() {
		return reportedError(ExitGeneralError,
			fmt.Errorf("%d component(s) failed", len(report.Failed())))
	}

	return nil
}

// absPath expands ~ and makes path absolute.
func absPath(path string) (string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("expanding path %s: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", path, err)
	}
	return abs, nil
}

func rootExists(root string) bool {
	info, err := os.Stat(root)
	return err == nil && info.IsDir()
}
