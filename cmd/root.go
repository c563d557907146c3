// Package cmd implements the CLI commands.
package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/zorak1103/dk/internal/config"
	"github.com/zorak1103/dk/internal/docker"
	"github.com/zorak1103/dk/internal/engine"
	apperrors "github.com/zorak1103/dk/internal/errors"
	"github.com/zorak1103/dk/internal/logging"
	"github.com/zorak1103/dk/internal/ui"
	"github.com/zorak1103/dk/internal/version"
)

var (
	cfgFile  string
	verbose  bool
	settings *config.Settings
	store    *config.Store
	catalog  *config.Catalog
	runner   engine.Runner
	printer  *ui.Printer
	logger   *log.Logger
)

// Constructors swapped out by tests.
var (
	newRunner = func(s *config.Settings, p *ui.Printer, l *log.Logger) engine.Runner {
		return engine.NewExec(s.Engine, engine.WithTrace(p.Info), engine.WithLogger(l))
	}
	newDaemonClient = docker.NewClient
)

var rootCmd = &cobra.Command{
	Use:   "dk",
	Short: "Docker shortcuts with rank-based targets",
	Long: `dk is a thin wrapper around the docker CLI.

Listings are numbered, and every command that takes a container, image or
volume also accepts its number from the latest listing:

  dk ps          # 1 web, 2 db, 3 cache
  dk rm 2 3      # removes db and cache

It also starts a catalog of "one true service" containers (portainer,
sqlserver, dozzle, cadvisor) defined in ~/.dk/dk_config.json.

Targets starting with "-" must follow "--", as in: dk rm -- -weird-name`,
	Version:       version.GetFullVersion(),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		printer = ui.New(cmd.OutOrStdout())
		logger = logging.New(cmd.ErrOrStderr(), verbose)

		if cmd.Name() == "help" {
			return nil
		}

		var err error
		settings, err = config.LoadSettings(cfgFile)
		if err != nil {
			return &apperrors.ConfigurationError{ConfigPath: cfgFile, Err: err}
		}
		logger.Debug("settings loaded", "engine", settings.Engine, "catalog", settings.CatalogPath)

		store = config.NewStore(settings.CatalogPath, logger)
		// init writes the catalog itself
		if cmd != initCmd {
			catalog, err = store.Load()
			if err != nil {
				return err
			}
			logger.Debug("catalog loaded", "services", len(catalog.OTS))
		}

		runner = newRunner(settings, printer, logger)
		return nil
	},
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return apperrors.Usagef("unknown command %q for %q", args[0], cmd.CommandPath())
		}
		printUsage(printer, catalog)
		return &apperrors.UsageError{}
	},
}

// Execute adds all child commands to the root command and exits with the
// status of the command that ran.
func Execute() {
	os.Exit(run())
}

// run executes the root command, reports any error not yet shown and
// returns the process exit code.
func run() int {
	err := rootCmd.Execute()
	if err != nil && !apperrors.IsReported(err) {
		ui.New(rootCmd.ErrOrStderr()).Error(err.Error())
	}
	return apperrors.ExitCode(err)
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "OTS catalog file (default: ~/.dk/dk_config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
