package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dk/internal/config"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default OTS catalog",
	Long: `Init writes the default OTS catalog (portainer, sqlserver, dozzle, cadvisor)
to ~/.dk/dk_config.json, or to the file given with --config.

Any dk command creates the catalog when it is missing; init is for resetting
it. An existing catalog is kept unless --force is given.`,
	Example: `  # Create the catalog if missing
  dk init

  # Reset the catalog to the defaults
  dk init --force`,
	Args: noArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		path := store.Path()

		_, err := os.Stat(path)
		switch {
		case err == nil && !force:
			printer.Infof("Skipping %s (already exists, use --force to overwrite)", path)
			return nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}

		if err := store.Save(config.DefaultCatalog()); err != nil {
			return err
		}
		printer.Infof("Created %s", path)
		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing catalog")
}
