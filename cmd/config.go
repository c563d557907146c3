package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the effective configuration",
	Long: `Display the settings dk uses at runtime and the loaded OTS catalog.

Settings are merged from:
  1. Default values
  2. .env file in the current directory
  3. DK_* environment variables (DK_ENGINE, DK_DOCKER_HOST)
  4. The --config flag (catalog location)`,
	Example: `  # Show current configuration
  dk config

  # Show with a custom catalog
  dk config --config ./dk_config.json`,
	Args: noArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		printer.Section("Settings:")
		printer.Table([]string{"Key", "Value"}, [][]string{
			{"engine", settings.Engine},
			{"docker_host", settings.DockerHost},
			{"catalog", settings.CatalogPath},
		}, 0)
		printer.Println()

		printer.Section("OTS catalog:")
		rows := make([][]string, 0, len(catalog.OTS))
		for _, svc := range catalog.OTS {
			rows = append(rows, []string{svc.Name, strconv.Itoa(svc.Port), svc.ContainerName()})
		}
		printer.Table([]string{"Name", "Port", "Container"}, rows, 0)
		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(configCmd)
}
