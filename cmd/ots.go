package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	apperrors "github.com/zorak1103/dk/internal/errors"
)

var otsCmd = &cobra.Command{
	Use:   "ots",
	Short: "Run the one true services",
	Long: `Start and remove the "one true service" containers of the catalog.

Services are defined in ~/.dk/dk_config.json (or --config). Each has a name,
an informational port and the command line that starts it.`,
	Args: noSubcommand,
	RunE: func(_ *cobra.Command, _ []string) error {
		printOTSUsage(printer, catalog)
		return nil
	},
}

var otsUpCmd = &cobra.Command{
	Use:   "up <service>...",
	Short: "Create and run the specified services",
	Args:  requireTargets("container"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		acted := 0
		err := batch(args, "Error starting container %s", func(name string) error {
			svc, ok := catalog.Lookup(name)
			if !ok {
				printer.Errorf("Container %s not found", name)
				return nil
			}
			acted++
			printer.Infof("Starting container %s", svc.Name)
			argv := strings.Fields(svc.CommandLine)
			if len(argv) == 0 {
				return fmt.Errorf("service %s has an empty command line in %s", svc.Name, store.Path())
			}
			return runner.Exec(ctx, argv)
		})
		return afterOTS(cmd, acted, err)
	},
}

var otsDownCmd = &cobra.Command{
	Use:   "down <service>...",
	Short: "Delete the specified services",
	Args:  requireTargets("container"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		acted := 0
		err := batch(args, "Error removing container %s", func(name string) error {
			svc, ok := catalog.Lookup(name)
			if !ok {
				printer.Errorf("Container %s not found", name)
				return nil
			}
			acted++
			printer.Infof("Stopping and removing container %s", svc.ContainerName())
			return runner.Run(ctx, "rm", "-f", svc.ContainerName())
		})
		return afterOTS(cmd, acted, err)
	},
}

var otsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the services of the catalog",
	Args:  noArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		rows := make([][]string, 0, len(catalog.OTS))
		for i, svc := range catalog.OTS {
			rows = append(rows, []string{strconv.Itoa(i + 1), svc.Name, strconv.Itoa(svc.Port), svc.CommandLine})
		}
		printer.Table([]string{"Index", "Name", "Port", "Command line"}, rows, 1)
		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(otsCmd)
	otsCmd.AddCommand(otsUpCmd)
	otsCmd.AddCommand(otsDownCmd)
	otsCmd.AddCommand(otsLsCmd)
}

// afterOTS shows the container table once a batch has touched at least one
// service. A launch failure is returned as is since there is no engine to
// list with.
func afterOTS(cmd *cobra.Command, acted int, batchErr error) error {
	if acted == 0 || errors.Is(batchErr, apperrors.ErrNotLaunched) {
		return batchErr
	}
	if err := showContainers(cmd.Context()); err != nil {
		return err
	}
	return batchErr
}
