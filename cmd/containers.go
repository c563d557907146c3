package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dk/internal/listing"
	"github.com/zorak1103/dk/internal/rank"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "Show state of the containers",
	Long: `Show every container (running or not) with its display number.

The number can be used in place of the container ID by rm and shell.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return showContainers(cmd.Context())
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <container|number>...",
	Short: "Remove container(s)",
	Long: `Force-remove containers (docker rm -f).

Each target is a container ID or name, or a number from 'dk ps'. All numbers
refer to the same listing, taken once before anything is removed.`,
	Example: `  # Remove the second and third container of 'dk ps'
  dk rm 2 3

  # Mix numbers and names
  dk rm 1 my-container`,
	Args: requireTargets("container"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ids, err := resolveContainers(ctx, args)
		if err != nil {
			return err
		}
		return batch(ids, "Error removing container %s", func(id string) error {
			printer.Infof("Removing container %s", id)
			return runner.Run(ctx, "rm", "-f", id)
		})
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell <container|number>",
	Short: "Run a bash shell into the container",
	Long:  `Open an interactive bash shell (docker exec -it <id> /bin/bash) in one container.`,
	Args:  exactlyOneTarget,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ids, err := resolveContainers(ctx, args)
		if err != nil {
			return err
		}
		printer.Infof("Executing shell in container %s", ids[0])
		if err := runner.Run(ctx, "exec", "-it", ids[0], "/bin/bash"); err != nil {
			return reportedEngineError(err)
		}
		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(psCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(shellCmd)
}

func resolveContainers(ctx context.Context, filters []string) ([]string, error) {
	rows, err := listing.Containers(ctx, runner)
	if err != nil {
		return nil, err
	}
	return rank.Resolve(filters, rows), nil
}

func showContainers(ctx context.Context) error {
	rows, err := listing.Containers(ctx, runner)
	if err != nil {
		return err
	}
	printer.Table(containerHeaders, containerRows(rows), 2)
	return nil
}

var containerHeaders = []string{"Index", "ID", "Name", "Image", "Status"}

func containerRows(rows []listing.Container) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{strconv.Itoa(r.Rank), r.ID, r.Name, r.Image, r.Status})
	}
	return out
}
