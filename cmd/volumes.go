package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dk/internal/listing"
	"github.com/zorak1103/dk/internal/rank"
)

var volCmd = &cobra.Command{
	Use:   "vol",
	Short: "Show the list of volumes",
	Args:  noSubcommand,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return showVolumes(cmd.Context())
	},
}

var volRmCmd = &cobra.Command{
	Use:   "rm <volume|number>...",
	Short: "Remove specified volumes",
	Args:  requireTargets("volume"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rows, err := listing.Volumes(ctx, runner)
		if err != nil {
			return err
		}
		return batch(rank.Resolve(args, rows), "Error removing volume %s", func(name string) error {
			printer.Infof("Removing volume %s", name)
			return runner.Run(ctx, "volume", "rm", name)
		})
	},
}

var volPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all unused volumes",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		printer.Info("Pruning volumes")
		if err := runner.Run(cmd.Context(), "volume", "prune", "-f"); err != nil {
			return reportedEngineError(err)
		}
		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(volCmd)
	volCmd.AddCommand(volRmCmd)
	volCmd.AddCommand(volPruneCmd)
}

func showVolumes(ctx context.Context) error {
	rows, err := listing.Volumes(ctx, runner)
	if err != nil {
		return err
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{strconv.Itoa(r.Rank), r.Name})
	}
	printer.Table([]string{"Index", "Volume Name"}, out, -1)
	return nil
}
