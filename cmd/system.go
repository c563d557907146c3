package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	apperrors "github.com/zorak1103/dk/internal/errors"
)

var sysCmd = &cobra.Command{
	Use:   "sys",
	Short: "Show extended information",
	Long:  `Show images, volumes and containers, or run a system subcommand.`,
	Args:  noSubcommand,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return showSystem(cmd)
	},
}

var sysShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show extended information",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return showSystem(cmd)
	},
}

var sysPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete unused data (networks, volumes, build cache)",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		steps := []struct {
			info string
			args []string
		}{
			{"Pruning networks", []string{"network", "prune", "-f"}},
			{"Pruning volumes", []string{"volume", "prune", "-f"}},
			{"Pruning build cache", []string{"buildx", "prune", "-f"}},
		}

		var last error
		for _, step := range steps {
			printer.Info(step.info)
			err := runner.Run(ctx, step.args...)
			if err == nil {
				continue
			}
			if errors.Is(err, apperrors.ErrNotLaunched) {
				return err
			}
			printer.Errorf("%s failed: %v", step.info, err)
			last = err
		}
		if last != nil {
			return &apperrors.Reported{Err: last}
		}
		return nil
	},
}

var sysSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Show data size (docker system df)",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := runner.Run(cmd.Context(), "system", "df"); err != nil {
			return reportedEngineError(err)
		}
		return nil
	},
}

var sysPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the Docker daemon answers",
	Long: `Ping the Docker daemon through the Engine API and show its version.

The daemon address is DK_DOCKER_HOST, then DOCKER_HOST, then the local socket.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newDaemonClient(settings.DockerHost)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		info, err := client.Probe(cmd.Context())
		if err != nil {
			return err
		}

		printer.Infof("Docker daemon at %s is up", info.Host)
		printer.Table([]string{"Property", "Value"}, [][]string{
			{"Server version", info.ServerVersion},
			{"API version", info.APIVersion},
			{"Min API version", info.MinAPIVersion},
			{"OS/Arch", info.Platform()},
			{"Kernel", info.KernelVersion},
			{"Experimental", fmt.Sprintf("%t", info.Experimental)},
		}, 0)
		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(sysCmd)
	sysCmd.AddCommand(sysShowCmd)
	sysCmd.AddCommand(sysPruneCmd)
	sysCmd.AddCommand(sysSizeCmd)
	sysCmd.AddCommand(sysPingCmd)
}

func showSystem(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if err := showImages(ctx); err != nil {
		return err
	}
	printer.Println()
	if err := showVolumes(ctx); err != nil {
		return err
	}
	printer.Println()
	return showContainers(ctx)
}
