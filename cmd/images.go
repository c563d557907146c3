package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zorak1103/dk/internal/archive"
	"github.com/zorak1103/dk/internal/listing"
	"github.com/zorak1103/dk/internal/rank"
)

// Vulnerability scanner run by `dk im scan`
const (
	trivyImage  = "ghcr.io/aquasecurity/trivy:latest"
	trivyVolume = "trivy:/cachedata"
)

var imCmd = &cobra.Command{
	Use:   "im",
	Short: "Show the list of images",
	Long: `Show the list of images, or manage them with a subcommand.

Image targets are a repository[:tag], an image ID, or a number from 'dk im'.
A number resolves to repository:tag, or to the image ID for untagged images.`,
	Args: noSubcommand,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return showImages(cmd.Context())
	},
}

var imRmCmd = &cobra.Command{
	Use:   "rm <image|number>...",
	Short: "Remove the specified images",
	Args:  requireTargets("image"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		refs, err := resolveImages(ctx, args)
		if err != nil {
			return err
		}
		return batch(refs, "Error removing image %s", func(ref string) error {
			printer.Infof("Removing image %s", ref)
			return runner.Run(ctx, "rmi", ref)
		})
	},
}

var imSaveCmd = &cobra.Command{
	Use:   "save <image|number>...",
	Short: "Save the specified images",
	Long: `Save images to gzip archives in the current directory.

The archive of repo/name:tag is repo_name.tag.tar.gz; it can be restored with
'dk im load' or picked up automatically by 'dk im pull'.`,
	Args: requireTargets("image"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		refs, err := resolveImages(ctx, args)
		if err != nil {
			return err
		}
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		return batch(refs, "Error saving image %s", func(ref string) error {
			printer.Infof("Saving image %s into %s", ref, archive.FileName(ref))
			_, err := archive.Save(ctx, runner, ref, dir)
			return err
		})
	},
}

var imLoadCmd = &cobra.Command{
	Use:   "load <file>...",
	Short: "Load the specified image files",
	Args:  requireTargets("file"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return batch(args, "Error loading image file %s", func(file string) error {
			printer.Infof("Loading image file %s", file)
			return runner.Run(ctx, "load", "-i", file)
		})
	},
}

var imScanCmd = &cobra.Command{
	Use:   "scan <image|number>...",
	Short: "Scan images for vulnerabilities",
	Long:  `Scan images with trivy, run as a throwaway container that keeps its database in the "trivy" volume.`,
	Args:  requireTargets("image"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		refs, err := resolveImages(ctx, args)
		if err != nil {
			return err
		}
		return batch(refs, "Error scanning image %s", func(ref string) error {
			printer.Infof("Scanning image %s", ref)
			return runner.Run(ctx, scanArgs(ref)...)
		})
	},
}

var imPullCmd = &cobra.Command{
	Use:   "pull <image|number>...",
	Short: "Pull images, reusing local archives",
	Long: `Make images available locally.

Images already present are skipped. Otherwise an archive in the current
directory (as written by 'dk im save') is loaded; failing that the image is
pulled and an archive is saved for next time.`,
	Args: requireTargets("image"),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		refs, err := resolveImages(ctx, args)
		if err != nil {
			return err
		}
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		return batch(refs, "Error pulling image %s", func(ref string) error {
			result, err := archive.Pull(ctx, runner, ref, dir)
			if err != nil {
				return err
			}
			switch result {
			case archive.AlreadyPresent:
				printer.Infof("Image %s is already present", ref)
			case archive.LoadedFromArchive:
				printer.Infof("Image %s loaded from %s", ref, filepath.Join(dir, archive.FileName(ref)))
			case archive.Pulled:
				printer.Infof("Image %s pulled and saved into %s", ref, archive.FileName(ref))
			}
			return nil
		})
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(imCmd)
	imCmd.AddCommand(imRmCmd)
	imCmd.AddCommand(imSaveCmd)
	imCmd.AddCommand(imLoadCmd)
	imCmd.AddCommand(imScanCmd)
	imCmd.AddCommand(imPullCmd)
}

func scanArgs(ref string) []string {
	return []string{
		"run", "--tty", "--rm",
		"-v", trivyVolume,
		trivyImage,
		"image", "--scanners", "vuln", "--cache-dir", "/cachedata",
		ref,
	}
}

func resolveImages(ctx context.Context, filters []string) ([]string, error) {
	rows, err := listing.Images(ctx, runner)
	if err != nil {
		return nil, err
	}
	return rank.Resolve(filters, rows), nil
}

func showImages(ctx context.Context) error {
	rows, err := listing.Images(ctx, runner)
	if err != nil {
		return err
	}
	printer.Table(imageHeaders, imageRows(rows), 2)
	return nil
}

var imageHeaders = []string{"Index", "ID", "Name", "Tag", "Size", "Created"}

func imageRows(rows []listing.Image) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{strconv.Itoa(r.Rank), r.ID, r.Repository, r.Tag, r.Size, r.Created})
	}
	return out
}
