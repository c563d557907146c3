// Package listing parses the engine's delimited listing output into ranked rows.
package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/zorak1103/dk/internal/engine"
)

// Separator splits the fields of every --format template below.
// Engine field values never contain it.
const Separator = "|"

// Output templates passed to the engine's --format option.
// Changing a field here changes the parsers below.
const (
	ContainerFormat = "{{.Names}}|{{.ID}}|{{.Image}}|{{.Status}}"
	ImageFormat     = "{{.ID}}|{{.Repository}}|{{.Tag}}|{{.Size}}|{{.CreatedAt}}"
	VolumeFormat    = "{{.Name}}"
)

const (
	containerFields = 4
	imageFields     = 5
	volumeFields    = 1
)

// noneTag is what the engine prints for an untagged repository or tag.
const noneTag = "<none>"

// Container is one row of `ps -a`.
type Container struct {
	Rank   int
	Name   string
	ID     string
	Image  string
	Status string
}

// Identifier returns the value rank filters resolve to.
func (c Container) Identifier() string {
	return c.ID
}

// Image is one row of `images`.
type Image struct {
	Rank       int
	ID         string
	Repository string
	Tag        string
	Size       string
	Created    string
}

// Reference returns repository:tag.
func (i Image) Reference() string {
	return i.Repository + ":" + i.Tag
}

// Identifier returns repository:tag, or the image ID when the image is
// untagged and repository:tag would not name it.
func (i Image) Identifier() string {
	if i.Repository == noneTag || i.Tag == noneTag || i.Repository == "" {
		return i.ID
	}
	return i.Reference()
}

// Volume is one row of `volume ls`.
type Volume struct {
	Rank int
	Name string
}

// Identifier returns the volume name.
func (v Volume) Identifier() string {
	return v.Name
}

// splitLines yields the fields of every line holding at least n fields.
func splitLines(output string, n int) [][]string {
	var rows [][]string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, Separator)
		if len(parts) < n {
			continue
		}
		rows = append(rows, parts)
	}
	return rows
}

// ParseContainers parses ContainerFormat output. Short lines are skipped and
// ranks follow output order starting at 1.
func ParseContainers(output string) []Container {
	lines := splitLines(output, containerFields)
	containers := make([]Container, 0, len(lines))
	for i, p := range lines {
		containers = append(containers, Container{
			Rank:   i + 1,
			Name:   p[0],
			ID:     p[1],
			Image:  p[2],
			Status: p[3],
		})
	}
	return containers
}

// ParseImages parses ImageFormat output.
func ParseImages(output string) []Image {
	lines := splitLines(output, imageFields)
	images := make([]Image, 0, len(lines))
	for i, p := range lines {
		images = append(images, Image{
			Rank:       i + 1,
			ID:         p[0],
			Repository: p[1],
			Tag:        p[2],
			Size:       p[3],
			Created:    p[4],
		})
	}
	return images
}

// ParseVolumes parses VolumeFormat output.
func ParseVolumes(output string) []Volume {
	lines := splitLines(output, volumeFields)
	volumes := make([]Volume, 0, len(lines))
	for i, p := range lines {
		volumes = append(volumes, Volume{Rank: i + 1, Name: p[0]})
	}
	return volumes
}

// Containers lists all containers, running or not.
func Containers(ctx context.Context, r engine.Runner) ([]Container, error) {
	out, err := r.Capture(ctx, "ps", "-a", "--format", ContainerFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}
	return ParseContainers(out), nil
}

// Images lists all images.
func Images(ctx context.Context, r engine.Runner) ([]Image, error) {
	out, err := r.Capture(ctx, "images", "--format", ImageFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return ParseImages(out), nil
}

// Volumes lists all volumes.
func Volumes(ctx context.Context, r engine.Runner) ([]Volume, error) {
	out, err := r.Capture(ctx, "volume", "ls", "--format", VolumeFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to list volumes: %w", err)
	}
	return ParseVolumes(out), nil
}
