// Package archive saves images to gzip archives and restores them.
//
// Archives are named <repository>.<tag>.tar.gz with the repository made
// file-system safe, so a pulled image can be reloaded offline later.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/zorak1103/dk/internal/engine"
	"github.com/zorak1103/dk/internal/sanitize"
)

// DefaultTag is assumed for references without an explicit tag.
const DefaultTag = "latest"

// Extension is appended to every archive name.
const Extension = ".tar.gz"

// PullResult tells how Pull made an image available.
type PullResult int

// Pull outcomes.
const (
	AlreadyPresent PullResult = iota
	LoadedFromArchive
	Pulled
)

// String implements fmt.Stringer.
func (r PullResult) String() string {
	switch r {
	case AlreadyPresent:
		return "already present"
	case LoadedFromArchive:
		return "loaded from archive"
	case Pulled:
		return "pulled"
	default:
		return "unknown"
	}
}

// SplitReference splits an image reference into repository and tag.
// A digest (repo@sha256:...) is kept as the tag.
func SplitReference(ref string) (string, string) {
	if i := strings.Index(ref, "@"); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	slash := strings.LastIndex(ref, "/")
	if colon := strings.LastIndex(ref, ":"); colon > slash {
		return ref[:colon], ref[colon+1:]
	}
	return ref, DefaultTag
}

// Reference returns repository:tag for ref, adding the default tag.
// Digest references are returned unchanged.
func Reference(ref string) string {
	if strings.Contains(ref, "@") {
		return ref
	}
	name, tag := SplitReference(ref)
	return name + ":" + tag
}

// FileName returns the archive file name for ref.
func FileName(ref string) string {
	name, tag := SplitReference(ref)
	return sanitize.Name(name) + "." + sanitize.Name(tag) + Extension
}

// Save streams `save <ref>` through gzip into dir and returns the archive path.
// ref is handed to the engine as is, so image IDs work too. The archive only
// appears once it is complete.
func Save(ctx context.Context, r engine.Runner, ref, dir string) (string, error) {
	path := filepath.Join(dir, FileName(ref))

	tmpFile, err := os.CreateTemp(dir, ".dk-save-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmpFile.Name()
	cleanup := func() {
		_ = tmpFile.Close()    // Best effort cleanup
		_ = os.Remove(tmpPath) // Best effort cleanup
	}

	gz := gzip.NewWriter(tmpFile)
	if err := r.Stream(ctx, gz, "save", ref); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to save image %s: %w", ref, err)
	}
	if err := gz.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to compress image %s: %w", ref, err)
	}
	if err := tmpFile.Sync(); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to sync archive %s: %w", tmpPath, err)
	}
	_ = tmpFile.Close() // Explicit ignore - we've already synced

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Best effort cleanup
		return "", fmt.Errorf("failed to rename %s to %s: %w", tmpPath, path, err)
	}
	return path, nil
}

// IsPresent reports whether the engine already holds ref.
func IsPresent(ctx context.Context, r engine.Runner, ref string) (bool, error) {
	out, err := r.Capture(ctx, "images", "--format", "{{.Repository}}:{{.Tag}}")
	if err != nil {
		return false, fmt.Errorf("failed to list images: %w", err)
	}
	want := Reference(ref)
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == want {
			return true, nil
		}
	}
	return false, nil
}

// Pull makes ref available to the engine. An image already present is left
// alone; otherwise an archive in dir is loaded, and failing that the image is
// pulled and archived into dir for next time.
func Pull(ctx context.Context, r engine.Runner, ref, dir string) (PullResult, error) {
	present, err := IsPresent(ctx, r, ref)
	if err != nil {
		return AlreadyPresent, err
	}
	if present {
		return AlreadyPresent, nil
	}

	path := filepath.Join(dir, FileName(ref))
	if _, err := os.Stat(path); err == nil {
		if err := r.Run(ctx, "load", "-i", path); err != nil {
			return LoadedFromArchive, fmt.Errorf("failed to load %s: %w", path, err)
		}
		return LoadedFromArchive, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Pulled, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := r.Run(ctx, "pull", Reference(ref)); err != nil {
		return Pulled, err
	}
	if _, err := Save(ctx, r, Reference(ref), dir); err != nil {
		return Pulled, err
	}
	return Pulled, nil
}
