// Package backend is the local implementation of domain.Backend. It runs in
// process, walking and hashing the project directory on the caller's goroutine
// and publishing scan progress through a domain.Emitter.
package backend

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mmcdole/lorastudio/internal/domain"
)

const (
	// progressEvery is how many images are found between progress events
	progressEvery = 50

	// metaDir holds per-project data inside the project root
	metaDir = ".lora-studio"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
}

// Local is a domain.Backend over the local filesystem
type Local struct {
	emitter domain.Emitter
	logger  *slog.Logger
	workers int
}

// New creates a local backend. A nil emitter drops progress events.
func New(emitter domain.Emitter, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{
		emitter: emitter,
		logger:  logger,
		workers: max(runtime.NumCPU(), 2),
	}
}

var _ domain.Backend = (*Local)(nil)

func (b *Local) emitProgress(count int) {
	if b.emitter == nil {
		return
	}
	b.emitter.Emit(domain.ProjectLoadProgressEvent, domain.ProgressEvent{Count: count})
}

// resolveRoot checks root is an existing directory and returns its canonical form
func resolveRoot(root string) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrPathNotFound, root)
		}
		return "", fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", domain.ErrNotAFolder, root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return canonical, nil
}

func isImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// relativeTo returns path relative to root with forward slashes
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}
