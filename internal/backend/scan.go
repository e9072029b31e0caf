package backend

import (
	"context"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	// Decoders for image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/charlievieth/fastwalk"
	"github.com/mmcdole/lorastudio/internal/domain"
)

// ScanProject walks root for images, reading captions, ratings and dimensions.
// A progress event is published every 50 images and once more at the end.
func (b *Local) ScanProject(ctx context.Context, root string) ([]domain.ImageEntry, error) {
	canonical, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}
	ratings := loadRatings(root)

	var (
		mu      sync.Mutex
		entries []domain.ImageEntry
	)

	conf := &fastwalk.Config{Follow: false}
	err = fastwalk.Walk(conf, canonical, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			b.logger.Debug("scan: skipping entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if d.Name() == metaDir {
				return fastwalk.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !isImagePath(path) {
			return nil
		}

		entry := readEntry(canonical, path, ratings)

		mu.Lock()
		entries = append(entries, entry)
		n := len(entries)
		mu.Unlock()

		if n%progressEvery == 0 {
			b.emitProgress(n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.emitProgress(len(entries))

	slices.SortFunc(entries, func(x, y domain.ImageEntry) int {
		return strings.Compare(x.RelativePath, y.RelativePath)
	})
	b.logger.Info("scan complete", "root", canonical, "images", len(entries))
	return entries, nil
}

func readEntry(root, path string, ratings ratingsFile) domain.ImageEntry {
	rel := relativeTo(root, path)
	entry := domain.ImageEntry{
		ID:           path,
		Path:         path,
		RelativePath: rel,
		Filename:     filepath.Base(path),
		Rating:       domain.ParseRating(ratings.Ratings[rel]),
	}

	if raw, err := os.ReadFile(captionPathFor(path)); err == nil {
		entry.HasCaption = true
		entry.Tags = ParseTags(string(raw))
	}

	entry.Width, entry.Height = readDimensions(path)

	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		entry.FileSize = info.Size()
	}
	return entry
}

// captionPathFor is the image path with a .txt extension
func captionPathFor(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".txt"
}

// ParseTags splits caption text on commas, dropping blanks
func ParseTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// readDimensions decodes only the image header. Unknown formats give 0, 0.
func readDimensions(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
