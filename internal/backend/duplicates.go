package backend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/mmcdole/lorastudio/internal/domain"
	"golang.org/x/sync/errgroup"
)

// FindDuplicates groups images under root by SHA-256 of their full content.
// Only groups with more than one path are returned. Paths are root-relative
// with forward slashes; each group is sorted and groups are ordered by their
// first path.
func (b *Local) FindDuplicates(ctx context.Context, root string) (domain.DuplicateResult, error) {
	canonical, err := resolveRoot(root)
	if err != nil {
		return domain.DuplicateResult{}, err
	}

	var (
		mu    sync.Mutex
		paths []string
	)
	conf := &fastwalk.Config{Follow: false}
	err = fastwalk.Walk(conf, canonical, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == metaDir {
				return fastwalk.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && isImagePath(path) {
			mu.Lock()
			paths = append(paths, path)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return domain.DuplicateResult{}, err
	}

	byHash := make(map[string][]string)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for _, path := range paths {
		g.Go(func() error {
			sum, err := hashFile(gctx, path)
			if err != nil {
				return err
			}
			mu.Lock()
			byHash[sum] = append(byHash[sum], relativeTo(canonical, path))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.DuplicateResult{}, err
	}

	groups := make([][]string, 0)
	for _, group := range byHash {
		if len(group) < 2 {
			continue
		}
		slices.Sort(group)
		groups = append(groups, group)
	}
	slices.SortFunc(groups, func(x, y []string) int {
		return strings.Compare(x[0], y[0])
	})

	b.logger.Info("duplicate scan complete", "root", canonical, "files", len(paths), "groups", len(groups))
	return domain.DuplicateResult{Groups: groups}, nil
}

func hashFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
