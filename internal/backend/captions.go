package backend

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmcdole/lorastudio/internal/domain"
)

// imagePath joins a project-relative image path onto root, refusing paths
// that leave it
func imagePath(root, relativePath string) (string, error) {
	path := filepath.Join(root, filepath.FromSlash(relativePath))
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", domain.ErrOutsideProject, relativePath)
	}
	return path, nil
}

// readCaption loads the caption next to path. A missing file is not an error.
func readCaption(path string) (domain.Caption, error) {
	raw, err := os.ReadFile(captionPathFor(path))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Caption{}, nil
	}
	if err != nil {
		return domain.Caption{}, fmt.Errorf("reading caption: %w", err)
	}
	return domain.Caption{Exists: true, Tags: ParseTags(string(raw))}, nil
}

func writeCaption(path string, tags []string) (domain.Caption, error) {
	if err := os.WriteFile(captionPathFor(path), []byte(strings.Join(tags, ", ")), 0644); err != nil {
		return domain.Caption{}, fmt.Errorf("writing caption: %w", err)
	}
	return domain.Caption{Exists: true, Tags: tags}, nil
}

// captionTarget validates root and returns the image's absolute path
func (b *Local) captionTarget(ctx context.Context, root, relativePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := resolveRoot(root); err != nil {
		return "", err
	}
	return imagePath(root, relativePath)
}

// WriteCaption replaces the caption with tags joined by ", ". Blank tags are
// dropped and the rest trimmed.
func (b *Local) WriteCaption(ctx context.Context, root, relativePath string, tags []string) (domain.Caption, error) {
	path, err := b.captionTarget(ctx, root, relativePath)
	if err != nil {
		return domain.Caption{}, err
	}

	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}

	caption, err := writeCaption(path, clean)
	if err != nil {
		return domain.Caption{}, err
	}
	b.logger.Debug("caption written", "root", root, "path", relativePath, "tags", len(clean))
	return caption, nil
}

// AddTag appends the trimmed tag. A blank tag or one already present
// (ignoring case) leaves the file untouched.
func (b *Local) AddTag(ctx context.Context, root, relativePath, tag string) (domain.Caption, error) {
	path, err := b.captionTarget(ctx, root, relativePath)
	if err != nil {
		return domain.Caption{}, err
	}
	caption, err := readCaption(path)
	if err != nil {
		return domain.Caption{}, err
	}

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return caption, nil
	}
	for _, t := range caption.Tags {
		if strings.EqualFold(t, tag) {
			return caption, nil
		}
	}

	caption, err = writeCaption(path, append(caption.Tags, tag))
	if err != nil {
		return domain.Caption{}, err
	}
	b.logger.Debug("tag added", "root", root, "path", relativePath, "tag", tag)
	return caption, nil
}

// RemoveTag drops every tag equal to the trimmed tag, ignoring case. Without a
// caption file nothing is written.
func (b *Local) RemoveTag(ctx context.Context, root, relativePath, tag string) (domain.Caption, error) {
	path, err := b.captionTarget(ctx, root, relativePath)
	if err != nil {
		return domain.Caption{}, err
	}
	caption, err := readCaption(path)
	if err != nil || !caption.Exists {
		return caption, err
	}

	tag = strings.TrimSpace(tag)
	kept := make([]string, 0, len(caption.Tags))
	for _, t := range caption.Tags {
		if !strings.EqualFold(t, tag) {
			kept = append(kept, t)
		}
	}

	caption, err = writeCaption(path, kept)
	if err != nil {
		return domain.Caption{}, err
	}
	b.logger.Debug("tag removed", "root", root, "path", relativePath, "tag", tag)
	return caption, nil
}
