package domain

import "context"

// Backend is the process that scans projects and finds duplicates.
// Calls may block for a long time and must be issued from tea.Cmd functions.
type Backend interface {
	// ScanProject lists every image under root. Progress is published on
	// ProjectLoadProgressEvent while the call runs.
	ScanProject(ctx context.Context, root string) ([]ImageEntry, error)

	// FindDuplicates groups images under root by full-content hash.
	FindDuplicates(ctx context.Context, root string) (DuplicateResult, error)

	// SetRating stores a rating for an image. RatingNone clears it.
	SetRating(ctx context.Context, root, relativePath string, rating Rating) error

	// WriteCaption replaces an image's tags, creating its caption file.
	WriteCaption(ctx context.Context, root, relativePath string, tags []string) (Caption, error)

	// AddTag appends a tag unless an equal one (ignoring case) is present.
	AddTag(ctx context.Context, root, relativePath, tag string) (Caption, error)

	// RemoveTag drops every tag equal to tag, ignoring case.
	RemoveTag(ctx context.Context, root, relativePath, tag string) (Caption, error)
}
