package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmcdole/lorastudio/internal/domain"
)

// ratingsFile is <root>/.lora-studio/ratings.json: relative path -> rating
type ratingsFile struct {
	Ratings map[string]string `json:"ratings"`
}

func ratingsPath(root string) string {
	return filepath.Join(root, metaDir, "ratings.json")
}

// loadRatings reads the ratings file. Missing or unreadable files are empty.
func loadRatings(root string) ratingsFile {
	data := ratingsFile{Ratings: map[string]string{}}
	raw, err := os.ReadFile(ratingsPath(root))
	if err != nil {
		return data
	}
	if err := json.Unmarshal(raw, &data); err != nil || data.Ratings == nil {
		return ratingsFile{Ratings: map[string]string{}}
	}
	return data
}

func saveRatings(root string, data ratingsFile) error {
	path := ratingsPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", metaDir, err)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// SetRating stores rating for relativePath. RatingNone removes the entry.
func (b *Local) SetRating(ctx context.Context, root, relativePath string, rating domain.Rating) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := resolveRoot(root); err != nil {
		return err
	}

	data := loadRatings(root)
	if rating == domain.RatingNone {
		delete(data.Ratings, relativePath)
	} else {
		data.Ratings[relativePath] = string(rating)
	}

	if err := saveRatings(root, data); err != nil {
		return fmt.Errorf("saving rating: %w", err)
	}
	b.logger.Debug("rating saved", "root", root, "path", relativePath, "rating", rating)
	return nil
}
