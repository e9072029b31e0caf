package domain

import (
	"slices"
	"strings"
)

// Rating is the reviewer verdict stored per image.
type Rating string

const (
	RatingNone      Rating = "none"
	RatingGood      Rating = "good"
	RatingBad       Rating = "bad"
	RatingNeedsEdit Rating = "needs_edit"
)

// ParseRating maps a stored string to a Rating. Unknown values are RatingNone.
func ParseRating(s string) Rating {
	switch Rating(strings.ToLower(strings.TrimSpace(s))) {
	case RatingGood:
		return RatingGood
	case RatingBad:
		return RatingBad
	case RatingNeedsEdit:
		return RatingNeedsEdit
	default:
		return RatingNone
	}
}

// Next cycles none -> good -> bad -> needs_edit -> none.
func (r Rating) Next() Rating {
	switch r {
	case RatingNone:
		return RatingGood
	case RatingGood:
		return RatingBad
	case RatingBad:
		return RatingNeedsEdit
	default:
		return RatingNone
	}
}

// Label returns the display name
func (r Rating) Label() string {
	switch r {
	case RatingGood:
		return "Good"
	case RatingBad:
		return "Bad"
	case RatingNeedsEdit:
		return "Needs edit"
	default:
		return "Unrated"
	}
}

// Ratings lists every rating in display order
func Ratings() []Rating {
	return []Rating{RatingNone, RatingGood, RatingBad, RatingNeedsEdit}
}

// ImageEntry is one image discovered by a project scan.
type ImageEntry struct {
	ID           string   `json:"id"`
	Path         string   `json:"path"`
	RelativePath string   `json:"relative_path"`
	Filename     string   `json:"filename"`
	HasCaption   bool     `json:"has_caption"`
	Tags         []string `json:"tags"`
	Rating       Rating   `json:"rating"`
	Width        int      `json:"width,omitempty"`  // 0 when unknown
	Height       int      `json:"height,omitempty"` // 0 when unknown
	FileSize     int64    `json:"file_size,omitempty"`
}

// Pixels returns width*height, 0 when the dimensions are unknown
func (e ImageEntry) Pixels() int {
	return e.Width * e.Height
}

// HasTag reports whether the caption contains tag (case-insensitive)
func (e ImageEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Caption is an image's caption file after an edit
type Caption struct {
	Exists bool     `json:"exists"`
	Tags   []string `json:"tags"`
}

// WithCaption returns e with the caption applied
func (e ImageEntry) WithCaption(c Caption) ImageEntry {
	e.HasCaption = c.Exists
	e.Tags = slices.Clone(c.Tags)
	return e
}

// DuplicateResult groups project-relative paths whose contents hash identically.
type DuplicateResult struct {
	Groups [][]string `json:"groups"`
}
