package state

import (
	"cmp"
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/lorastudio/internal/domain"
	sfuzzy "github.com/sahilm/fuzzy"
)

// SortKey is the field the image list is ordered by
type SortKey int

const (
	SortName SortKey = iota
	SortFileSize
	SortDimensions
	SortTagCount
	SortRating
)

var sortKeyNames = map[SortKey]string{
	SortName:       "name",
	SortFileSize:   "file_size",
	SortDimensions: "dimensions",
	SortTagCount:   "tag_count",
	SortRating:     "rating",
}

// String returns the config/storage name of the key
func (k SortKey) String() string {
	if s, ok := sortKeyNames[k]; ok {
		return s
	}
	return "unknown"
}

// Label returns the display name for the key
func (k SortKey) Label() string {
	switch k {
	case SortName:
		return "Name"
	case SortFileSize:
		return "File size"
	case SortDimensions:
		return "Dimensions"
	case SortTagCount:
		return "Tag count"
	case SortRating:
		return "Rating"
	default:
		return "Unknown"
	}
}

// SortKeys returns every key in menu order
func SortKeys() []SortKey {
	return []SortKey{SortName, SortFileSize, SortDimensions, SortTagCount, SortRating}
}

// ParseSortKey maps a name back to a key. Unknown names return SortName, false.
func ParseSortKey(s string) (SortKey, bool) {
	for k, name := range sortKeyNames {
		if name == s {
			return k, true
		}
	}
	return SortName, false
}

// SortOrder is ascending or descending
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// String returns "asc" or "desc"
func (o SortOrder) String() string {
	if o == SortDesc {
		return "desc"
	}
	return "asc"
}

// ParseSortOrder maps "asc"/"desc"; anything else is SortAsc
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(s, "desc") {
		return SortDesc
	}
	return SortAsc
}

// FilterState is the image list's query, filters and ordering.
// Nil filter pointers mean "any".
type FilterState struct {
	Query         string
	ShowCaptioned *bool
	TagFilter     *string
	RatingFilter  *domain.Rating
	SortBy        SortKey
	SortOrder     SortOrder
}

// NewFilterState returns the default filters
func NewFilterState() *FilterState {
	f := &FilterState{}
	f.Reset()
	return f
}

// Reset restores ("", any, any, any, name, asc)
func (f *FilterState) Reset() {
	*f = FilterState{SortBy: SortName, SortOrder: SortAsc}
}

// IsDefault reports whether nothing differs from Reset()
func (f *FilterState) IsDefault() bool {
	return f.Query == "" && f.ShowCaptioned == nil && f.TagFilter == nil &&
		f.RatingFilter == nil && f.SortBy == SortName && f.SortOrder == SortAsc
}

// SetQuery sets the fuzzy query over relative paths
func (f *FilterState) SetQuery(q string) {
	f.Query = strings.TrimSpace(q)
}

// SetShowCaptioned filters on caption presence; nil clears
func (f *FilterState) SetShowCaptioned(v *bool) {
	f.ShowCaptioned = v
}

// CycleCaptioned steps any -> captioned -> uncaptioned -> any
func (f *FilterState) CycleCaptioned() {
	switch {
	case f.ShowCaptioned == nil:
		f.ShowCaptioned = ptr(true)
	case *f.ShowCaptioned:
		f.ShowCaptioned = ptr(false)
	default:
		f.ShowCaptioned = nil
	}
}

// SetTagFilter filters on a tag; blank clears
func (f *FilterState) SetTagFilter(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		f.TagFilter = nil
		return
	}
	f.TagFilter = &tag
}

// SetRatingFilter filters on a rating; nil clears
func (f *FilterState) SetRatingFilter(r *domain.Rating) {
	f.RatingFilter = r
}

// CycleRatingFilter steps any -> none -> good -> bad -> needs_edit -> any
func (f *FilterState) CycleRatingFilter() {
	if f.RatingFilter == nil {
		f.RatingFilter = ptr(domain.RatingNone)
		return
	}
	if *f.RatingFilter == domain.RatingNeedsEdit {
		f.RatingFilter = nil
		return
	}
	f.RatingFilter = ptr(f.RatingFilter.Next())
}

// SetSort picks the sort key and order
func (f *FilterState) SetSort(key SortKey, order SortOrder) {
	f.SortBy = key
	f.SortOrder = order
}

// ToggleOrder flips asc/desc
func (f *FilterState) ToggleOrder() {
	if f.SortOrder == SortAsc {
		f.SortOrder = SortDesc
	} else {
		f.SortOrder = SortAsc
	}
}

// Apply returns the images that pass every filter, ordered by SortBy/SortOrder.
// The input slice is not modified.
func (f *FilterState) Apply(images []domain.ImageEntry) []domain.ImageEntry {
	out := make([]domain.ImageEntry, 0, len(images))
	for _, img := range images {
		if f.ShowCaptioned != nil && img.HasCaption != *f.ShowCaptioned {
			continue
		}
		if f.TagFilter != nil && !img.HasTag(*f.TagFilter) {
			continue
		}
		if f.RatingFilter != nil && img.Rating != *f.RatingFilter {
			continue
		}
		out = append(out, img)
	}

	if f.Query != "" {
		out = matchQuery(f.Query, out)
	}

	slices.SortStableFunc(out, func(a, b domain.ImageEntry) int {
		c := compareBy(f.SortBy, a, b)
		if c == 0 {
			c = strings.Compare(a.RelativePath, b.RelativePath)
		}
		if f.SortOrder == SortDesc {
			return -c
		}
		return c
	})
	return out
}

// pathSource implements sahilm/fuzzy.Source over lowercase relative paths
type pathSource []domain.ImageEntry

func (s pathSource) String(i int) string { return strings.ToLower(s[i].RelativePath) }
func (s pathSource) Len() int            { return len(s) }

func matchQuery(query string, images []domain.ImageEntry) []domain.ImageEntry {
	matches := sfuzzy.FindFrom(strings.ToLower(query), pathSource(images))
	out := make([]domain.ImageEntry, 0, len(matches))
	for _, m := range matches {
		out = append(out, images[m.Index])
	}
	return out
}

func compareBy(key SortKey, a, b domain.ImageEntry) int {
	switch key {
	case SortFileSize:
		return cmp.Compare(a.FileSize, b.FileSize)
	case SortDimensions:
		return cmp.Compare(a.Pixels(), b.Pixels())
	case SortTagCount:
		return cmp.Compare(len(a.Tags), len(b.Tags))
	case SortRating:
		return cmp.Compare(ratingRank(a.Rating), ratingRank(b.Rating))
	default:
		return strings.Compare(strings.ToLower(a.Filename), strings.ToLower(b.Filename))
	}
}

func ratingRank(r domain.Rating) int {
	return slices.Index(domain.Ratings(), r)
}

// TagSuggestions ranks the project's tags against input, best first.
// Blank input returns the most common tags.
func TagSuggestions(input string, images []domain.ImageEntry, limit int) []string {
	counts := make(map[string]int)
	for _, img := range images {
		for _, t := range img.Tags {
			counts[t]++
		}
	}
	tags := make([]string, 0, len(counts))
	for t := range counts {
		tags = append(tags, t)
	}

	input = strings.TrimSpace(input)
	var out []string
	if input == "" {
		slices.SortFunc(tags, func(a, b string) int {
			if c := cmp.Compare(counts[b], counts[a]); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		})
		out = tags
	} else {
		ranks := fuzzy.RankFindFold(input, tags)
		sort.Sort(ranks)
		for _, r := range ranks {
			out = append(out, r.Target)
		}
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func ptr[T any](v T) *T { return &v }
