package components

import (
	"strings"
	"testing"

	"github.com/mmcdole/lorastudio/internal/domain"
)

func TestInspector_View(t *testing.T) {
	tests := []struct {
		name string
		item *domain.ImageEntry
		want []string
	}{
		{
			name: "no selection",
			want: []string{"Info", "No image selected"},
		},
		{
			name: "captioned",
			item: &domain.ImageEntry{Filename: "a.png", RelativePath: "cats/a.png", HasCaption: true, Tags: []string{"cat", "sitting"}, Rating: domain.RatingGood, Width: 512, Height: 768, FileSize: 2048},
			want: []string{"a.png", "Good", "cats/a.png", "Tags (2)", "cat, sitting", "512 × 768", "2.0 kB"},
		},
		{
			name: "uncaptioned",
			item: &domain.ImageEntry{Filename: "b.png", RelativePath: "b.png"},
			want: []string{"No caption file", "unknown size"},
		},
		{
			name: "empty caption",
			item: &domain.ImageEntry{Filename: "c.png", RelativePath: "c.png", HasCaption: true},
			want: []string{"Caption is empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insp := NewInspector()
			insp.SetSize(40, 24)
			insp.SetItem(tt.item)
			if insp.HasItem() != (tt.item != nil) {
				t.Errorf("HasItem() = %v", insp.HasItem())
			}
			view := insp.View()
			for _, want := range tt.want {
				if !strings.Contains(view, want) {
					t.Errorf("view missing %q:\n%s", want, view)
				}
			}
		})
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"a b c", 0, "a b c"},
		{"one two three", 7, "one two\nthree"},
		{"longword short", 4, "longword\nshort"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := wordWrap(tt.text, tt.width); got != tt.want {
			t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
