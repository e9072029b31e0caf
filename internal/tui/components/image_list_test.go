package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mmcdole/lorastudio/internal/domain"
)

func makeImages(n int) []domain.ImageEntry {
	out := make([]domain.ImageEntry, n)
	for i := range out {
		name := fmt.Sprintf("img%03d.png", i)
		out[i] = domain.ImageEntry{ID: name, RelativePath: name, Filename: name, Width: 512, Height: 512, FileSize: 1500}
	}
	return out
}

func TestImageList_Navigation(t *testing.T) {
	l := NewImageList()
	l.SetSize(80, 10)
	l.SetItems(makeImages(20))

	tests := []struct {
		key  string
		want int
	}{
		{"j", 1},
		{"down", 2},
		{"k", 1},
		{"G", 19},
		{"j", 19},
		{"g", 0},
		{"k", 0},
		{"pgdown", 2},
		{"pgup", 0},
	}
	for _, tt := range tests {
		if !l.HandleKey(tt.key) {
			t.Fatalf("key %q not handled", tt.key)
		}
		if l.SelectedIndex() != tt.want {
			t.Errorf("after %q cursor = %d, want %d", tt.key, l.SelectedIndex(), tt.want)
		}
	}

	if l.HandleKey("z") {
		t.Error("unknown key handled")
	}
}

func TestImageList_SetItemsKeepsSelection(t *testing.T) {
	l := NewImageList()
	l.SetSize(80, 10)
	images := makeImages(5)
	l.SetItems(images)
	l.HandleKey("j")
	l.HandleKey("j")

	// reversed order, same images
	reversed := make([]domain.ImageEntry, len(images))
	for i := range images {
		reversed[len(images)-1-i] = images[i]
	}
	l.SetItems(reversed)

	sel, ok := l.Selected()
	if !ok || sel.ID != "img002.png" {
		t.Errorf("selected %q, want img002.png", sel.ID)
	}

	l.SetItems(images[:1])
	if sel, _ := l.Selected(); sel.ID != "img000.png" {
		t.Errorf("selection gone: got %q, want first image", sel.ID)
	}
}

func TestImageList_Empty(t *testing.T) {
	l := NewImageList()
	l.SetSize(60, 8)
	if _, ok := l.Selected(); ok {
		t.Error("empty list has a selection")
	}
	l.HandleKey("j")
	l.HandleKey("G")
	if l.SelectedIndex() != 0 {
		t.Errorf("cursor = %d on empty list", l.SelectedIndex())
	}
	if !strings.Contains(l.View(false), "No images") {
		t.Error("empty view should say so")
	}
}

func TestImageList_ViewShowsSizes(t *testing.T) {
	l := NewImageList()
	l.SetSize(100, 10)
	l.SetItems(makeImages(3))

	view := l.View(true)
	for _, want := range []string{"img000.png", "512x512", "1.5 kB", "uncaptioned"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
