package components

import (
	"strings"
	"testing"

	"github.com/mmcdole/lorastudio/internal/state"
)

func TestSortModal_Selection(t *testing.T) {
	tests := []struct {
		name      string
		activeKey state.SortKey
		activeOrd state.SortOrder
		keys      []string
		want      *SortSelection
	}{
		{"pick next key uses its default", state.SortName, state.SortAsc, []string{"j", "enter"}, &SortSelection{state.SortFileSize, state.SortDesc}},
		{"pick active key flips order", state.SortRating, state.SortDesc, []string{"enter"}, &SortSelection{state.SortRating, state.SortAsc}},
		{"cursor starts on active", state.SortTagCount, state.SortAsc, []string{"k", "enter"}, &SortSelection{state.SortDimensions, state.SortDesc}},
		{"cursor stops at top", state.SortName, state.SortDesc, []string{"k", "k", "enter"}, &SortSelection{state.SortName, state.SortAsc}},
		{"esc cancels", state.SortName, state.SortAsc, []string{"j", "esc"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSortModal()
			m.Show(tt.activeKey, tt.activeOrd)

			var got *SortSelection
			for _, k := range tt.keys {
				handled, sel := m.HandleKey(k)
				if !handled {
					t.Fatalf("key %q not handled", k)
				}
				if sel != nil {
					got = sel
				}
			}

			if m.IsVisible() {
				t.Error("modal should hide after confirm or cancel")
			}
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("got selection %+v, want none", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("got %v, want %+v", got, *tt.want)
			}
		})
	}
}

func TestSortModal_HiddenIgnoresKeys(t *testing.T) {
	m := NewSortModal()
	if handled, _ := m.HandleKey("enter"); handled {
		t.Error("hidden modal should not handle keys")
	}
	if m.View() != "" {
		t.Error("hidden modal should render nothing")
	}
}

func TestSortModal_View(t *testing.T) {
	m := NewSortModal()
	m.Show(state.SortFileSize, state.SortDesc)
	view := m.View()
	for _, want := range []string{"Sort by", "Name", "File size ↓", "Rating"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
