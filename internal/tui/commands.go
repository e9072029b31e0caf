package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/state"
	"github.com/mmcdole/lorastudio/internal/store"
)

// Command factories for async operations

// ScanProjectCmd scans a project folder. The error travels in the message so
// the query can settle either way.
func ScanProjectCmd(backend domain.Backend, root string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		images, err := backend.ScanProject(ctx, root)
		return ProjectScannedMsg{Root: root, Images: images, Err: err}
	}
}

// FindDuplicatesCmd runs a duplicate scan for one duplicates dialog session
func FindDuplicatesCmd(backend domain.Backend, session uint64, root string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := backend.FindDuplicates(ctx, root)
		return DuplicatesFoundMsg{Session: session, Root: root, Result: result, Err: err}
	}
}

// SetRatingCmd stores a new rating for an image
func SetRatingCmd(backend domain.Backend, root string, img domain.ImageEntry, rating domain.Rating) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := backend.SetRating(ctx, root, img.RelativePath, rating); err != nil {
			return ErrMsg{Err: err, Context: "saving rating"}
		}
		img.Rating = rating
		return RatingSavedMsg{Root: root, Image: img}
	}
}

// captionCmd runs one caption edit and reports the image with its new tags
func captionCmd(root string, img domain.ImageEntry, edit func(ctx context.Context) (domain.Caption, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		caption, err := edit(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "saving caption"}
		}
		return CaptionSavedMsg{Root: root, Image: img.WithCaption(caption)}
	}
}

// AddTagCmd appends a tag to an image's caption
func AddTagCmd(backend domain.Backend, root string, img domain.ImageEntry, tag string) tea.Cmd {
	return captionCmd(root, img, func(ctx context.Context) (domain.Caption, error) {
		return backend.AddTag(ctx, root, img.RelativePath, tag)
	})
}

// RemoveTagCmd drops a tag from an image's caption
func RemoveTagCmd(backend domain.Backend, root string, img domain.ImageEntry, tag string) tea.Cmd {
	return captionCmd(root, img, func(ctx context.Context) (domain.Caption, error) {
		return backend.RemoveTag(ctx, root, img.RelativePath, tag)
	})
}

// WriteCaptionCmd replaces an image's caption
func WriteCaptionCmd(backend domain.Backend, root string, img domain.ImageEntry, tags []string) tea.Cmd {
	return captionCmd(root, img, func(ctx context.Context) (domain.Caption, error) {
		return backend.WriteCaption(ctx, root, img.RelativePath, tags)
	})
}

// LoadRecentProjectsCmd reads recent projects from the store
func LoadRecentProjectsCmd(st *store.Store, limit int) tea.Cmd {
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		return RecentProjectsMsg{Projects: st.RecentProjects(limit)}
	}
}

// RecordProjectCmd remembers a successfully opened project
func RecordProjectCmd(st *store.Store, root string, count int, limit int) tea.Cmd {
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		if err := st.RecordProject(root, count, time.Now()); err != nil {
			return ErrMsg{Err: err, Context: "saving recent project"}
		}
		return RecentProjectsMsg{Projects: st.RecentProjects(limit)}
	}
}

// SavePreferencesCmd persists the list ordering
func SavePreferencesCmd(st *store.Store, filters state.FilterState) tea.Cmd {
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		prefs := store.Preferences{
			SortBy:    filters.SortBy.String(),
			SortOrder: filters.SortOrder.String(),
		}
		if err := st.SavePreferences(prefs); err != nil {
			slog.Warn("failed to save preferences", "error", err)
		}
		return nil
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// StatusCmd reports a message in the status bar
func StatusCmd(format string, args ...any) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: fmt.Sprintf(format, args...)}
	}
}
