package tui

import (
	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/store"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ProjectScannedMsg carries the result of a project scan
type ProjectScannedMsg struct {
	Root   string
	Images []domain.ImageEntry
	Err    error
}

// ProgressMsg is a progress event delivered through the bus subscription
type ProgressMsg struct {
	SubID uint64
	Load  uint64
	Event domain.ProgressEvent
}

// DuplicatesFoundMsg carries the result of a duplicate scan
type DuplicatesFoundMsg struct {
	Session uint64 // dialog session that issued the scan
	Root    string
	Result  domain.DuplicateResult
	Err     error
}

// RatingSavedMsg signals that a rating was written
type RatingSavedMsg struct {
	Root  string
	Image domain.ImageEntry
}

// CaptionSavedMsg signals that an image's caption file was rewritten
type CaptionSavedMsg struct {
	Root  string
	Image domain.ImageEntry
}

// RecentProjectsMsg carries recently opened projects from the store
type RecentProjectsMsg struct {
	Projects []store.RecentProject
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// OpenProjectMsg asks the model to open a project folder
type OpenProjectMsg struct {
	Root string
}
