// Package session owns the asynchronous side of the UI: the project scan
// query, the load coordinator that keeps the loading flag and progress
// counter consistent, and the duplicate scan session.
package session

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/events"
	"github.com/mmcdole/lorastudio/internal/state"
)

// userHomeDir is swapped out by tests
var userHomeDir = os.UserHomeDir

// App is the process-wide application state. It is created once at startup and
// handed to the UI; tests build their own.
type App struct {
	Project  *state.ProjectIdentity
	Progress *state.ProgressTracker
	Filters  *state.FilterState
	Scan     *ScanQuery
	Loader   *LoadCoordinator

	logger *slog.Logger
}

// NewApp creates empty application state
func NewApp(logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	project := state.NewProjectIdentity()
	progress := state.NewProgressTracker()
	return &App{
		Project:  project,
		Progress: progress,
		Filters:  state.NewFilterState(),
		Scan:     &ScanQuery{},
		Loader:   NewLoadCoordinator(project, progress, logger),
		logger:   logger,
	}
}

// OpenProject starts loading root. The loading flag is raised and its rising
// edge observed before this returns, so the caller may issue the scan right
// after and no progress event of the new scan can precede the reset.
func (a *App) OpenProject(root string) (string, error) {
	root = NormalizeRoot(root)
	if root == "" {
		return "", domain.ErrNoProject
	}
	if a.Project.IsLoading() {
		return "", domain.ErrLoadInProgress
	}

	a.Project.SetRootPath(root)
	a.Project.SetLoading(true)
	a.Scan.Begin(root)
	a.Loader.Observe(true)

	a.logger.Info("opening project", "root", root)
	return root, nil
}

// ResolveScan records a finished scan and lets the coordinator clear loading
func (a *App) ResolveScan(root string, images []domain.ImageEntry, err error) QueryStatus {
	status := a.Scan.Resolve(root, images, err)
	a.Loader.Settle(status)
	if err != nil {
		a.logger.Error("project scan failed", "root", root, "error", err)
	} else {
		a.logger.Info("project scan finished", "root", root, "images", len(images))
	}
	return status
}

// Sync runs the coordinator over the current loading flag. The UI calls it
// after every update pass.
func (a *App) Sync() {
	a.Loader.Observe(a.Project.IsLoading())
}

// SubscribeProgress acquires the progress subscription for the app's lifetime
func (a *App) SubscribeProgress(bus *events.Bus, deliver func(ProgressDelivery)) {
	a.Loader.Subscribe(bus, deliver)
}

// ApplyProgress applies an event delivered through SubscribeProgress
func (a *App) ApplyProgress(d ProgressDelivery) bool {
	return a.Loader.ApplyProgress(d)
}

// Visible returns the scanned images after filters and sorting
func (a *App) Visible() []domain.ImageEntry {
	return a.Filters.Apply(a.Scan.Images())
}

// Close releases the progress subscription
func (a *App) Close() {
	a.Loader.Close()
}

// NormalizeRoot expands a leading ~ and cleans the path. Blank stays blank.
func NormalizeRoot(root string) string {
	root = strings.TrimSpace(root)
	if root == "" {
		return ""
	}
	if strings.HasPrefix(root, "~") {
		if home, err := userHomeDir(); err == nil {
			root = filepath.Join(home, root[1:])
		}
	}
	return filepath.Clean(root)
}
