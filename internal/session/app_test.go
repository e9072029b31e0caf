package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmcdole/lorastudio/internal/domain"
	"github.com/mmcdole/lorastudio/internal/events"
)

func TestApp_OpenProjectRaisesLoadingAndResets(t *testing.T) {
	app := NewApp(nil)
	app.Progress.SetImagesFound(120) // left over from a previous load

	root, err := app.OpenProject("/data/set/")
	if err != nil {
		t.Fatalf("OpenProject() error = %v", err)
	}
	if root != filepath.Clean("/data/set") {
		t.Errorf("root = %q", root)
	}
	if !app.Project.IsLoading() {
		t.Error("loading flag not raised")
	}
	if app.Progress.ImagesFound() != 0 {
		t.Error("progress not reset before the scan was issued")
	}
	if app.Scan.Status() != QueryPending {
		t.Errorf("query status = %v, want pending", app.Scan.Status())
	}

	// Re-rendering while loading must not reset again
	app.Progress.SetImagesFound(50)
	app.Sync()
	app.Sync()
	if app.Progress.ImagesFound() != 50 {
		t.Error("Sync() while loading reset progress")
	}
}

func TestApp_OpenProjectRejectsWhileLoading(t *testing.T) {
	app := NewApp(nil)
	if _, err := app.OpenProject("/a"); err != nil {
		t.Fatal(err)
	}
	if _, err := app.OpenProject("/b"); !errors.Is(err, domain.ErrLoadInProgress) {
		t.Errorf("second OpenProject() error = %v, want ErrLoadInProgress", err)
	}
	if root, _ := app.Project.RootPath(); root != "/a" {
		t.Errorf("root changed to %q during load", root)
	}
	if _, err := app.OpenProject("  "); !errors.Is(err, domain.ErrNoProject) {
		t.Errorf("blank root error = %v", err)
	}
}

func TestApp_LoadingClearsOnSuccessAndError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want QueryStatus
	}{
		{"success", nil, QuerySuccess},
		{"failure", domain.ErrPathNotFound, QueryError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewApp(nil)
			root, _ := app.OpenProject("/p")

			images := []domain.ImageEntry{{ID: "1", RelativePath: "a.png", Filename: "a.png"}}
			if got := app.ResolveScan(root, images, tt.err); got != tt.want {
				t.Errorf("ResolveScan() = %v, want %v", got, tt.want)
			}
			if app.Project.IsLoading() {
				t.Error("loading still raised after settlement")
			}
			if app.Loader.Phase() != PhaseSettled {
				t.Errorf("phase = %v, want settled", app.Loader.Phase())
			}
			if tt.err != nil && !errors.Is(app.Scan.Err(), tt.err) {
				t.Errorf("query error = %v", app.Scan.Err())
			}
		})
	}
}

func TestApp_SecondLoadStartsFromZero(t *testing.T) {
	bus := events.NewBus(nil)
	app := NewApp(nil)
	app.SubscribeProgress(bus, func(d ProgressDelivery) {
		app.ApplyProgress(d)
	})
	defer app.Close()

	root, _ := app.OpenProject("/p")
	bus.Emit(domain.ProjectLoadProgressEvent, domain.ProgressEvent{Count: 200})
	app.ResolveScan(root, nil, nil)
	if app.Progress.ImagesFound() != 200 {
		t.Fatalf("ImagesFound() = %d, want 200", app.Progress.ImagesFound())
	}

	if _, err := app.OpenProject("/q"); err != nil {
		t.Fatal(err)
	}
	if app.Progress.ImagesFound() != 0 {
		t.Errorf("second load started at %d, want 0", app.Progress.ImagesFound())
	}
	bus.Emit(domain.ProjectLoadProgressEvent, domain.ProgressEvent{Count: 50})
	if app.Progress.ImagesFound() != 50 {
		t.Errorf("ImagesFound() = %d, want 50", app.Progress.ImagesFound())
	}
}

func TestApp_Visible(t *testing.T) {
	app := NewApp(nil)
	root, _ := app.OpenProject("/p")
	app.ResolveScan(root, []domain.ImageEntry{
		{ID: "b", Filename: "b.png", RelativePath: "b.png", HasCaption: true},
		{ID: "a", Filename: "a.png", RelativePath: "a.png"},
	}, nil)

	if got := app.Visible(); len(got) != 2 || got[0].ID != "a" {
		t.Errorf("Visible() = %v", got)
	}
	app.Filters.CycleCaptioned()
	if got := app.Visible(); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("captioned Visible() = %v", got)
	}
}

func TestNormalizeRoot(t *testing.T) {
	orig := userHomeDir
	userHomeDir = func() (string, error) { return "/home/u", nil }
	defer func() { userHomeDir = orig }()

	tests := []struct{ in, want string }{
		{"", ""},
		{"   ", ""},
		{"~/data", filepath.Join("/home/u", "data")},
		{"/a/b/../c/", filepath.Clean("/a/c")},
		{" /trimmed ", filepath.Clean("/trimmed")},
	}
	for _, tt := range tests {
		if got := NormalizeRoot(tt.in); got != tt.want {
			t.Errorf("NormalizeRoot(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
