package state

import "testing"

func TestProjectIdentity(t *testing.T) {
	p := NewProjectIdentity()
	if _, ok := p.RootPath(); ok {
		t.Fatal("new identity should have no project")
	}
	if p.IsLoading() {
		t.Fatal("new identity should not be loading")
	}

	p.SetRootPath("/data/set")
	p.SetLoading(true)
	root, ok := p.RootPath()
	if !ok || root != "/data/set" {
		t.Errorf("RootPath() = %q, %v", root, ok)
	}
	if !p.IsLoading() {
		t.Error("expected loading")
	}

	p.SetRootPath("")
	if p.HasProject() {
		t.Error("empty root should close the project")
	}
}

func TestProgressTracker(t *testing.T) {
	tr := NewProgressTracker()
	tr.SetImagesFound(50)
	tr.SetImagesFound(20) // out of order still overwrites
	if got := tr.ImagesFound(); got != 20 {
		t.Errorf("ImagesFound() = %d, want 20", got)
	}

	tr.SetImagesFound(-3)
	if got := tr.ImagesFound(); got != 0 {
		t.Errorf("negative count: ImagesFound() = %d, want 0", got)
	}

	tr.SetImagesFound(7)
	tr.Reset()
	tr.Reset()
	if got := tr.ImagesFound(); got != 0 {
		t.Errorf("after Reset ImagesFound() = %d, want 0", got)
	}
}
