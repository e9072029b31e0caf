// Package state holds the application's plain state objects. None of them lock:
// each field has one writer (a session coordinator) running on the UI loop.
package state

// ProjectIdentity is the open project's root and whether its scan is outstanding.
type ProjectIdentity struct {
	rootPath  string
	hasRoot   bool
	isLoading bool
}

// NewProjectIdentity returns an identity with no project open
func NewProjectIdentity() *ProjectIdentity {
	return &ProjectIdentity{}
}

// RootPath returns the open project's root, ok=false when none is open
func (p *ProjectIdentity) RootPath() (string, bool) {
	return p.rootPath, p.hasRoot
}

// HasProject reports whether a project root is set
func (p *ProjectIdentity) HasProject() bool {
	return p.hasRoot
}

// SetRootPath opens root. An empty root closes the project.
func (p *ProjectIdentity) SetRootPath(root string) {
	p.rootPath = root
	p.hasRoot = root != ""
}

// IsLoading reports whether a scan for the current root is outstanding
func (p *ProjectIdentity) IsLoading() bool {
	return p.isLoading
}

// SetLoading raises or clears the loading flag. Callers raise it strictly
// before issuing the scan so the rising edge precedes any progress event.
func (p *ProjectIdentity) SetLoading(loading bool) {
	p.isLoading = loading
}
