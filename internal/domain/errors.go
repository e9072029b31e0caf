package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNoProject indicates an operation needs an open project and none is set
	ErrNoProject = errors.New("no project open")

	// ErrPathNotFound indicates the project root does not exist
	ErrPathNotFound = errors.New("folder does not exist")

	// ErrNotAFolder indicates the project root exists but is not a directory
	ErrNotAFolder = errors.New("path is not a folder")

	// ErrOutsideProject indicates an image path escapes the project root
	ErrOutsideProject = errors.New("path is outside the project")

	// ErrLoadInProgress indicates a project switch was requested while a scan is outstanding
	ErrLoadInProgress = errors.New("a project is already loading")
)
