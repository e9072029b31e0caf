package state

// ProgressTracker is the latest image count reported by the running scan.
type ProgressTracker struct {
	imagesFound int
}

// NewProgressTracker returns a tracker at zero
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{}
}

// ImagesFound returns the last applied count
func (t *ProgressTracker) ImagesFound() int {
	return t.imagesFound
}

// SetImagesFound overwrites the count. Out-of-order events simply win; negative
// counts clamp to zero.
func (t *ProgressTracker) SetImagesFound(n int) {
	t.imagesFound = max(n, 0)
}

// Reset zeroes the count. Idempotent.
func (t *ProgressTracker) Reset() {
	t.imagesFound = 0
}
