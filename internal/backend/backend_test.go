package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/mmcdole/lorastudio/internal/domain"
)

type recordingEmitter struct {
	mu     sync.Mutex
	counts []int
}

func (r *recordingEmitter) Emit(name string, payload any) {
	if name != domain.ProjectLoadProgressEvent {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, payload.(domain.ProgressEvent).Count)
}

func pngBytes(t *testing.T, w, h int, shade uint8) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = shade
	}
	img.Set(0, 0, color.Gray{Y: shade + 1})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.png"), pngBytes(t, 4, 3, 10))
	writeFile(t, filepath.Join(root, "b.txt"), []byte("cat, orange , ,sitting"))
	writeFile(t, filepath.Join(root, "sub", "A.PNG"), pngBytes(t, 2, 2, 20))
	writeFile(t, filepath.Join(root, "notes.md"), []byte("ignored"))
	writeFile(t, filepath.Join(root, metaDir, "thumb.png"), pngBytes(t, 1, 1, 30))
	writeFile(t, filepath.Join(root, metaDir, "ratings.json"), []byte(`{"ratings":{"b.png":"good"}}`))

	emitter := &recordingEmitter{}
	entries, err := New(emitter, nil).ScanProject(context.Background(), root)
	if err != nil {
		t.Fatalf("ScanProject() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
	b, a := entries[0], entries[1]
	if b.RelativePath != "b.png" || a.RelativePath != "sub/A.PNG" {
		t.Errorf("order = %q, %q", b.RelativePath, a.RelativePath)
	}
	if !b.HasCaption || !slices.Equal(b.Tags, []string{"cat", "orange", "sitting"}) {
		t.Errorf("caption: %v %v", b.HasCaption, b.Tags)
	}
	if b.Rating != domain.RatingGood || a.Rating != domain.RatingNone {
		t.Errorf("ratings: %v %v", b.Rating, a.Rating)
	}
	if b.Width != 4 || b.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 4x3", b.Width, b.Height)
	}
	if a.HasCaption || a.FileSize == 0 || a.Filename != "A.PNG" {
		t.Errorf("entry a = %+v", a)
	}

	if !slices.Equal(emitter.counts, []int{2}) {
		t.Errorf("progress = %v, want only the final [2]", emitter.counts)
	}
}

func TestScanProject_ProgressEvery50(t *testing.T) {
	root := t.TempDir()
	data := pngBytes(t, 1, 1, 0)
	for i := 0; i < 120; i++ {
		writeFile(t, filepath.Join(root, fmt.Sprintf("img%03d.png", i)), data)
	}

	emitter := &recordingEmitter{}
	entries, err := New(emitter, nil).ScanProject(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 120 {
		t.Fatalf("got %d entries", len(entries))
	}

	counts := slices.Clone(emitter.counts)
	slices.Sort(counts)
	if !slices.Equal(counts, []int{50, 100, 120}) {
		t.Errorf("progress counts = %v, want [50 100 120]", counts)
	}
	if emitter.counts[len(emitter.counts)-1] != 120 {
		t.Error("final event must carry the total")
	}
}

func TestScanProject_Errors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "x.png")
	writeFile(t, file, []byte("x"))

	b := New(nil, nil)
	if _, err := b.ScanProject(context.Background(), filepath.Join(root, "missing")); !errors.Is(err, domain.ErrPathNotFound) {
		t.Errorf("missing root error = %v", err)
	}
	if _, err := b.ScanProject(context.Background(), file); !errors.Is(err, domain.ErrNotAFolder) {
		t.Errorf("file root error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.ScanProject(ctx, root); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled scan error = %v", err)
	}
}

func TestFindDuplicates(t *testing.T) {
	root := t.TempDir()
	same := pngBytes(t, 2, 2, 50)
	writeFile(t, filepath.Join(root, "a.png"), same)
	writeFile(t, filepath.Join(root, "sub", "copy.png"), same)
	writeFile(t, filepath.Join(root, "z.png"), same)
	writeFile(t, filepath.Join(root, "other.png"), pngBytes(t, 2, 2, 90))
	writeFile(t, filepath.Join(root, "pair1.jpg"), []byte("identical bytes"))
	writeFile(t, filepath.Join(root, "pair2.jpg"), []byte("identical bytes"))
	writeFile(t, filepath.Join(root, "same.txt"), []byte("identical bytes"))

	result, err := New(nil, nil).FindDuplicates(context.Background(), root)
	if err != nil {
		t.Fatalf("FindDuplicates() error = %v", err)
	}

	want := [][]string{
		{"a.png", "sub/copy.png", "z.png"},
		{"pair1.jpg", "pair2.jpg"},
	}
	if len(result.Groups) != len(want) {
		t.Fatalf("groups = %v, want %v", result.Groups, want)
	}
	for i := range want {
		if !slices.Equal(result.Groups[i], want[i]) {
			t.Errorf("group %d = %v, want %v", i, result.Groups[i], want[i])
		}
	}
}

func TestFindDuplicates_NoneIsEmptyNotNil(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.png"), pngBytes(t, 1, 1, 1))

	result, err := New(nil, nil).FindDuplicates(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if result.Groups == nil || len(result.Groups) != 0 {
		t.Errorf("Groups = %#v, want empty slice", result.Groups)
	}

	if _, err := New(nil, nil).FindDuplicates(context.Background(), filepath.Join(root, "nope")); !errors.Is(err, domain.ErrPathNotFound) {
		t.Errorf("missing root error = %v", err)
	}
}

func TestSetRating(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.png"), pngBytes(t, 1, 1, 1))
	b := New(nil, nil)
	ctx := context.Background()

	if err := b.SetRating(ctx, root, "a.png", domain.RatingNeedsEdit); err != nil {
		t.Fatalf("SetRating() error = %v", err)
	}
	if got := loadRatings(root).Ratings["a.png"]; got != "needs_edit" {
		t.Errorf("stored rating = %q", got)
	}

	entries, err := b.ScanProject(ctx, root)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Rating != domain.RatingNeedsEdit {
		t.Errorf("scanned rating = %v", entries[0].Rating)
	}

	if err := b.SetRating(ctx, root, "a.png", domain.RatingNone); err != nil {
		t.Fatal(err)
	}
	if _, ok := loadRatings(root).Ratings["a.png"]; ok {
		t.Error("RatingNone should remove the entry")
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , ,", nil},
		{"a,b", []string{"a", "b"}},
		{" 1girl , solo,\nsmile ", []string{"1girl", "solo", "smile"}},
	}
	for _, tt := range tests {
		if got := ParseTags(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
