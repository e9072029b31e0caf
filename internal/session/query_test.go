package session

import (
	"errors"
	"testing"

	"github.com/mmcdole/lorastudio/internal/domain"
)

func TestScanQuery_Transitions(t *testing.T) {
	var q ScanQuery
	if q.Status() != QueryIdle || q.Status().Settled() {
		t.Fatalf("zero query status = %v", q.Status())
	}

	q.Begin("/p")
	if q.Status() != QueryPending || q.Root() != "/p" {
		t.Fatalf("after Begin: %v %q", q.Status(), q.Root())
	}

	images := []domain.ImageEntry{{ID: "1"}}
	q.Resolve("/p", images, nil)
	if q.Status() != QuerySuccess || len(q.Images()) != 1 || q.Err() != nil {
		t.Fatalf("after success: %v %v %v", q.Status(), q.Images(), q.Err())
	}

	// Data stays visible while the next scan runs
	q.Begin("/p")
	if len(q.Images()) != 1 {
		t.Error("Begin discarded the previous images")
	}

	boom := errors.New("not readable")
	q.Resolve("/p", nil, boom)
	if q.Status() != QueryError || !errors.Is(q.Err(), boom) || q.Images() != nil {
		t.Errorf("after error: %v %v %v", q.Status(), q.Images(), q.Err())
	}
}

// Documents the chosen policy: no request fencing. When an older scan resolves
// after a newer one, the older result is what the query shows.
func TestScanQuery_LastSettlingWins(t *testing.T) {
	var q ScanQuery
	q.Begin("/old")
	q.Begin("/new")

	q.Resolve("/new", []domain.ImageEntry{{ID: "new"}}, nil)
	q.Resolve("/old", []domain.ImageEntry{{ID: "old"}}, nil)

	if q.Root() != "/old" || q.Images()[0].ID != "old" {
		t.Errorf("root=%q images=%v, want the late /old result", q.Root(), q.Images())
	}
}

func TestScanQuery_UpdateImage(t *testing.T) {
	var q ScanQuery
	q.Resolve("/p", []domain.ImageEntry{{ID: "a", Rating: domain.RatingNone}}, nil)

	if !q.UpdateImage(domain.ImageEntry{ID: "a", Rating: domain.RatingGood}) {
		t.Fatal("UpdateImage() = false for existing id")
	}
	if q.Images()[0].Rating != domain.RatingGood {
		t.Error("rating not updated")
	}
	if q.UpdateImage(domain.ImageEntry{ID: "zzz"}) {
		t.Error("UpdateImage() = true for missing id")
	}
}
