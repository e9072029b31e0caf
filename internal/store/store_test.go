package store

import (
	"testing"
	"time"
)

func TestStore_Modes(t *testing.T) {
	modes := map[string]func(t *testing.T) string{
		"memory": func(t *testing.T) string { return "" },
		"bolt":   func(t *testing.T) string { return t.TempDir() },
	}

	for name, dirFn := range modes {
		t.Run(name, func(t *testing.T) {
			s, err := Open(dirFn(t))
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer s.Close()

			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			must(t, s.RecordProject("/a", 10, base))
			must(t, s.RecordProject("/b", 20, base.Add(time.Hour)))
			must(t, s.RecordProject("/c", 30, base.Add(2*time.Hour)))
			must(t, s.RecordProject("/a", 11, base.Add(3*time.Hour))) // reopened

			recent := s.RecentProjects(2)
			if len(recent) != 2 || recent[0].Root != "/a" || recent[1].Root != "/c" {
				t.Fatalf("RecentProjects(2) = %+v", recent)
			}
			if recent[0].ImageCount != 11 {
				t.Errorf("ImageCount = %d, want 11", recent[0].ImageCount)
			}
			if all := s.RecentProjects(0); len(all) != 3 {
				t.Errorf("RecentProjects(0) = %d entries, want 3", len(all))
			}

			must(t, s.ForgetProject("/c"))
			if _, ok := s.GetProject("/c"); ok {
				t.Error("/c still present after ForgetProject")
			}

			if _, ok := s.GetPreferences(); ok {
				t.Error("preferences present before save")
			}
			must(t, s.SavePreferences(Preferences{SortBy: "rating", SortOrder: "desc"}))
			p, ok := s.GetPreferences()
			if !ok || p.SortBy != "rating" || p.SortOrder != "desc" {
				t.Errorf("GetPreferences() = %+v, %v", p, ok)
			}
		})
	}
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	must(t, s.RecordProject("/data", 5, time.Now()))
	must(t, s.SavePreferences(Preferences{SortBy: "file_size", SortOrder: "asc"}))
	must(t, s.Close())

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if p, ok := s.GetProject("/data"); !ok || p.ImageCount != 5 {
		t.Errorf("GetProject() = %+v, %v", p, ok)
	}
	if p, ok := s.GetPreferences(); !ok || p.SortBy != "file_size" {
		t.Errorf("GetPreferences() = %+v, %v", p, ok)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
