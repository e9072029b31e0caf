package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketProjects    = []byte("projects")
	bucketPreferences = []byte("preferences")
)

// RecentProject is a project root the user opened before
type RecentProject struct {
	Root       string    `json:"root"`
	ImageCount int       `json:"image_count"`
	OpenedAt   time.Time `json:"opened_at"`
}

// Preferences are the list settings restored at startup
type Preferences struct {
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// Store keeps recent projects and preferences in BoltDB.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// Open opens (or creates) the store under dir. An empty dir keeps
// everything in memory.
func Open(dir string) (*Store, error) {
	if dir == "" {
		// Memory-only mode (no persistence)
		return &Store{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "lorastudio.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketProjects, bucketPreferences} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

// Close releases the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(key))
	})
}

// values returns every raw value in bucket. In memory-only mode the cache is
// the source of truth.
func (s *Store) values(bucket []byte) [][]byte {
	var out [][]byte

	if s.db == nil {
		prefix := string(bucket) + ":"
		s.mu.RLock()
		for k, v := range s.cache {
			if strings.HasPrefix(k, prefix) {
				out = append(out, v)
			}
		}
		s.mu.RUnlock()
		return out
	}

	s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(_, v []byte) error {
			data := make([]byte, len(v))
			copy(data, v)
			out = append(out, data)
			return nil
		})
	})
	return out
}

// === Recent projects ===

// RecordProject remembers root with its last image count
func (s *Store) RecordProject(root string, imageCount int, openedAt time.Time) error {
	return s.set(bucketProjects, root, RecentProject{
		Root:       root,
		ImageCount: imageCount,
		OpenedAt:   openedAt.UTC(),
	})
}

// GetProject returns the stored entry for root
func (s *Store) GetProject(root string) (RecentProject, bool) {
	var p RecentProject
	ok := s.get(bucketProjects, root, &p)
	return p, ok
}

// RecentProjects returns up to limit projects, most recently opened first.
// limit <= 0 returns all.
func (s *Store) RecentProjects(limit int) []RecentProject {
	var projects []RecentProject
	for _, data := range s.values(bucketProjects) {
		var p RecentProject
		if json.Unmarshal(data, &p) == nil {
			projects = append(projects, p)
		}
	}

	slices.SortFunc(projects, func(a, b RecentProject) int {
		if c := b.OpenedAt.Compare(a.OpenedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Root, b.Root)
	})

	if limit > 0 && len(projects) > limit {
		projects = projects[:limit]
	}
	return projects
}

// ForgetProject removes root from the recent list
func (s *Store) ForgetProject(root string) error {
	return s.delete(bucketProjects, root)
}

// === Preferences ===

// GetPreferences returns the saved preferences
func (s *Store) GetPreferences() (Preferences, bool) {
	var p Preferences
	ok := s.get(bucketPreferences, "list", &p)
	return p, ok
}

// SavePreferences stores p
func (s *Store) SavePreferences(p Preferences) error {
	return s.set(bucketPreferences, "list", p)
}
