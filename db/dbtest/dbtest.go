// Package dbtest provides sqlite-backed geocache stores for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"geocache-finder/config"
	"geocache-finder/db"
)

var schema = []string{`
CREATE TABLE cache_types (
	type_id    INTEGER PRIMARY KEY,
	cache_type TEXT NOT NULL
)`, `
CREATE TABLE test_data (
	id                INTEGER PRIMARY KEY,
	name              TEXT,
	latitude          REAL NOT NULL,
	longitude         REAL NOT NULL,
	cache_type_id     INTEGER NOT NULL REFERENCES cache_types(type_id),
	difficulty_rating REAL NOT NULL
)`}

// Geocache is one fixture row of test_data.
type Geocache struct {
	ID         int64
	Name       string
	Lat        float64
	Lng        float64
	TypeID     int64
	Difficulty float64
}

// CacheTypes is the cache_types lookup seeded into every store.
var CacheTypes = map[int64]string{
	1: "Traditional",
	2: "Puzzle",
	3: "Multi-cache",
}

// TucsonBox covers Fixtures 1 to 4 but not 5.
var TucsonBox = [4]float64{32.0, 32.5, -111.0, -110.5} // minLat, maxLat, minLng, maxLng

// Fixtures is the default dataset.
var Fixtures = []Geocache{
	{ID: 1, Name: "Saguaro Stash", Lat: 32.25, Lng: -110.91, TypeID: 1, Difficulty: 2},
	{ID: 2, Name: "Catalina Cipher", Lat: 32.30, Lng: -110.80, TypeID: 2, Difficulty: 3},
	{ID: 3, Name: "Wash Walk", Lat: 32.10, Lng: -110.95, TypeID: 1, Difficulty: 3},
	{ID: 4, Name: "Rincon Relay", Lat: 32.40, Lng: -110.60, TypeID: 3, Difficulty: 2},
	{ID: 5, Name: "Flatirons", Lat: 40.00, Lng: -105.00, TypeID: 1, Difficulty: 1},
}

// NewSQLiteStore creates a sqlite file in a temp dir, seeds it with caches and
// returns a store over it. The store is closed when the test ends.
func NewSQLiteStore(t testing.TB, caches []Geocache) *db.SQLStore {
	t.Helper()
	cfg := &config.Config{
		DBDriver:            config.DB_DRIVER_SQLITE,
		DBPath:              filepath.Join(t.TempDir(), "geocaches.db"),
		StoreConnectTimeout: time.Second,
	}
	store, err := db.OpenSQLStore(cfg)
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, stmt := range schema {
		if _, err := store.DB().Exec(stmt); err != nil {
			t.Fatalf("failed to create schema: %v", err)
		}
	}
	for id, label := range CacheTypes {
		if _, err := store.DB().Exec(`INSERT INTO cache_types (type_id, cache_type) VALUES (?, ?)`, id, label); err != nil {
			t.Fatalf("failed to seed cache type %d: %v", id, err)
		}
	}
	for _, g := range caches {
		_, err := store.DB().Exec(
			`INSERT INTO test_data (id, name, latitude, longitude, cache_type_id, difficulty_rating) VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, g.Name, g.Lat, g.Lng, g.TypeID, g.Difficulty,
		)
		if err != nil {
			t.Fatalf("failed to seed geocache %d: %v", g.ID, err)
		}
	}
	return store
}

// NewUnreachableStore returns a store whose database file cannot be opened.
func NewUnreachableStore(t testing.TB) *db.SQLStore {
	t.Helper()
	store, err := db.OpenSQLStore(&config.Config{
		DBDriver:            config.DB_DRIVER_SQLITE,
		DBPath:              filepath.Join(t.TempDir(), "missing", "geocaches.db"),
		StoreConnectTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// CountingStore records how often connections are acquired, queried and released.
type CountingStore struct {
	Inner    db.Store
	acquires atomic.Int64
	queries  atomic.Int64
	releases atomic.Int64
}

func NewCountingStore(inner db.Store) *CountingStore {
	return &CountingStore{Inner: inner}
}

func (s *CountingStore) Acquire(ctx context.Context) (db.Conn, error) {
	s.acquires.Add(1)
	conn, err := s.Inner.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &countingConn{Conn: conn, store: s}, nil
}

func (s *CountingStore) Driver() string { return s.Inner.Driver() }

func (s *CountingStore) Acquires() int64 { return s.acquires.Load() }
func (s *CountingStore) Queries() int64  { return s.queries.Load() }
func (s *CountingStore) Releases() int64 { return s.releases.Load() }

type countingConn struct {
	db.Conn
	store *CountingStore
}

func (c *countingConn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	c.store.queries.Add(1)
	return c.Conn.QueryContext(ctx, query, args...)
}

func (c *countingConn) Close() error {
	c.store.releases.Add(1)
	return c.Conn.Close()
}
