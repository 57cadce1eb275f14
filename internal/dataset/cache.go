// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"sync"
	"time"

	"github.com/pdiddy/cord19-explorer/pkg/types"
)

// Snapshot is the cleaned table of one input file. It is never modified
// after the Cache builds it.
type Snapshot struct {
	// Path is the input file the snapshot was built from.
	Path string

	// RawRows is the number of data rows in the input file.
	RawRows int

	// Records holds the cleaned records in file order.
	Records []types.CleanedRecord

	// Bounds is the min/max year of Records; valid only when HasData.
	Bounds types.YearRange

	// HasData is false when no row survived cleaning.
	HasData bool

	// LoadedAt is when the file was read.
	LoadedAt time.Time
}

// LoadFunc reads the input at path and returns its raw row count and the
// cleaned records.
type LoadFunc func(path string) (rawRows int, records []types.CleanedRecord, err error)

// LoadCSV loads and cleans the metadata CSV at path.
func LoadCSV(path string) (int, []types.CleanedRecord, error) {
	t, err := Load(path)
	if err != nil {
		return 0, nil, err
	}
	return t.Len(), Clean(t.Records()), nil
}

// Cache loads and cleans an input file on first use and hands out the same
// Snapshot afterwards. A failed load is not kept, so the next call retries.
type Cache struct {
	path string
	load LoadFunc

	mu   sync.Mutex
	snap *Snapshot
}

// NewCache returns a Cache for the metadata CSV at path.
func NewCache(path string) *Cache {
	return NewCacheWith(path, LoadCSV)
}

// NewCacheWith returns a Cache that reads path with load.
func NewCacheWith(path string, load LoadFunc) *Cache {
	return &Cache{path: path, load: load}
}

// Path returns the input file path.
func (c *Cache) Path() string {
	return c.path
}

// Get returns the cleaned snapshot, loading it if needed.
func (c *Cache) Get() (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil {
		return c.snap, nil
	}

	raw, records, err := c.load(c.path)
	if err != nil {
		return nil, err
	}
	bounds, ok := Bounds(records)
	c.snap = &Snapshot{
		Path:     c.path,
		RawRows:  raw,
		Records:  records,
		Bounds:   bounds,
		HasData:  ok,
		LoadedAt: time.Now(),
	}
	return c.snap, nil
}
