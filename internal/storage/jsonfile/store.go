// Package jsonfile persists the booking entities as three JSON arrays on
// disk. Every operation loads the whole array, scans or mutates it in
// memory, and writes the whole array back. There is no cross-process
// locking: concurrent processes race with last-write-wins semantics. A
// mutex serializes operations inside one process only.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	hotelsFile       = "hotels.json"
	customersFile    = "customers.json"
	reservationsFile = "reservations.json"
)

type Store struct {
	dir string
	mu  sync.Mutex
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// loadArray reads a snapshot. A missing file is an empty array; a file
// that fails to decode is logged and treated as empty rather than
// aborting the operation.
func loadArray[T any](path string) []T {
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("file", path).Msg("load failed; treating as empty")
		}
		return nil
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		log.Error().Err(err).Str("file", path).Msg("invalid JSON; treating as empty")
		return nil
	}
	return out
}

// saveArray overwrites the file with the full snapshot, four-space
// indented.
func saveArray[T any](path string, items []T) error {
	if items == nil {
		items = []T{} // keep "[]" on disk, never "null"
	}
	b, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
