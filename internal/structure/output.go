package structure

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arloliu/anvil/internal/collision"
)

// Sink receives the scanner output.
type Sink interface {
	// Waypoint stores a waypoint and reports whether it was new.
	Waypoint(w Waypoint) (bool, error)
	// Dump stores the plain form of a structure start under name.
	Dump(name string, data any) error
}

// DirSink writes one JSON file per waypoint or dump into a directory.
//
// Waypoints are deduplicated by the xxHash64 of their id, so a structure whose start is
// referenced from several chunks yields one file.
type DirSink struct {
	dir string

	mu   sync.Mutex
	seen *collision.Tracker
}

var _ Sink = (*DirSink)(nil)

// NewDirSink creates dir if needed and returns a sink writing into it.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &DirSink{dir: dir, seen: collision.NewTracker()}, nil
}

// Waypoint writes <id>.json unless a waypoint with the same id was already written.
func (s *DirSink) Waypoint(w Waypoint) (bool, error) {
	s.mu.Lock()
	added, err := s.seen.Track(w.ID)
	s.mu.Unlock()

	if err != nil || !added {
		return false, err
	}

	return true, s.writeJSON(w.ID, w)
}

// Written returns the ids of the waypoints written so far.
func (s *DirSink) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.seen.IDs()...)
}

// Dump writes <name>.json.
func (s *DirSink) Dump(name string, data any) error {
	return s.writeJSON(name, data)
}

func (s *DirSink) writeJSON(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(s.dir, fileName(name)+".json"), data, 0o644) //nolint: gosec
}

// fileName keeps names such as "quark:big_dungeon" but removes path separators.
func fileName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name)
}
