package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FSStore persists captures as one JSON file per request under a base
// directory, using a temp-file-then-rename write for crash safety
// (grounded on the teacher's gorm.go transaction-wrapping discipline,
// adapted here to filesystem writes since there is no database).
type FSStore struct {
	dir   string
	mu    sync.Mutex
	subMu sync.RWMutex
	subs  []func(CaptureFile)
}

func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("capture: create store dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) Save(ctx context.Context, record CaptureRecord) (CaptureFile, error) {
	filename := record.Filename()
	path := filepath.Join(s.dir, filename)

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return CaptureFile{}, fmt.Errorf("capture: marshal record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".tmp-capture-*")
	if err != nil {
		return CaptureFile{}, fmt.Errorf("capture: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return CaptureFile{}, fmt.Errorf("capture: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return CaptureFile{}, fmt.Errorf("capture: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return CaptureFile{}, fmt.Errorf("capture: rename temp file: %w", err)
	}

	cf := CaptureFile{File: filename, Capture: record}
	s.notify(cf)
	return cf, nil
}

func (s *FSStore) List(ctx context.Context, limit int) ([]CaptureFile, error) {
	names, err := s.listFilenames()
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	out := make([]CaptureFile, 0, len(names))
	for _, name := range names {
		if cf, err := s.readFile(name); err == nil {
			out = append(out, cf)
		}
	}
	return out, nil
}

// Get resolves idOrPrefix against the record's own ID first (exact
// match, then prefix), per spec §4.6's priority, falling back to a
// substring match against the filename itself. The filename only ever
// embeds the ID's first 8 characters (CaptureRecord.Filename), so the
// fallback pass is normally redundant with the prefix check above —
// kept for callers that pass a full filename instead of an ID.
func (s *FSStore) Get(ctx context.Context, idOrPrefix string) (CaptureFile, error) {
	names, err := s.listFilenames()
	if err != nil {
		return CaptureFile{}, err
	}

	for _, name := range names {
		cf, err := s.readFile(name)
		if err != nil {
			continue
		}
		if cf.Capture.ID == idOrPrefix || strings.HasPrefix(cf.Capture.ID, idOrPrefix) {
			return cf, nil
		}
	}
	for _, name := range names {
		if strings.Contains(name, idOrPrefix) {
			if cf, err := s.readFile(name); err == nil {
				return cf, nil
			}
		}
	}
	return CaptureFile{}, ErrNotFound
}

func (s *FSStore) Search(ctx context.Context, query string) ([]CaptureFile, error) {
	names, err := s.listFilenames()
	if err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	q := strings.ToLower(strings.TrimSpace(query))
	var out []CaptureFile
	for _, name := range names {
		cf, err := s.readFile(name)
		if err != nil {
			continue
		}
		if q == "" || matchesQuery(cf, name, q) {
			out = append(out, cf)
		}
	}
	return out, nil
}

func matchesQuery(cf CaptureFile, filename, q string) bool {
	candidates := []string{cf.Capture.ID, cf.Capture.Path, cf.Capture.Method, cf.Capture.Provider, filename}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}

func (s *FSStore) Delete(ctx context.Context, idOrPrefix string) error {
	cf, err := s.Get(ctx, idOrPrefix)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, cf.File)); err != nil {
		return fmt.Errorf("capture: delete capture: %w", err)
	}
	return nil
}

func (s *FSStore) DeleteAll(ctx context.Context) error {
	names, err := s.listFilenames()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("capture: delete capture: %w", err)
		}
	}
	return nil
}

func (s *FSStore) Subscribe(fn func(CaptureFile)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		s.subs[idx] = nil
	}
}

func (s *FSStore) notify(cf CaptureFile) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, fn := range s.subs {
		if fn != nil {
			safeNotify(fn, cf)
		}
	}
}

// safeNotify swallows a panicking subscriber the same way
// pkg/webhook/observation.Bus swallows a panicking observer.
func safeNotify(fn func(CaptureFile), cf CaptureFile) {
	defer func() { recover() }()
	fn(cf)
}

func (s *FSStore) listFilenames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("capture: read store dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") || strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *FSStore) readFile(name string) (CaptureFile, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return CaptureFile{}, err
	}
	var record CaptureRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return CaptureFile{}, err
	}
	return CaptureFile{File: name, Capture: record}, nil
}
