package domain

import (
	"slices"
	"sync"

	m "github.com/NeatNerdPrime/undercover/internal/model"
	"github.com/google/uuid"
)

// IgnoredFileSet accumulates the files a coverage collection run excluded.
// One set belongs to one run: the filter hook and every formatter of that run
// share the same instance, concurrent runs each create their own.
type IgnoredFileSet struct {
	runID string

	mu    sync.Mutex
	index map[m.Path]struct{}
	files []m.Path
}

// NewIgnoredFileSet creates an empty set for a new run.
func NewIgnoredFileSet() *IgnoredFileSet {
	return &IgnoredFileSet{
		runID: uuid.NewString(),
		index: make(map[m.Path]struct{}),
	}
}

// RunID identifies the run the set belongs to.
func (s *IgnoredFileSet) RunID() string {
	if s == nil {
		return ""
	}

	return s.runID
}

// Add records files, skipping ones already present, and returns how many
// were new. Adding to a nil set records nothing.
func (s *IgnoredFileSet) Add(files ...m.Path) int {
	if s == nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0

	for _, file := range files {
		if _, ok := s.index[file]; ok {
			continue
		}

		s.index[file] = struct{}{}
		s.files = append(s.files, file)
		added++
	}

	return added
}

// Files returns the recorded files in first-seen order. A nil set has none.
func (s *IgnoredFileSet) Files() []m.Path {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.files)
}

// Len returns the number of recorded files.
func (s *IgnoredFileSet) Len() int {
	if s == nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.files)
}
