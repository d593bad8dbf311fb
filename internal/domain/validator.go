package domain

import (
	"time"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

// ChangeSet is the set of changed files a check run reports on.
type ChangeSet struct {
	Files []m.ChangedFile
	// LastModified is the newest modification time among Files.
	LastModified time.Time
}

// NewChangeSet builds a ChangeSet and computes its LastModified time.
func NewChangeSet(files []m.ChangedFile) ChangeSet {
	changes := ChangeSet{Files: files}

	for _, file := range files {
		if file.ModTime.After(changes.LastModified) {
			changes.LastModified = file.ModTime
		}
	}

	return changes
}

// Empty reports whether no file changed.
func (c ChangeSet) Empty() bool {
	return len(c.Files) == 0
}

// Validate decides whether warnings should be built. Coverage timestamps
// carry whole seconds, so both sides are compared at that resolution.
func Validate(changes ChangeSet, coverageCreatedAt time.Time) m.ValidationResult {
	if changes.Empty() {
		return m.ValidationNoChanges
	}

	lastChange := changes.LastModified.Truncate(time.Second)
	if lastChange.After(coverageCreatedAt.Truncate(time.Second)) {
		return m.ValidationStaleCoverage
	}

	return m.ValidationOK
}
