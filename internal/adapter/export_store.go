package adapter

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

// ExportStore persists normalized coverage exports.
type ExportStore interface {
	SaveExport(path m.Path, export m.NormalizedCoverageExport) error
	LoadExport(path m.Path) (m.NormalizedCoverageExport, error)
}

// JSONExportStore reads and writes exports as indented JSON documents.
type JSONExportStore struct {
	fs SourceFSAdapter
}

// NewJSONExportStore constructs a JSONExportStore that does its file access
// through fs.
func NewJSONExportStore(fs SourceFSAdapter) *JSONExportStore {
	return &JSONExportStore{fs: fs}
}

// SaveExport writes export to path, creating parent directories.
func (s *JSONExportStore) SaveExport(path m.Path, export m.NormalizedCoverageExport) error {
	if export.Coverage == nil {
		export.Coverage = map[string]m.FileCoverage{}
	}

	if export.Meta.IgnoredFiles == nil {
		export.Meta.IgnoredFiles = []string{}
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}

	if err := s.fs.MkdirAll(m.Path(filepath.Dir(string(path)))); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	if err := s.fs.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}

	return nil
}

// LoadExport reads an export document from path.
func (s *JSONExportStore) LoadExport(path m.Path) (m.NormalizedCoverageExport, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return m.NormalizedCoverageExport{}, err
	}

	var export m.NormalizedCoverageExport
	if err := json.Unmarshal(data, &export); err != nil {
		return m.NormalizedCoverageExport{}, fmt.Errorf("decode export %s: %w", path, err)
	}

	if export.Coverage == nil {
		export.Coverage = map[string]m.FileCoverage{}
	}

	return export, nil
}
