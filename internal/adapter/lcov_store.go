package adapter

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

// LcovStore reads and writes LCOV tracefiles.
type LcovStore interface {
	SaveLcov(path m.Path, coverage map[string]m.FileCoverage) error
	// LoadLcov reads a tracefile; SF paths are made relative to root and the
	// file modification time becomes the export timestamp.
	LoadLcov(path m.Path, root m.Path) (m.NormalizedCoverageExport, error)
}

// LocalLcovStore is the file-backed LcovStore.
type LocalLcovStore struct {
	fs SourceFSAdapter
}

// NewLocalLcovStore constructs a LocalLcovStore on top of fs.
func NewLocalLcovStore(fs SourceFSAdapter) *LocalLcovStore {
	return &LocalLcovStore{fs: fs}
}

// SaveLcov writes one record per file, files sorted by path.
func (s *LocalLcovStore) SaveLcov(path m.Path, coverage map[string]m.FileCoverage) error {
	files := make([]string, 0, len(coverage))
	for file := range coverage {
		files = append(files, file)
	}

	sort.Strings(files)

	var buf bytes.Buffer

	for _, file := range files {
		writeLcovRecord(&buf, file, coverage[file])
	}

	if err := s.fs.MkdirAll(m.Path(filepath.Dir(string(path)))); err != nil {
		return fmt.Errorf("create lcov directory: %w", err)
	}

	if err := s.fs.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write lcov %s: %w", path, err)
	}

	return nil
}

func writeLcovRecord(buf *bytes.Buffer, file string, coverage m.FileCoverage) {
	found, hit := 0, 0

	buf.WriteString("TN:\n")
	fmt.Fprintf(buf, "SF:%s\n", file)

	for i, count := range coverage.Lines {
		if count == nil {
			continue
		}

		found++

		if *count > 0 {
			hit++
		}

		fmt.Fprintf(buf, "DA:%d,%d\n", i+1, *count)
	}

	fmt.Fprintf(buf, "LF:%d\n", found)
	fmt.Fprintf(buf, "LH:%d\n", hit)
	buf.WriteString("end_of_record\n")
}

// LoadLcov parses SF and DA entries; other record types are skipped.
func (s *LocalLcovStore) LoadLcov(path m.Path, root m.Path) (m.NormalizedCoverageExport, error) {
	info, err := s.fs.FileInfo(path)
	if err != nil {
		return m.NormalizedCoverageExport{}, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return m.NormalizedCoverageExport{}, err
	}

	export := m.NormalizedCoverageExport{
		Coverage: map[string]m.FileCoverage{},
		Meta: m.ExportMeta{
			Timestamp:    info.ModTime().Unix(),
			Root:         string(root),
			IgnoredFiles: []string{},
		},
	}

	var (
		current string
		lineNo  int
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "SF:"):
			current = m.RelPath(root, m.Path(strings.TrimPrefix(line, "SF:")))
			if _, ok := export.Coverage[current]; !ok {
				export.Coverage[current] = m.FileCoverage{}
			}
		case strings.HasPrefix(line, "DA:"):
			if current == "" {
				return m.NormalizedCoverageExport{}, fmt.Errorf("%s:%d: DA before SF", path, lineNo)
			}

			number, count, err := parseLcovDA(strings.TrimPrefix(line, "DA:"))
			if err != nil {
				return m.NormalizedCoverageExport{}, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}

			export.Coverage[current] = setLineCount(export.Coverage[current], number, count)
		case line == "end_of_record":
			current = ""
		}
	}

	if err := scanner.Err(); err != nil {
		return m.NormalizedCoverageExport{}, fmt.Errorf("read lcov %s: %w", path, err)
	}

	return export, nil
}

func parseLcovDA(value string) (int, int64, error) {
	parts := strings.Split(value, ",")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("malformed DA entry %q", value)
	}

	number, err := strconv.Atoi(parts[0])
	if err != nil || number < 1 || number > m.MaxLineNumber {
		return 0, 0, fmt.Errorf("malformed DA line number %q", parts[0])
	}

	count, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed DA count %q", parts[1])
	}

	return number, count, nil
}

func setLineCount(coverage m.FileCoverage, number int, count int64) m.FileCoverage {
	for len(coverage.Lines) < number {
		coverage.Lines = append(coverage.Lines, nil)
	}

	if existing := coverage.Lines[number-1]; existing != nil {
		count += *existing
	}

	coverage.Lines[number-1] = &count

	return coverage
}
