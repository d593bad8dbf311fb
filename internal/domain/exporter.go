package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/NeatNerdPrime/undercover/internal/adapter"
	m "github.com/NeatNerdPrime/undercover/internal/model"
	"golang.org/x/tools/cover"
)

// ExportArgs contains the arguments for one coverage collection run.
type ExportArgs struct {
	// Profiles are `go test -coverprofile` outputs to merge.
	Profiles []m.Path
	// Root is any path inside the module; the module root is found from it.
	Root m.Path
	// CoverageDir is the output directory, relative to the module root
	// unless absolute.
	CoverageDir m.Path
	// Filename overrides the JSON export file name.
	Filename string
	// Exclude are the collector's filter patterns.
	Exclude []string
	// WriteLcov also writes coverage/lcov/<root basename>.lcov.
	WriteLcov bool
}

// ExportResult describes what an export run wrote.
type ExportResult struct {
	Root    m.Path
	Written []m.Path
	Files   int
	Ignored []string
}

// ResultFormatter renders a filtered coverage result into a persisted report.
type ResultFormatter interface {
	FormatResult(ctx context.Context, result m.CoverageResult) (m.Path, error)
}

// Exporter runs coverage collection: profiles in, reports out.
type Exporter interface {
	Export(ctx context.Context, args ExportArgs) (ExportResult, error)
}

type exporter struct {
	fsAdapter     adapter.SourceFSAdapter
	profileReader adapter.ProfileReader
	exportStore   adapter.ExportStore
	lcovStore     adapter.LcovStore
}

// NewExporter constructs an Exporter with the provided adapters.
func NewExporter(
	fsAdapter adapter.SourceFSAdapter,
	profileReader adapter.ProfileReader,
	exportStore adapter.ExportStore,
	lcovStore adapter.LcovStore,
) Exporter {
	return &exporter{
		fsAdapter:     fsAdapter,
		profileReader: profileReader,
		exportStore:   exportStore,
		lcovStore:     lcovStore,
	}
}

func (e *exporter) Export(ctx context.Context, args ExportArgs) (ExportResult, error) {
	root, err := e.fsAdapter.FindProjectRoot(args.Root)
	if err != nil {
		return ExportResult{}, fmt.Errorf("find project root: %w", err)
	}

	modulePath, err := e.fsAdapter.ModulePath(root)
	if err != nil {
		return ExportResult{}, fmt.Errorf("read module path: %w", err)
	}

	profiles, err := e.profileReader.ReadProfiles(ctx, args.Profiles)
	if err != nil {
		return ExportResult{}, fmt.Errorf("read profiles: %w", err)
	}

	result, err := BuildCoverageResult(profiles, root, modulePath)
	if err != nil {
		return ExportResult{}, err
	}

	ignored := NewIgnoredFileSet()
	augmenter := NewCoverageExportAugmenter(NewGlobFilter(root, args.Exclude), ignored)

	slog.Info("starting coverage export", "run", ignored.RunID(), "root", root, "files", len(result.Files))

	coverageDir := args.CoverageDir
	if !filepath.IsAbs(string(coverageDir)) {
		coverageDir = e.fsAdapter.JoinPath(string(root), string(coverageDir))
	}

	formatters := []ResultFormatter{
		&jsonExportFormatter{
			augmenter: augmenter,
			store:     e.exportStore,
			path:      ExportPath(coverageDir, CoverageJSONFileName, args.Filename),
			root:      root,
		},
	}

	if args.WriteLcov {
		formatters = append(formatters, &lcovFormatter{
			augmenter: augmenter,
			store:     e.lcovStore,
			path:      e.fsAdapter.JoinPath(string(coverageDir), LcovDirName, root.Base()+".lcov"),
			root:      root,
		})
	}

	exportResult := ExportResult{Root: root, Files: len(augmenter.OnFilter(result.Files))}

	// Each formatter filters the raw result again through the shared augmenter.
	for _, formatter := range formatters {
		path, err := formatter.FormatResult(ctx, result)
		if err != nil {
			return exportResult, err
		}

		exportResult.Written = append(exportResult.Written, path)
	}

	for _, file := range ignored.Files() {
		exportResult.Ignored = append(exportResult.Ignored, m.StripRoot(root, file))
	}

	slog.Info("coverage export finished", "run", ignored.RunID(), "written", exportResult.Written, "ignored", len(exportResult.Ignored))

	return exportResult, nil
}

// BuildCoverageResult converts merged profiles into a CoverageResult. Import
// paths inside modulePath are mapped to files under root.
func BuildCoverageResult(profiles adapter.ProfileSet, root m.Path, modulePath string) (m.CoverageResult, error) {
	result := m.CoverageResult{
		CreatedAt: profiles.ModTime,
		Files:     make([]m.SourceFile, 0, len(profiles.Profiles)),
	}

	for _, profile := range profiles.Profiles {
		coverage, err := lineCoverage(profile.Blocks)
		if err != nil {
			return m.CoverageResult{}, fmt.Errorf("profile %s: %w", profile.FileName, err)
		}

		result.Files = append(result.Files, m.SourceFile{
			Filename: profileFilename(profile.FileName, root, modulePath),
			Coverage: coverage,
		})
	}

	return result, nil
}

func profileFilename(name string, root m.Path, modulePath string) m.Path {
	switch {
	case modulePath != "" && strings.HasPrefix(name, modulePath+"/"):
		rel := strings.TrimPrefix(name, modulePath+"/")
		return m.Path(filepath.Join(string(root), filepath.FromSlash(rel)))
	case strings.HasPrefix(name, "_/"):
		// Packages outside any module are reported as "_" + absolute directory.
		return m.Path(filepath.FromSlash(name[1:]))
	default:
		return m.Path(name)
	}
}

// lineCoverage spreads block counts over the lines each block spans. A line
// touched by several blocks keeps the lowest count, so a line is reported as
// executed only when every block on it ran.
func lineCoverage(blocks []cover.ProfileBlock) (m.FileCoverage, error) {
	var lines []*int64

	for _, block := range blocks {
		if block.NumStmt == 0 {
			continue
		}

		if block.StartLine < 1 || block.EndLine > m.MaxLineNumber {
			return m.FileCoverage{}, fmt.Errorf("block %d-%d: line number out of range", block.StartLine, block.EndLine)
		}

		for line := block.StartLine; line <= block.EndLine; line++ {
			for len(lines) < line {
				lines = append(lines, nil)
			}

			count := int64(block.Count)
			if current := lines[line-1]; current != nil && *current < count {
				continue
			}

			lines[line-1] = &count
		}
	}

	return m.FileCoverage{Lines: lines}, nil
}

type jsonExportFormatter struct {
	augmenter *CoverageExportAugmenter
	store     adapter.ExportStore
	path      m.Path
	root      m.Path
}

func (f *jsonExportFormatter) FormatResult(ctx context.Context, result m.CoverageResult) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	filtered := m.CoverageResult{CreatedAt: result.CreatedAt, Files: f.augmenter.OnFilter(result.Files)}

	export := f.augmenter.Format(filtered, f.root)
	if err := f.store.SaveExport(f.path, export); err != nil {
		return "", fmt.Errorf("save coverage export: %w", err)
	}

	return f.path, nil
}

type lcovFormatter struct {
	augmenter *CoverageExportAugmenter
	store     adapter.LcovStore
	path      m.Path
	root      m.Path
}

func (f *lcovFormatter) FormatResult(ctx context.Context, result m.CoverageResult) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	files := f.augmenter.OnFilter(result.Files)

	coverage := make(map[string]m.FileCoverage, len(files))
	for _, file := range files {
		coverage[m.RelPath(f.root, file.Filename)] = file.Coverage
	}

	if err := f.store.SaveLcov(f.path, coverage); err != nil {
		return "", fmt.Errorf("save lcov report: %w", err)
	}

	return f.path, nil
}
