package domain

import (
	"errors"
	"fmt"
	"go/version"
	"io"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/NeatNerdPrime/undercover/internal/adapter"
	m "github.com/NeatNerdPrime/undercover/internal/model"
	"github.com/spf13/pflag"
)

const (
	// OptionsFileName is the project options file, relative to the working directory.
	OptionsFileName = ".undercover"

	// DefaultPath is the project root used when --path is not given.
	DefaultPath = "."
	// DefaultGitDir is the git metadata directory used when --git-dir is not given.
	DefaultGitDir = ".git"

	usageBanner = "Usage: undercover [options]"
)

var (
	// DefaultIncludeGlobs select Go source files.
	DefaultIncludeGlobs = []string{"*.go"}
	// DefaultExcludeGlobs drop test data, vendored code and test files.
	DefaultExcludeGlobs = []string{"testdata/*", "vendor/*", "*_test.go"}
)

// optionAliases maps legacy long flag names to their current names.
var optionAliases = map[string]string{
	"ruby-syntax": "syntax-version",
	"simplecov":   "coverage-json",
}

// OptionsResolver merges the options file with command-line arguments.
type OptionsResolver interface {
	// Resolve parses fileTokens followed by cliArgs on top of the defaults.
	// It returns *ExitRequestedError for --help and --version and
	// *InvalidOptionError for anything it cannot parse.
	Resolve(fileTokens, cliArgs []string) (m.Configuration, error)
}

type optionsResolver struct {
	version string
}

// NewOptionsResolver constructs an OptionsResolver reporting version on --version.
func NewOptionsResolver(version string) OptionsResolver {
	return &optionsResolver{version: version}
}

// DefaultConfiguration returns the built-in defaults.
func DefaultConfiguration() m.Configuration {
	return m.Configuration{
		Path:         DefaultPath,
		GitDir:       DefaultGitDir,
		IncludeGlobs: slices.Clone(DefaultIncludeGlobs),
		ExcludeGlobs: slices.Clone(DefaultExcludeGlobs),
	}
}

// TokenizeOptions splits options file content on newlines, then on whitespace.
func TokenizeOptions(content string) []string {
	var tokens []string

	for _, line := range strings.Split(content, "\n") {
		tokens = append(tokens, strings.Fields(line)...)
	}

	return tokens
}

// LoadOptionsFile returns the tokens of the options file at optionsPath, or nil when
// the file does not exist.
func LoadOptionsFile(fsAdapter adapter.SourceFSAdapter, optionsPath m.Path) ([]string, error) {
	if !fsAdapter.Exists(optionsPath) {
		return nil, nil
	}

	content, err := fsAdapter.ReadFile(optionsPath)
	if err != nil {
		return nil, fmt.Errorf("read options file %s: %w", optionsPath, err)
	}

	tokens := TokenizeOptions(string(content))
	slog.Debug("loaded options file", "path", optionsPath, "tokens", len(tokens))

	return tokens, nil
}

func (r *optionsResolver) Resolve(fileTokens, cliArgs []string) (m.Configuration, error) {
	cfg := DefaultConfiguration()

	var (
		projectPath  = string(cfg.Path)
		lcov         string
		coverageJSON string
		showVersion  bool
	)

	flags := pflag.NewFlagSet("undercover", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	flags.SortFlags = false
	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := optionAliases[name]; ok {
			name = alias
		}

		return pflag.NormalizedName(name)
	})

	flags.StringVarP(&lcov, "lcov", "l", "", "LCOV report file path")
	flags.StringVarP(&coverageJSON, "coverage-json", "s", "", "JSON coverage export path, as written by undercover export")
	flags.StringVarP(&projectPath, "path", "p", projectPath, "Project directory")
	flags.StringVarP(&cfg.GitDir, "git-dir", "g", cfg.GitDir, "Override `.git` with a custom directory")
	flags.StringVarP(&cfg.Compare, "compare", "c", "", "Generate coverage warnings for all changes after `ref`")
	flags.VarP(&syntaxVersionValue{target: &cfg.SyntaxVersion}, "syntax-version", "r",
		"Go language version of the sources, e.g. 1.22")
	flags.VarP(&globListValue{globs: &cfg.IncludeGlobs}, "include-files", "f",
		"Include files matching specified glob patterns (comma separated)")
	flags.VarP(&globListValue{globs: &cfg.ExcludeGlobs}, "exclude-files", "x",
		"Skip files matching specified glob patterns (comma separated)")
	flags.BoolVar(&showVersion, "version", false, "Show version")

	usage := usageBanner + "\n" + flags.FlagUsages() + "  -h, --help                     Prints this help\n"

	args := make([]string, 0, len(fileTokens)+len(cliArgs))
	args = append(args, fileTokens...)
	args = append(args, cliArgs...)

	err := flags.Parse(args)

	switch {
	case errors.Is(err, pflag.ErrHelp):
		return m.Configuration{}, &ExitRequestedError{Code: 0, Message: usage}
	case err != nil:
		return m.Configuration{}, &InvalidOptionError{Err: err, Usage: usage}
	case showVersion:
		return m.Configuration{}, &ExitRequestedError{Code: 0, Message: r.version}
	case flags.NArg() > 0:
		return m.Configuration{}, &InvalidOptionError{
			Err:   fmt.Errorf("unexpected argument %q", flags.Arg(0)),
			Usage: usage,
		}
	}

	cfg.Path = m.Path(projectPath)
	cfg.Lcov = m.Path(lcov)
	cfg.CoverageJSON = m.Path(coverageJSON)

	slog.Debug("resolved configuration",
		"path", cfg.Path,
		"git_dir", cfg.GitDir,
		"compare", cfg.Compare,
		"lcov", cfg.Lcov,
		"coverage_json", cfg.CoverageJSON,
		"syntax_version", cfg.SyntaxVersion,
		"include", cfg.IncludeGlobs,
		"exclude", cfg.ExcludeGlobs,
	)

	return cfg, nil
}

// globListValue replaces the whole list on every Set. pflag's slice values
// append after the first Set, which would merge repeated flags.
type globListValue struct {
	globs *[]string
}

func (v *globListValue) Set(value string) error {
	var globs []string

	for _, glob := range strings.Split(strings.TrimSpace(value), ",") {
		glob = strings.TrimSpace(glob)
		if glob == "" {
			continue
		}

		if _, err := path.Match(glob, ""); err != nil {
			return fmt.Errorf("glob %q: %w", glob, err)
		}

		globs = append(globs, glob)
	}

	if len(globs) == 0 {
		return errors.New("expected at least one glob pattern")
	}

	*v.globs = globs

	return nil
}

func (v *globListValue) String() string {
	if v.globs == nil {
		return ""
	}

	return strings.Join(*v.globs, ",")
}

func (v *globListValue) Type() string {
	return "globs"
}

// syntaxVersionValue accepts "1.22" or "go1.22" and stores the go-prefixed form.
type syntaxVersionValue struct {
	target *string
}

func (v *syntaxVersionValue) Set(value string) error {
	goVersion := strings.TrimSpace(value)
	if !strings.HasPrefix(goVersion, "go") {
		goVersion = "go" + goVersion
	}

	if !version.IsValid(goVersion) {
		return fmt.Errorf("unknown Go version %q", value)
	}

	*v.target = goVersion

	return nil
}

func (v *syntaxVersionValue) String() string {
	if v.target == nil {
		return ""
	}

	return *v.target
}

func (v *syntaxVersionValue) Type() string {
	return "version"
}
