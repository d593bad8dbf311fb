package domain

import (
	"fmt"
	"strings"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

// ExitRequestedError reports that a help or version flag was given. Message
// must be printed and the process terminated with Code, without further work.
type ExitRequestedError struct {
	Code    int
	Message string
}

func (e *ExitRequestedError) Error() string {
	return fmt.Sprintf("exit requested with status %d", e.Code)
}

// InvalidOptionError reports an unknown flag or a malformed flag value.
type InvalidOptionError struct {
	Err   error
	Usage string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option: %v", e.Err)
}

func (e *InvalidOptionError) Unwrap() error {
	return e.Err
}

// CoveragePathMissingError reports that no coverage report exists at any of
// the explicit or conventional locations.
type CoveragePathMissingError struct {
	Checked []m.Path
}

func (e *CoveragePathMissingError) Error() string {
	checked := make([]string, 0, len(e.Checked))
	for _, path := range e.Checked {
		checked = append(checked, string(path))
	}

	return "coverage report not found, checked: " + strings.Join(checked, ", ")
}
