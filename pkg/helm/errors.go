package helm

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequiredField   = errors.New("missing required chart field")
	ErrMissingSourceDir       = errors.New("chart source directory does not exist")
	ErrUnsupportedExtension   = errors.New("unsupported chart archive extension")
	ErrUnsupportedChartType   = errors.New("unsupported chart type")
	ErrMultipleDocuments      = errors.New("chart fragment must hold a single YAML document")
	ErrNoRepositoryConfigured = errors.New("No repository or invalid repository configured for upload")
)

// FragmentParseError reports a fragment file that exists but cannot be read as a chart fragment.
type FragmentParseError struct {
	Path string
	Err  error
}

func (e *FragmentParseError) Error() string {
	return fmt.Sprintf("parsing chart fragment %s: %v", e.Path, e.Err)
}

func (e *FragmentParseError) Unwrap() error {
	return e.Err
}
