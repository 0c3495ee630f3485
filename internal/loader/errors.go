package loader

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorKindNoFile ErrorKind = "no_file"
	ErrorKindRead   ErrorKind = "read"
	ErrorKindParse  ErrorKind = "parse"
)

var (
	ErrNoFile           = errors.New("no file selected")
	ErrNotCSV           = errors.New("file is not a .csv file")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// LoadError is the only failure the loader reports. Callers show Error() to
// the user and leave any rendered chart alone.
type LoadError struct {
	Kind   ErrorKind
	Source string
	Err    error
}

func (err *LoadError) Error() string {
	if err.Source == "" {
		return fmt.Sprintf("%s: %v", err.Kind, err.Err)
	}
	return fmt.Sprintf("%s %s: %v", err.Kind, err.Source, err.Err)
}

func (err *LoadError) Unwrap() error {
	return err.Err
}

func newLoadError(kind ErrorKind, source string, cause error) *LoadError {
	return &LoadError{Kind: kind, Source: source, Err: cause}
}

// AsLoadError reports whether err carries a *LoadError.
func AsLoadError(err error) (*LoadError, bool) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr, true
	}
	return nil, false
}
