package cli

import "errors"

// Process exit statuses.
const (
	ExitOK      = 0
	ExitPartial = 1
	ExitFatal   = 2
)

// ExitError carries the process status a command wants to exit with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func fatal(err error) error   { return &ExitError{Code: ExitFatal, Err: err} }
func partial(err error) error { return &ExitError{Code: ExitPartial, Err: err} }

// ExitCode maps an error returned by Execute to a process status. Errors
// that carry no status, such as flag parsing failures, are fatal.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFatal
}
