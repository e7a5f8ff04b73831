package cmd

import (
	"errors"
	"fmt"

	"github.com/Norgate-AV/jpack/internal/codes"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// withExitCode attaches the jpack exit code for err, leaving nil and
// existing ExitErrors untouched
func withExitCode(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	return &ExitError{Code: codes.ExitCode(err), Err: err}
}

// exitCodeOf returns the process status for an error returned by a command
func exitCodeOf(err error) int {
	if err == nil {
		return codes.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return codes.ExitCode(err)
}
