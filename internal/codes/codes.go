package codes

import (
	"errors"
	"fmt"
)

// Exit codes returned by jpack
const (
	Success           = 0
	GeneralFailure    = 1
	ConfigError       = 2
	CompilationFailed = 101
	NoSourceFiles     = 102
	FilesystemFailure = 103
	ToolchainMissing  = 127
)

// ErrorCodes maps jpack exit codes to their descriptions
var ErrorCodes = map[int]string{
	Success:           "Success",
	GeneralFailure:    "General failure",
	ConfigError:       "Invalid manifest or configuration",
	CompilationFailed: "Compile errors",
	NoSourceFiles:     "No source files found",
	FilesystemFailure: "Filesystem error",
	ToolchainMissing:  "Java toolchain not found",
}

var (
	// ErrToolchainMissing matches any ToolchainMissingError
	ErrToolchainMissing = errors.New("toolchain not found")

	// ErrCompilationFailed is returned when javac ran and reported errors
	ErrCompilationFailed = errors.New("javac compilation failed")

	// ErrNoSourceFiles is returned when src/ holds no .java files
	ErrNoSourceFiles = errors.New("no source files found in src/")

	// ErrInvalidConfig is the parent of manifest and configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ToolchainMissingError reports a JDK executable that could not be launched
type ToolchainMissingError struct {
	Tool string
	Err  error
}

func (e *ToolchainMissingError) Error() string {
	return fmt.Sprintf("%s not found in PATH (install a JDK or set %s_path in .jpack.yml)", e.Tool, e.Tool)
}

func (e *ToolchainMissingError) Unwrap() error {
	return e.Err
}

func (e *ToolchainMissingError) Is(target error) bool {
	return target == ErrToolchainMissing
}

// FilesystemError wraps an I/O failure with the path it happened on
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// FSError returns nil for a nil err, otherwise a *FilesystemError
func FSError(op, path string, err error) error {
	if err == nil {
		return nil
	}

	return &FilesystemError{Op: op, Path: path, Err: err}
}

// ExitCode returns the process exit status for an error
func ExitCode(err error) int {
	if err == nil {
		return Success
	}

	var fsErr *FilesystemError

	switch {
	case errors.Is(err, ErrToolchainMissing):
		return ToolchainMissing
	case errors.Is(err, ErrCompilationFailed):
		return CompilationFailed
	case errors.Is(err, ErrNoSourceFiles):
		return NoSourceFiles
	case errors.Is(err, ErrInvalidConfig):
		return ConfigError
	case errors.As(err, &fsErr):
		return FilesystemFailure
	}

	return GeneralFailure
}

// IsSuccess returns true if the exit code indicates a successful run
func IsSuccess(code int) bool {
	return code == Success
}

// Describe returns the description for a given exit code, or a generic message if unknown
func Describe(code int) string {
	if msg, ok := ErrorCodes[code]; ok {
		return msg
	}

	return "Unknown error"
}
