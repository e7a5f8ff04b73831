package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Norgate-AV/jpack/internal/codes"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// Invocation describes one child process
type Invocation struct {
	Name   string
	Args   []string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// CommandBuilder handles building and running javac commands
type CommandBuilder struct {
	execCommand func(inv Invocation) Commander
}

// NewCommandBuilder creates a new command builder
func NewCommandBuilder() *CommandBuilder {
	return &CommandBuilder{
		execCommand: func(inv Invocation) Commander {
			cmd := exec.Command(inv.Name, inv.Args...)
			cmd.Dir = inv.Dir
			cmd.Stdout = inv.Stdout
			cmd.Stderr = inv.Stderr
			return cmd
		},
	}
}

// BuildCommandArgs builds the javac arguments. Paths are made relative to the
// project root, which is the working directory of the compiler.
func (cb *CommandBuilder) BuildCommandArgs(req Request) ([]string, error) {
	if req.JavaVersion == "" {
		return nil, fmt.Errorf("%w: java version not specified", codes.ErrInvalidConfig)
	}

	if len(req.Sources) == 0 {
		return nil, codes.ErrNoSourceFiles
	}

	classes, err := relTo(req.ProjectRoot, req.ClassesDir)
	if err != nil {
		return nil, err
	}

	sourcepath, err := relTo(req.ProjectRoot, req.StagedRoot)
	if err != nil {
		return nil, err
	}

	cmdArgs := []string{
		"--release", req.JavaVersion,
		"-d", classes,
		"-sourcepath", sourcepath,
	}
	cmdArgs = append(cmdArgs, req.Sources...)

	return cmdArgs, nil
}

// WriteArgsFile writes one argument per line in javac @argfile syntax
func (cb *CommandBuilder) WriteArgsFile(path string, cmdArgs []string) error {
	var buf bytes.Buffer
	for _, arg := range cmdArgs {
		buf.WriteString(quoteArg(arg))
		buf.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return codes.FSError("create", filepath.Dir(path), err)
	}

	return codes.FSError("write javac arguments to", path, os.WriteFile(path, buf.Bytes(), 0o644))
}

// ExecuteCommand runs the tool and blocks until it exits. A non-zero exit is
// returned as exitCode with a nil error; a tool that cannot be started is a
// *codes.ToolchainMissingError.
func (cb *CommandBuilder) ExecuteCommand(inv Invocation) (exitCode int, err error) {
	c := cb.execCommand(inv)

	err = c.Run()
	if err == nil {
		return 0, nil
	}

	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode(), nil
	}

	return -1, &codes.ToolchainMissingError{Tool: toolName(inv.Name), Err: err}
}

// exitCoder is satisfied by *exec.ExitError
type exitCoder interface {
	ExitCode() int
}

func toolName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func relTo(root, path string) (string, error) {
	if !filepath.IsAbs(path) {
		return path, nil
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", codes.FSError("resolve", path, err)
	}

	return rel, nil
}

// quoteArg quotes an argument for a javac @argfile when it would otherwise be
// split or misread
func quoteArg(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\r\n\"'\\#") {
		return arg
	}

	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(arg) + `"`
}
