// Package compiler discovers sources, drives javac and post-processes its
// output for the build pipeline.
package compiler

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/layout"
)

// DefaultJavac is used when no javac path is configured
const DefaultJavac = "javac"

// Request holds everything one javac run needs
type Request struct {
	ProjectRoot string
	StagedRoot  string
	ClassesDir  string
	JavaVersion string
	Sources     []string

	// Classpath is accepted for the caller's benefit but not passed to javac
	Classpath []string
}

// Result is the outcome of a javac run
type Result struct {
	Success bool

	// Diagnostics holds every stderr line of a failed run, untranslated
	Diagnostics []string

	// Warnings holds stderr lines of a successful run
	Warnings []string
}

// Invoker runs javac for a project
type Invoker struct {
	Javac  string
	Stdout io.Writer

	builder *CommandBuilder
	logger  *log.Logger
}

// NewInvoker creates an invoker for the given javac executable
func NewInvoker(javac string, logger *log.Logger) *Invoker {
	if javac == "" {
		javac = DefaultJavac
	}

	if logger == nil {
		logger = log.New(os.Stderr)
	}

	return &Invoker{
		Javac:   javac,
		Stdout:  os.Stdout,
		builder: NewCommandBuilder(),
		logger:  logger,
	}
}

// Compile writes the argument file, runs javac and collects its diagnostics
func (i *Invoker) Compile(req Request) (*Result, error) {
	if err := os.MkdirAll(req.ClassesDir, 0o755); err != nil {
		return nil, codes.FSError("create", req.ClassesDir, err)
	}

	cmdArgs, err := i.builder.BuildCommandArgs(req)
	if err != nil {
		return nil, err
	}

	l := layout.New(req.ProjectRoot)
	if err := i.builder.WriteArgsFile(l.Args(), cmdArgs); err != nil {
		return nil, err
	}

	argsFile := "@" + l.Rel(l.Args())
	i.logger.Debug("invoking compiler", "javac", i.Javac, "args", strings.Join(cmdArgs, " "))

	var stderr bytes.Buffer
	code, err := i.builder.ExecuteCommand(Invocation{
		Name:   i.Javac,
		Args:   []string{argsFile},
		Dir:    req.ProjectRoot,
		Stdout: i.Stdout,
		Stderr: &stderr,
	})
	if err != nil {
		return nil, err
	}

	lines := splitLines(stderr.Bytes())

	if codes.IsSuccess(code) {
		return &Result{Success: true, Diagnostics: []string{}, Warnings: lines}, nil
	}

	i.logger.Debug("compiler failed", "exit", code, "lines", len(lines))

	return &Result{Success: false, Diagnostics: lines}, nil
}

// splitLines splits compiler output into lines without a length limit,
// dropping the line terminators
func splitLines(b []byte) []string {
	lines := []string{}
	if len(b) == 0 {
		return lines
	}

	for _, line := range strings.Split(strings.TrimSuffix(string(b), "\n"), "\n") {
		lines = append(lines, strings.TrimSuffix(line, "\r"))
	}

	return lines
}
