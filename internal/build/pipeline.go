// Package build runs the compile-and-package pipeline:
// staging, source discovery, javac, resource copy and archive assembly.
package build

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/Norgate-AV/jpack/internal/archive"
	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/compiler"
	"github.com/Norgate-AV/jpack/internal/layout"
	"github.com/Norgate-AV/jpack/internal/staging"
)

// Compiler compiles a set of sources
type Compiler interface {
	Compile(req compiler.Request) (*compiler.Result, error)
}

// Result is the outcome of a pipeline run that reached the compiler
type Result struct {
	// Archive is the absolute path of the written JAR. Empty after Compile.
	Archive string

	// Entries is the number of archive entries, manifest included
	Entries int

	Sources []string

	// Diagnostics are the translated compiler errors of a failed build
	Diagnostics []string

	// Warnings are the translated compiler messages of a successful build
	Warnings []string
}

// Pipeline builds projects with a compiler and a staging mounter
type Pipeline struct {
	compiler Compiler
	stager   *staging.Builder
	logger   *log.Logger
}

// NewPipeline creates a pipeline. A nil mounter selects staging.DefaultMounter.
func NewPipeline(c Compiler, mounter staging.Mounter, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	return &Pipeline{
		compiler: c,
		stager:   staging.NewBuilder(mounter, logger),
		logger:   logger,
	}
}

// Compile stages the project, compiles it and copies resources into
// output/classes. On compiler failure the returned result carries the
// translated diagnostics and the error wraps codes.ErrCompilationFailed.
func (p *Pipeline) Compile(cfg Configuration) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := layout.New(cfg.ProjectRoot)

	stagedRoot, err := p.stager.Build(cfg.ProjectRoot, cfg.BasePackage)
	if err != nil {
		return nil, err
	}

	sources, err := compiler.DiscoverSources(cfg.ProjectRoot)
	if err != nil {
		return nil, err
	}

	if len(sources) == 0 {
		return nil, codes.ErrNoSourceFiles
	}

	p.logger.Debug("discovered sources", "count", len(sources))

	compiled, err := p.compiler.Compile(compiler.Request{
		ProjectRoot: cfg.ProjectRoot,
		StagedRoot:  stagedRoot,
		ClassesDir:  l.Classes(),
		JavaVersion: cfg.JavaVersion,
		Sources:     sources,
		Classpath:   cfg.Classpath,
	})
	if err != nil {
		return nil, err
	}

	translator, err := compiler.NewTranslator(cfg.BasePackage)
	if err != nil {
		return nil, err
	}

	result := &Result{Sources: sources}

	if !compiled.Success {
		result.Diagnostics = translator.Lines(compiled.Diagnostics)
		return result, fmt.Errorf("%w: %d diagnostic lines", codes.ErrCompilationFailed, len(result.Diagnostics))
	}

	result.Warnings = translator.Lines(compiled.Warnings)

	if err := compiler.CopyResources(cfg.ProjectRoot); err != nil {
		return result, err
	}

	return result, nil
}

// Build runs Compile and then assembles output/<name>.jar
func (p *Pipeline) Build(cfg Configuration) (*Result, error) {
	result, err := p.Compile(cfg)
	if err != nil {
		return result, err
	}

	path, err := archive.Assemble(archive.Options{
		ProjectRoot: cfg.ProjectRoot,
		Name:        cfg.Name,
		MainClass:   cfg.QualifiedMainClass(),
		Logger:      p.logger,
	})
	if err != nil {
		return result, err
	}

	entries, err := archive.Entries(path)
	if err != nil {
		return result, err
	}

	result.Archive = path
	result.Entries = len(entries)

	return result, nil
}
