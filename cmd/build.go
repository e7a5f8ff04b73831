package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/jpack/internal/build"
	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/compiler"
	"github.com/Norgate-AV/jpack/internal/history"
	"github.com/Norgate-AV/jpack/internal/layout"
)

var buildCmd = &cobra.Command{
	Use:          "build",
	Short:        "Compile the project and assemble a JAR",
	Long:         `Compile every .java file under src/, copy resources/ and write output/<name>.jar.`,
	RunE:         runBuild,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
}

// newCompiler creates the compiler used by build, run and watch
var newCompiler = func(javac string, stdout io.Writer, logger *log.Logger) build.Compiler {
	inv := compiler.NewInvoker(javac, logger)
	inv.Stdout = stdout
	return inv
}

func runBuild(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return withExitCode(err)
	}

	_, err = buildProject(p, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return withExitCode(err)
}

// buildProject runs the full pipeline, prints status and diagnostics and
// records the outcome in the history database
func buildProject(p *project, stdout, stderr io.Writer) (*build.Result, error) {
	return runPipeline(p, stdout, stderr, true)
}

// runPipeline compiles the project and, when assemble is set, writes the JAR
func runPipeline(p *project, stdout, stderr io.Writer, assemble bool) (*build.Result, error) {
	pkg := p.manifest.Package
	printStatus(stdout, "Compiling", "%s v%s (java %s)", pkg.Name, pkg.Version, pkg.Java)

	pipeline := build.NewPipeline(newCompiler(p.config.JavacPath, stdout, p.logger), nil, p.logger)

	start := time.Now()

	var (
		result *build.Result
		err    error
	)
	if assemble {
		result, err = pipeline.Build(p.build)
	} else {
		result, err = pipeline.Compile(p.build)
	}

	elapsed := time.Since(start)

	if result != nil {
		for _, line := range result.Warnings {
			fmt.Fprintln(stderr, line)
		}

		for _, line := range result.Diagnostics {
			fmt.Fprintln(stderr, line)
		}

		if assemble {
			recordHistory(p, result, elapsed)
		}
	}

	if err != nil {
		if errors.Is(err, codes.ErrCompilationFailed) {
			return result, fmt.Errorf("could not compile %s: %w", pkg.Name, err)
		}

		return result, err
	}

	if assemble {
		printStatus(stdout, "Finished", "JAR at %s", layout.New(p.root).Rel(result.Archive))
	}

	return result, nil
}

// recordHistory stores a build record. History is best effort and never
// fails a build.
func recordHistory(p *project, result *build.Result, elapsed time.Duration) {
	if p.config.NoHistory {
		return
	}

	rec, err := history.NewRecord(p.build, result, elapsed)
	if err != nil {
		p.logger.Warn("failed to fingerprint build", "err", err)
		return
	}

	rec, err = history.Save(p.root, rec)
	if err != nil {
		p.logger.Warn("failed to record build", "err", err)
		return
	}

	p.logger.Debug("recorded build", "id", rec.ID, "fingerprint", rec.ShortFingerprint())
}
