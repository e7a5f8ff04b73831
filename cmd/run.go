package cmd

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/jpack/internal/build"
	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/layout"
)

var runCmd = &cobra.Command{
	Use:   "run [-- args...]",
	Short: "Compile and run the project (app only)",
	Long: `Compile the project and run its main class with java. Arguments after --
are passed to the program; [run] jvm-args from jpack.toml are passed to the JVM.`,
	RunE:         runRun,
	SilenceUsage: true,
	Args:         cobra.ArbitraryArgs,
}

var execCommand = func(name string, args ...string) Commander {
	return exec.Command(name, args...)
}

type Commander interface {
	Run() error
}

// exitCoder is satisfied by *exec.ExitError
type exitCoder interface {
	ExitCode() int
}

func runRun(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return withExitCode(err)
	}

	if !p.build.IsApp() {
		return withExitCode(build.ErrNotAnApp)
	}

	if _, err := runPipeline(p, cmd.OutOrStdout(), cmd.ErrOrStderr(), false); err != nil {
		return withExitCode(err)
	}

	printStatus(cmd.OutOrStdout(), "Running", "%s", p.manifest.Package.Name)

	return runProgram(p, args)
}

// javaArgs returns the java command line for the project's main class
func javaArgs(cfg build.Configuration, args []string) []string {
	classpath := append([]string{layout.New(cfg.ProjectRoot).Classes()}, cfg.Classpath...)

	cmdArgs := []string{"-cp", strings.Join(classpath, string(os.PathListSeparator))}
	cmdArgs = append(cmdArgs, cfg.RunArgs...)
	cmdArgs = append(cmdArgs, cfg.QualifiedMainClass())
	cmdArgs = append(cmdArgs, args...)

	return cmdArgs
}

// runProgram starts java in the foreground and mirrors its exit status
func runProgram(p *project, args []string) error {
	cmdArgs := javaArgs(p.build, args)
	p.logger.Debug("starting program", "java", p.config.JavaPath, "args", strings.Join(cmdArgs, " "))

	c := execCommand(p.config.JavaPath, cmdArgs...)
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Dir = p.root
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	err := c.Run()
	if err == nil {
		return nil
	}

	var coder exitCoder
	if errors.As(err, &coder) {
		return &ExitError{Code: coder.ExitCode()}
	}

	return withExitCode(&codes.ToolchainMissingError{Tool: "java", Err: err})
}
