package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/jpack/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "jpack",
	Short: "Cargo-style builds for Java",
	Long: `jpack compiles a Java project whose sources live flat in src/ and
packages the classes and resources into output/<name>.jar.

Running jpack without a command builds the project.`,
	RunE:         runBuild,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
}

// Execute runs the root command and exits with the jpack exit code on failure
func Execute() {
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	)
	if err != nil {
		os.Exit(exitCodeOf(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("directory", "C", "", "Run as if jpack was started in this directory")
	rootCmd.PersistentFlags().String("config", "", "Tool config file (default is the nearest .jpack.yml)")
	rootCmd.PersistentFlags().Bool("no-history", false, "Do not record builds in output/history.db")
	rootCmd.PersistentFlags().String("javac", "", "Java compiler executable")
	rootCmd.PersistentFlags().String("java", "", "Java launcher executable")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
}

func versionString() string {
	if version.Version == "dev" {
		return "dev (built from source)"
	}

	return fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)
}

// errorHandler prints command errors. An ExitError without a cause carries
// only a status, e.g. the exit code of a program started by run.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	fang.DefaultErrorHandler(w, styles, err)
}
