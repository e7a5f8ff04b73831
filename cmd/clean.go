package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/jpack/internal/codes"
	"github.com/Norgate-AV/jpack/internal/layout"
)

var cleanCmd = &cobra.Command{
	Use:          "clean",
	Short:        "Remove the output directory",
	Long:         `Remove output/, including compiled classes, the JAR and the build history.`,
	RunE:         runClean,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
}

func runClean(cmd *cobra.Command, args []string) error {
	root, err := workDir(cmd)
	if err != nil {
		return withExitCode(err)
	}

	output := layout.New(root).Output()

	if _, err := os.Stat(output); os.IsNotExist(err) {
		printStatus(cmd.OutOrStdout(), "Clean", "nothing to clean")
		return nil
	}

	if err := os.RemoveAll(output); err != nil {
		return withExitCode(codes.FSError("remove", output, err))
	}

	printStatus(cmd.OutOrStdout(), "Removed", "%s directory", layout.OutputDir)
	return nil
}
