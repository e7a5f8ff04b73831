package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/jpack/internal/scaffold"
)

var newCmd = &cobra.Command{
	Use:          "new <name>",
	Short:        "Create a new jpack project",
	Long:         `Create a directory <name> containing jpack.toml, src/, test/ and sample sources.`,
	RunE:         runNew,
	SilenceUsage: true,
	Args:         cobra.ExactArgs(1),
}

var initCmd = &cobra.Command{
	Use:          "init",
	Short:        "Initialize a jpack project in the current directory",
	Long:         `Create jpack.toml, src/, test/ and sample sources in the current directory, named after it.`,
	RunE:         runInit,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
}

func init() {
	newCmd.Flags().Bool("lib", false, "Create a library project instead of an application")
	initCmd.Flags().Bool("lib", false, "Create a library project instead of an application")
}

func runNew(cmd *cobra.Command, args []string) error {
	parent, err := workDir(cmd)
	if err != nil {
		return withExitCode(err)
	}

	lib, _ := cmd.Flags().GetBool("lib")
	name := args[0]

	if _, err := scaffold.New(parent, name, lib); err != nil {
		return withExitCode(err)
	}

	printStatus(cmd.OutOrStdout(), "Created", "%s `%s` package", scaffold.Kind(lib), name)
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := workDir(cmd)
	if err != nil {
		return withExitCode(err)
	}

	lib, _ := cmd.Flags().GetBool("lib")

	name, err := scaffold.Init(dir, lib)
	if err != nil {
		return withExitCode(err)
	}

	printStatus(cmd.OutOrStdout(), "Created", "%s `%s` package", scaffold.Kind(lib), name)
	return nil
}
