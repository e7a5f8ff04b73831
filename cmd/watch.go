package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/jpack/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the project when sources change",
	Long: `Build the project, then rebuild whenever a file under src/ or resources/
or jpack.toml changes. Press Ctrl+C to stop.`,
	RunE:         runWatch,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
}

func init() {
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before rebuilding")
}

func runWatch(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return withExitCode(err)
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	// A failed first build is reported like any later one
	if _, err := buildProject(p, stdout, stderr); err != nil {
		printWarning(stdout, "Failed", "%v", err)
	}

	debounce, _ := cmd.Flags().GetDuration("debounce")

	w, err := watch.New(watch.Config{
		Root:     p.root,
		Debounce: debounce,
		Logger:   p.logger,
		OnChange: func(ctx context.Context, changed []string) error {
			return rebuild(p, changed, cmd)
		},
	})
	if err != nil {
		return withExitCode(err)
	}

	printStatus(stdout, "Watching", "for changes (Ctrl+C to stop)")

	return w.Run(cmd.Context())
}

// rebuild reloads jpack.toml and runs a full build after a batch of changes
func rebuild(p *project, changed []string, cmd *cobra.Command) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	p.logger.Debug("rebuilding", "changed", changed)

	if err := p.reload(); err != nil {
		printWarning(stdout, "Skipping", "rebuild: %v", err)
		return err
	}

	_, err := buildProject(p, stdout, stderr)
	if err != nil {
		printWarning(stdout, "Failed", "%v", err)
	}

	return err
}
