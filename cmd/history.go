package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/jpack/internal/history"
	"github.com/Norgate-AV/jpack/internal/layout"
)

var historyCmd = &cobra.Command{
	Use:          "history",
	Short:        "Show recorded builds",
	Long:         `List the builds recorded in output/history.db, newest first.`,
	RunE:         runHistory,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "Number of builds to show (0 for all)")
	historyCmd.Flags().Bool("clear", false, "Remove all recorded builds")
}

func runHistory(cmd *cobra.Command, args []string) error {
	root, err := workDir(cmd)
	if err != nil {
		return withExitCode(err)
	}

	out := cmd.OutOrStdout()
	path := layout.New(root).History()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(out, MutedStyle.Render("No builds recorded"))
		return nil
	}

	store, err := history.Open(path)
	if err != nil {
		return withExitCode(err)
	}
	defer store.Close()

	if clearAll, _ := cmd.Flags().GetBool("clear"); clearAll {
		if err := store.Clear(); err != nil {
			return withExitCode(err)
		}

		printStatus(out, "Cleared", "build history")
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")

	records, err := store.List(limit)
	if err != nil {
		return withExitCode(err)
	}

	printRecords(out, records)
	return nil
}

func printRecords(w io.Writer, records []history.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, MutedStyle.Render("No builds recorded"))
		return
	}

	fmt.Fprintln(w, HeaderStyle.Render(fmt.Sprintf("%-5s %-19s %-7s %-12s %7s %7s  %s", "ID", "TIME", "STATUS", "FINGERPRINT", "SOURCES", "TIME(s)", "RESULT")))

	for _, r := range records {
		status := StatusStyle.Render(fmt.Sprintf("%-7s", "ok"))
		result := fmt.Sprintf("%s (%d entries)", r.Archive, r.Entries)
		if !r.Success {
			status = ErrorStyle.Render(fmt.Sprintf("%-7s", "failed"))
			result = fmt.Sprintf("%d diagnostic lines", r.Diagnostics)
		}

		fmt.Fprintf(w, "%-5d %-19s %s %-12s %7d %7.2f  %s\n",
			r.ID,
			r.Timestamp.Local().Format(time.DateTime),
			status,
			r.ShortFingerprint(),
			r.Sources,
			r.Duration.Seconds(),
			result,
		)
	}
}
