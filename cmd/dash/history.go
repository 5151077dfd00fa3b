package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/platform/tui"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history [level]",
	Short: "Show recorded runs",
	Long: `Without a level, list the most recent runs of all levels.
With a level, list its best runs: completions first, then the most gems,
then the fastest.

Examples:
  dash history
  dash history classic --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening runs database: %v", err)
	}
	defer store.Close()

	var (
		runs  []storage.Run
		title string
	)
	if len(args) == 0 {
		title = "Recent runs"
		runs, err = store.RecentRuns(flagHistoryLimit)
	} else {
		title = "Best runs - " + args[0]
		runs, err = store.BestRuns(args[0], flagHistoryLimit)
	}
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dash play' and finish a level to record a run!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %-7s  %-5s  %-6s  %s\n", "Rank", "Level", "Outcome", "Gems", "Lives", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %-7s  %-5s  %-6s  %s\n", "----", "-----", "-------", "----", "-----", "----", "----")

	for i, r := range runs {
		outcome := fmt.Sprintf("%-10s", tui.OutcomeLabel(r.Outcome))
		if isTerminal(os.Stdout) {
			outcome = tui.StyledOutcome(r.Outcome) + outcome[len(tui.OutcomeLabel(r.Outcome)):]
		}
		fmt.Printf("  %-4d  %-12s  %s  %-7s  %-5d  %-6s  %s\n",
			i+1, r.LevelID, outcome,
			fmt.Sprintf("%d/%d", r.Gems, r.GemsTotal), r.LivesLeft,
			tui.FormatDuration(r.Duration), r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if len(args) > 0 {
		if n, err := store.Completions(args[0]); err == nil {
			fmt.Println()
			fmt.Printf("Completed %d times\n", n)
		}
	}
}
