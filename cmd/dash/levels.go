package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/games/dash/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long:  `Shows the built-in levels and the levels found in --dir.`,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	e, err := loadEnv(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer e.close()

	all, err := levels.All(e.loader)
	if err != nil {
		fail("%v", err)
	}

	if len(all) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2
	for _, lvl := range all {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-16s  %4s  %7s  %s\n", maxIDLen, "ID", "Name", "Gems", "Spiders", "Source")
	fmt.Printf("  %-*s  %-16s  %4s  %7s  %s\n", maxIDLen, "--", "----", "----", "-------", "------")

	for _, lvl := range all {
		source := "built-in"
		if lvl.FilePath != "" {
			source = lvl.FilePath
		}
		fmt.Printf("  %-*s  %-16s  %4d  %7d  %s\n", maxIDLen, lvl.ID, lvl.Name, lvl.Gems(), lvl.Enemies(), source)
	}

	fmt.Println()
	fmt.Println("Run 'dash play <id>' to play a level.")
}
