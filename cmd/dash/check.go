package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/games/dash/engine"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate level files",
	Long: `Parse and validate level files. Every row of the map must have the
board width, the board must have exactly one player and only known glyphs:

  #  wall     .  sand     X  gem
  O  rock     @  player   !  spider   (space) empty

Exits with status 1 if any file is malformed.

Examples:
  dash check ./my-levels/cave.yaml
  dash check ./my-levels/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) {
	e, err := loadEnv(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer e.close()

	failed := 0
	for _, path := range args {
		lvl, err := e.loader.LoadFile(path)
		if err != nil {
			failed++
			if errors.Is(err, engine.ErrMalformedLevel) {
				fmt.Printf("FAIL  %s: %v\n", path, err)
			} else {
				fmt.Printf("ERROR %s: %v\n", path, err)
			}
			continue
		}
		fmt.Printf("OK    %s: %s (%q) %dx%d, %d gems, %d spiders\n",
			path, lvl.ID, lvl.Name, lvl.Template.Width, lvl.Template.Height, lvl.Gems(), lvl.Enemies())
	}

	if failed > 0 {
		os.Exit(1)
	}
}
