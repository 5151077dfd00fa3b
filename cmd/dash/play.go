package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dash/internal/games/dash/levels"
	"github.com/vovakirdan/tui-dash/internal/platform/spectate"
	"github.com/vovakirdan/tui-dash/internal/platform/tui"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

var flagSpectate string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing a level. Without an argument the configured default
level (classic) is played; press Esc for the level menu.

Controls:
  Arrows/hjkl  - Move the cursor
  Enter/Space  - Tap the cell under the cursor (or click it)
  R            - Restart the level
  P            - Pause
  Ctrl+S       - Save a text screenshot
  Ctrl+Y       - Copy the board to the clipboard
  Esc          - Level menu
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 5 lives, slower spiders
  normal - values from the config file
  hard   - 2 lives, faster spiders
  fixed  - values from the config file, no preset applied

Examples:
  dash play
  dash play spiders --difficulty easy
  dash play --speed 2
  dash play --spectate :8080      # watch at ws://localhost:8080/ws`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address")
}

func runPlay(cmd *cobra.Command, args []string) {
	e, err := loadEnv(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer e.close()

	id := e.cfg.Gameplay.Level
	if len(args) > 0 {
		id = args[0]
	}

	lvl, err := levels.Find(id, e.loader)
	if err != nil {
		if errors.Is(err, levels.ErrNotFound) {
			fail("unknown level %q\nRun 'dash levels' to see available levels.", id)
		}
		fail("%v", err)
	}

	all, err := levels.All(e.loader)
	if err != nil {
		fail("%v", err)
	}

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		e.runtime.ScreenW = w
		e.runtime.ScreenH = h
	}

	var hub *spectate.Hub
	if flagSpectate != "" {
		hub = spectate.NewHub(e.logger)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := hub.ListenAndServe(ctx, flagSpectate); err != nil {
				e.logger.Error("spectator feed stopped", "error", err)
			}
		}()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		e.logger.Warn("could not open runs database", "error", err)
		store = nil
	}

	opts := tui.Options{Store: store, Logger: e.logger}
	runErr := tui.RunSession(all, e.gameFactory(hub), &lvl, e.runtime, opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
