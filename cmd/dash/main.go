// dash is a terminal gem-collecting game: walk a digger through sand, collect
// every gem, dodge falling rocks and patrolling spiders.
//
// Usage:
//
//	dash play [level]        - Play a level (menu if none is given)
//	dash levels              - List available levels
//	dash check <file>        - Validate a level file
//	dash history [level]     - Show recorded runs
//	dash serve               - Start SSH server for remote play
//
// Global flags:
//
//	--tick-rate <rate>  - Frames per second (default: 60)
//	--speed <factor>    - Scale every timing unit (default: 1)
//	--config <path>     - Custom dash.yaml
//	--dir <path>        - Extra level directory
//	--db <path>         - Set database path (default: ~/.dash/runs.db)
//	--log <path>        - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/games/dash"
	"github.com/vovakirdan/tui-dash/internal/games/dash/engine"
	"github.com/vovakirdan/tui-dash/internal/games/dash/levels"
	"github.com/vovakirdan/tui-dash/internal/platform/spectate"
	"github.com/vovakirdan/tui-dash/internal/platform/tui"
)

var (
	// Global flags
	flagTickRate   int
	flagSpeed      float64
	flagConfig     string
	flagLevelDir   string
	flagDBPath     string
	flagLogPath    string
	flagDebug      bool
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dash",
	Short: "Dash - dig for gems in your terminal",
	Long: `Dash is a terminal game on a grid of walls, sand, rocks and gems.
Tap a cell to walk there, collect every gem and keep out of the way of
falling rocks and patrolling spiders.

Available commands:
  play     - Play a level
  levels   - Show all available levels
  check    - Validate a level file
  history  - View recorded runs
  serve    - Start SSH server for remote play

Examples:
  dash play
  dash play quarry --difficulty hard
  dash play --spectate :8080
  dash levels --dir ./my-levels
  dash history classic
  dash serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagTickRate, "tick-rate", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Float64Var(&flagSpeed, "speed", 1, "Scale every timing unit (2 = twice as fast)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom dash.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLevelDir, "dir", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dash/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log every board change")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// env is the state shared by the commands: configuration, level lookup and
// logging.
type env struct {
	cfg     config.DashConfig
	engine  engine.Config
	loader  *levels.Loader
	runtime core.RuntimeConfig
	logger  *log.Logger
	closers []io.Closer
}

// loadEnv reads the configuration and applies the global flags. logOut is
// used when --log is not given.
func loadEnv(logOut io.Writer) (*env, error) {
	cfg, err := config.LoadDash(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return nil, err
		}
		config.ApplyDashPreset(&cfg, preset)
	}

	e := &env{
		cfg:    cfg,
		engine: cfg.Engine(flagSpeed),
		runtime: core.RuntimeConfig{
			ScreenW:  80,
			ScreenH:  24,
			TickRate: flagTickRate,
		},
	}

	e.loader = levels.NewLoader(flagLevelDir)
	if cfg.Gameplay.Width > 0 && cfg.Gameplay.Height > 0 {
		e.loader.Width = cfg.Gameplay.Width
		e.loader.Height = cfg.Gameplay.Height
	}

	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		e.closers = append(e.closers, f)
		logOut = f
	}

	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	e.logger = log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Prefix:          "dash",
		Level:           level,
	})

	return e, nil
}

// gameFactory builds games with the configured engine settings. Every game
// logs its events, and is streamed by hub when hub is not nil.
func (e *env) gameFactory(hub *spectate.Hub) tui.GameFactory {
	return func(lvl levels.Level) (core.Game, error) {
		g, err := dash.New(lvl, e.engine, dash.NewEventLogger(e.logger, lvl.ID))
		if err != nil {
			return nil, err
		}
		if hub != nil {
			hub.Watch(g.Session())
		}
		return g, nil
	}
}

func (e *env) close() {
	for _, c := range e.closers {
		c.Close()
	}
}

// fail prints an error and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
