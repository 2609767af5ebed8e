package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/oski/internal/core"
	"github.com/vovakirdan/oski/internal/game"
	"github.com/vovakirdan/oski/internal/platform/tui"
	"github.com/vovakirdan/oski/internal/save"
)

var flagSeed int64

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal UI",
	Long: `Open the main menu: start a new world from a seed, load the saved
game or browse the history of finished sessions.

Controls:
  W/A/S/D, arrows  - Move
  E                - Pick up nearby items, talk to Oski
  1/2/3            - Choose a dialogue option
  :q               - Save and exit
  Mouse            - Hover a tile to see what it is
  Ctrl+C           - Exit without saving

Examples:
  oski play
  oski play --seed 42
  oski play --preset sprawling`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagSeed, "seed", -1, "Start a new world from this seed and skip the menu")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(defaultTUILog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	saves, err := save.NewFileStore(cfg.Save.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openHistory(cfg.Storage.DB, logger)
	opts := game.Options{
		Params: cfg.Params(),
		Saves:  saves,
		Player: playerName(),
		Logger: logger,
	}
	var history tui.HistorySource
	if store != nil {
		opts.History = store
		history = store
	}
	engine := game.NewEngine(opts)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		Seed:     flagSeed,
		Username: opts.Player,
	}

	logger.Info("starting", "save", saves.Path(), "seed", flagSeed)
	runErr := tui.Run(engine, history, runtime)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
