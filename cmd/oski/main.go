// oski is a seeded exploration game played in the terminal: wander a
// generated world, collect items and talk Oski the Bear out of his habit.
//
// Usage:
//
//	oski play              - Play in the full-screen terminal UI
//	oski run               - Read commands from stdin, print status lines
//	oski map <seed>        - Print the world generated from a seed
//	oski history           - Show finished sessions
//	oski serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - World config YAML (default: search path, then embedded)
//	--preset <name>     - World size preset: cozy, standard, sprawling
//	--log-level <level> - debug, info, warn, error (default: info)
//	--log-file <path>   - Log destination (default: stderr; ~/.oski/oski.log for play)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/oski/internal/config"
	"github.com/vovakirdan/oski/internal/core"
	"github.com/vovakirdan/oski/internal/storage"
)

// defaultTUILog keeps log output off the alternate screen.
const defaultTUILog = "~/.oski/oski.log"

var (
	// Global flags
	flagConfig   string
	flagPreset   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "oski",
	Short: "Oski's Intervention - Save Oski from himself",
	Long: `Oski's Intervention is a terminal exploration game. Every world is
generated from a numeric seed: rooms, corridors, beer, a clipper card and
Oski the Bear, who needs your help whether he admits it or not.

Available commands:
  play     - Full-screen game with menu, save and load
  run      - Scripted play: one command per line on stdin
  map      - Print the world for a seed
  history  - Show finished sessions
  serve    - Start SSH server for remote play

Examples:
  oski play
  oski play --seed 42
  echo "new 42" | oski run
  oski map 42 --preset cozy
  oski serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom world config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "World size preset: cozy, standard, sprawling")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default: stderr, ~/.oski/oski.log for play)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the world config and applies --preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// newLogger builds the process logger. defaultPath is used when --log-file
// is not set; an empty path or "-" means stderr.
func newLogger(defaultPath string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	path := flagLogFile
	if path == "" {
		path = defaultPath
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if path != "" && path != "-" {
		expanded, err := core.ExpandHome(path)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "oski",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openHistory opens the history database. A failure is logged and play
// continues without history.
func openHistory(path string, logger *log.Logger) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open history database", "path", path, "error", err)
		return nil
	}
	return store
}

// playerName is the name recorded with finished local sessions.
func playerName() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(env); name != "" {
			return name
		}
	}
	return "player"
}
