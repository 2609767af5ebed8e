package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oski/internal/game"
	"github.com/vovakirdan/oski/internal/save"
)

var (
	flagScript   string
	flagSavePath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play by typing commands, one per line",
	Long: `Read commands from stdin (or --script) and print what happens.
Blank lines and lines starting with # are ignored.

Commands:
  new <seed>             - Start a new world (alias: new-game)
  load                   - Load the saved game (alias: load-game)
  move <up|down|left|right>, or w/a/s/d
  interact               - Pick up nearby items, talk to Oski (alias: e)
  option <1|2|3|name>    - Answer Oski (alias: say)
  describe <x> <y>       - Name the tile at a position (alias: look)
  save                   - Save and exit (aliases: save-and-exit, :q)

Example:
  printf 'new 42\nmove up\ninteract\nsave\n' | oski run`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagScript, "script", "", "Read commands from a file instead of stdin")
	runCmd.Flags().StringVar(&flagSavePath, "save", "", "Save file (default: from config)")
}

func runRun(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	savePath := cfg.Save.Path
	if flagSavePath != "" {
		savePath = flagSavePath
	}
	saves, err := save.NewFileStore(savePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	in := io.Reader(os.Stdin)
	if flagScript != "" {
		f, err := os.Open(flagScript)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	opts := game.Options{
		Params: cfg.Params(),
		Saves:  saves,
		Player: playerName(),
		Logger: logger,
	}
	store := openHistory(cfg.Storage.DB, logger)
	if store != nil {
		defer store.Close()
		opts.History = store
	}

	d := &driver{engine: game.NewEngine(opts), out: os.Stdout}
	if err := d.run(in); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// driver feeds text commands to an engine and prints the replies.
type driver struct {
	engine *game.Engine
	out    io.Writer
}

// run processes lines until input ends or a command asks to quit.
func (d *driver) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if d.step(line) {
			return nil
		}
	}
	return sc.Err()
}

// step executes one line and reports whether the driver should stop.
func (d *driver) step(line string) bool {
	cmd, err := game.ParseCommand(line)
	if err != nil {
		fmt.Fprintf(d.out, "error: %v\n", err)
		return false
	}

	reply, err := d.engine.Execute(cmd)
	for _, l := range reply.Lines {
		fmt.Fprintln(d.out, l)
	}
	switch {
	case err != nil:
		fmt.Fprintf(d.out, "error: %s\n", describeError(err))
	case !reply.Accepted:
		fmt.Fprintln(d.out, "(rejected)")
	}
	if reply.Quit {
		return true
	}

	if s := d.engine.Session(); s != nil && cmd.Verb != game.VerbDescribe {
		for _, l := range game.DialogueLines(s) {
			fmt.Fprintln(d.out, l)
		}
	}
	return false
}

// describeError shortens the persistence errors a player can act on.
func describeError(err error) string {
	switch {
	case errors.Is(err, save.ErrNotFound):
		return "no saved game"
	case errors.Is(err, save.ErrVersion):
		return "save file is from an incompatible version"
	}
	return err.Error()
}
