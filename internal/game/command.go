package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/oski/internal/core"
)

// Input errors.
var (
	ErrInvalidSeed    = errors.New("seed must be a non-negative integer")
	ErrUnknownCommand = errors.New("unknown command")
)

// Verb identifies a command.
type Verb int

const (
	VerbMove Verb = iota
	VerbInteract
	VerbOption
	VerbSaveExit
	VerbNewGame
	VerbLoadGame
	VerbDescribe
)

var verbNames = [...]string{
	VerbMove:     "move",
	VerbInteract: "interact",
	VerbOption:   "option",
	VerbSaveExit: "save-and-exit",
	VerbNewGame:  "new-game",
	VerbLoadGame: "load-game",
	VerbDescribe: "describe",
}

func (v Verb) String() string {
	if v < 0 || int(v) >= len(verbNames) {
		return "unknown"
	}
	return verbNames[v]
}

// Command is one abstract input. Only the fields relevant to Verb are set.
type Command struct {
	Verb Verb
	Dir  core.Dir   // VerbMove
	Arg  string     // VerbOption: token or key; VerbNewGame: seed text
	Pos  core.Point // VerbDescribe
}

// Constructors for the commands the front ends emit.
func Move(d core.Dir) Command { return Command{Verb: VerbMove, Dir: d} }
func Interact() Command { return Command{Verb: VerbInteract} }
func Option(arg string) Command { return Command{Verb: VerbOption, Arg: arg} }
func SaveExit() Command { return Command{Verb: VerbSaveExit} }
func NewGame(seed string) Command { return Command{Verb: VerbNewGame, Arg: seed} }
func LoadGame() Command { return Command{Verb: VerbLoadGame} }
func Describe(p core.Point) Command { return Command{Verb: VerbDescribe, Pos: p} }

func (c Command) String() string {
	switch c.Verb {
	case VerbMove:
		return "move " + c.Dir.String()
	case VerbOption, VerbNewGame:
		return c.Verb.String() + " " + c.Arg
	case VerbDescribe:
		return fmt.Sprintf("describe %d %d", c.Pos.X, c.Pos.Y)
	}
	return c.Verb.String()
}

// ParseCommand reads one line of text such as "move up", "option refuse",
// "new 42" or "describe 10 12".
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	verb, args := fields[0], fields[1:]

	wantArgs := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s), got %d", verb, n, len(args))
		}
		return nil
	}

	switch verb {
	case "move", "go":
		if err := wantArgs(1); err != nil {
			return Command{}, err
		}
		d, ok := core.ParseDir(args[0])
		if !ok {
			return Command{}, fmt.Errorf("unknown direction %q", args[0])
		}
		return Move(d), nil

	case "up", "down", "left", "right", "w", "a", "s", "d":
		d, _ := core.ParseDir(verb)
		return Move(d), wantArgs(0)

	case "interact", "e":
		return Interact(), wantArgs(0)

	case "option", "say":
		if err := wantArgs(1); err != nil {
			return Command{}, err
		}
		return Option(args[0]), nil

	case "1", "2", "3":
		return Option(verb), wantArgs(0)

	case "save-and-exit", "save", ":q":
		return SaveExit(), wantArgs(0)

	case "new-game", "new":
		if err := wantArgs(1); err != nil {
			return Command{}, err
		}
		if _, err := ParseSeed(args[0]); err != nil {
			return Command{}, err
		}
		return NewGame(args[0]), nil

	case "load-game", "load":
		return LoadGame(), wantArgs(0)

	case "describe", "look":
		if err := wantArgs(2); err != nil {
			return Command{}, err
		}
		x, errX := strconv.Atoi(args[0])
		y, errY := strconv.Atoi(args[1])
		if errX != nil || errY != nil {
			return Command{}, fmt.Errorf("describe needs integer coordinates, got %q %q", args[0], args[1])
		}
		return Describe(core.Pt(x, y)), nil
	}

	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
}

// ParseSeed accepts a string of decimal digits. Anything else, including an
// empty string, a sign or a value beyond int64, fails with ErrInvalidSeed.
func ParseSeed(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidSeed)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSeed, s)
		}
	}
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidSeed, s)
	}
	return seed, nil
}

// FromAction converts a front-end action into a command. ActionQuit and
// ActionNone have no command.
func FromAction(a core.Action) (Command, bool) {
	if d, ok := a.Dir(); ok {
		return Move(d), true
	}
	if key, ok := a.OptionKey(); ok {
		return Option(key), true
	}
	switch a {
	case core.ActionInteract:
		return Interact(), true
	case core.ActionSaveQuit:
		return SaveExit(), true
	}
	return Command{}, false
}
