package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/oski/internal/dialogue"
	"github.com/vovakirdan/oski/internal/save"
	"github.com/vovakirdan/oski/internal/storage"
	"github.com/vovakirdan/oski/internal/world"
)

// Engine errors.
var (
	ErrNoSession   = errors.New("no game in progress")
	ErrSessionOver = errors.New("the game is over")
)

// SaveStore is the single save slot.
type SaveStore interface {
	Save(save.Snapshot) error
	Load() (save.Snapshot, error)
}

// Recorder receives finished sessions.
type Recorder interface {
	RecordResult(storage.SessionResult) (int64, error)
}

// Options configures an Engine.
type Options struct {
	Params  world.Params
	Saves   SaveStore
	History Recorder // Optional
	Player  string
	Logger  *log.Logger
}

// Reply is what the engine reports back for one command.
type Reply struct {
	Accepted bool     // False for rejected commands
	Lines    []string // Status text for the front end
	Quit     bool     // The caller should terminate
}

// Engine routes commands to the current session and handles the commands
// that replace it (new, load) or persist it (save-and-exit).
type Engine struct {
	params  world.Params
	saves   SaveStore
	history Recorder
	player  string
	log     *log.Logger

	session  *Session
	recorded bool
}

// NewEngine creates an engine with no session, i.e. at the menu.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		params:  opts.Params,
		saves:   opts.Saves,
		history: opts.History,
		player:  opts.Player,
		log:     logger,
	}
}

// Player returns the name recorded with finished sessions.
func (e *Engine) Player() string {
	return e.player
}

// Session returns the current session, or nil at the menu.
func (e *Engine) Session() *Session {
	return e.session
}

// NewGame parses seedText and starts a fresh session. On failure the
// previous session, if any, is kept.
func (e *Engine) NewGame(seedText string) error {
	seed, err := ParseSeed(seedText)
	if err != nil {
		return err
	}
	s, err := NewSession(seed, e.params, e.log)
	if err != nil {
		e.log.Error("generation failed", "seed", seed, "err", err)
		return err
	}
	e.start(s)
	e.log.Info("new game", "seed", seed, "session", s.ID())
	return nil
}

// LoadGame restores the saved session. On failure the previous session, if
// any, is kept.
func (e *Engine) LoadGame() error {
	if e.saves == nil {
		return save.ErrNotFound
	}
	snap, err := e.saves.Load()
	if err != nil {
		if errors.Is(err, save.ErrNotFound) {
			e.log.Info("no saved game")
		} else {
			e.log.Warn("load failed", "err", err)
		}
		return err
	}
	s, err := RestoreSession(snap, e.log)
	if err != nil {
		e.log.Warn("restore failed", "err", err)
		return err
	}
	e.start(s)
	e.log.Info("game loaded", "seed", snap.Seed, "session", s.ID())
	return nil
}

func (e *Engine) start(s *Session) {
	e.session = s
	e.recorded = s.Over()
}

// SaveGame writes the current session to the save slot. The in-memory
// session is untouched whatever the result.
func (e *Engine) SaveGame() error {
	if e.session == nil {
		return ErrNoSession
	}
	if e.saves == nil {
		return errors.New("no save slot configured")
	}
	if err := e.saves.Save(e.session.Snapshot()); err != nil {
		e.log.Error("save failed", "err", err)
		return err
	}
	e.log.Info("game saved", "seed", e.session.Seed(), "turns", e.session.Turns())
	return nil
}

// Execute applies one command. Rejected moves and options are not errors:
// they come back with Accepted false. For save-and-exit the reply always
// asks the caller to quit, and a failed save is also returned as the error.
func (e *Engine) Execute(cmd Command) (Reply, error) {
	switch cmd.Verb {
	case VerbNewGame:
		if err := e.NewGame(cmd.Arg); err != nil {
			return Reply{}, err
		}
		return Reply{Accepted: true, Lines: e.welcome("New world from seed %d.")}, nil

	case VerbLoadGame:
		if err := e.LoadGame(); err != nil {
			return Reply{}, err
		}
		return Reply{Accepted: true, Lines: e.welcome("Loaded world from seed %d.")}, nil

	case VerbSaveExit:
		reply := Reply{Accepted: true, Quit: true}
		if e.session == nil || e.session.Over() {
			return reply, nil
		}
		if err := e.SaveGame(); err != nil {
			return reply, fmt.Errorf("save before exit: %w", err)
		}
		reply.Lines = []string{"Game saved."}
		return reply, nil
	}

	s := e.session
	if s == nil {
		return Reply{}, ErrNoSession
	}
	if s.Over() {
		return Reply{Lines: s.EndLines()}, ErrSessionOver
	}

	var reply Reply
	switch cmd.Verb {
	case VerbMove:
		_, reply.Accepted = s.Move(cmd.Dir)

	case VerbInteract:
		res := s.Interact()
		for _, t := range res.Picked {
			reply.Lines = append(reply.Lines, "Picked up "+t.Description()+".")
		}
		reply.Accepted = len(res.Picked) > 0 || res.Dialogue.Accepted

	case VerbOption:
		res := s.Choose(cmd.Arg)
		reply.Accepted = res.Accepted
		for _, l := range res.Lines {
			reply.Lines = append(reply.Lines, l.Speaker.String()+": "+l.Text)
		}

	case VerbDescribe:
		reply.Accepted = true
		reply.Lines = []string{"Tile: " + s.Describe(cmd.Pos)}

	default:
		return Reply{}, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Verb)
	}

	if !reply.Accepted {
		e.log.Debug("command rejected", "cmd", cmd.String())
	}
	if s.Over() {
		reply.Lines = append(reply.Lines, s.EndLines()...)
		e.finish(s)
	}
	return reply, nil
}

func (e *Engine) welcome(format string) []string {
	return []string{fmt.Sprintf(format, e.session.Seed()), TaskLine}
}

// DialogueLines renders the open dialogue box as text, or nil when no box
// is open.
func DialogueLines(s *Session) []string {
	if !s.Dialogue().InTree() {
		return nil
	}
	lines := []string{dialogue.Title}
	for _, c := range s.Choices() {
		lines = append(lines, "  "+c.Text())
	}
	return lines
}

// finish records a terminal session once.
func (e *Engine) finish(s *Session) {
	if e.recorded {
		return
	}
	e.recorded = true
	e.log.Info("game over", "outcome", s.Outcome(), "seed", s.Seed(), "turns", s.Turns())

	if e.history == nil {
		return
	}
	outcome := storage.OutcomeWon
	if s.Outcome() == OutcomeEaten {
		outcome = storage.OutcomeEaten
	}
	_, err := e.history.RecordResult(storage.SessionResult{
		SessionID: s.ID(),
		Player:    e.player,
		Seed:      s.Seed(),
		Outcome:   outcome,
		Beers:     s.Count(world.TileBeer),
		Cards:     s.Count(world.TileCard),
		Turns:     s.Turns(),
	})
	if err != nil {
		e.log.Warn("cannot record session", "err", err)
	}
}
