package game

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/oski/internal/core"
	"github.com/vovakirdan/oski/internal/save"
	"github.com/vovakirdan/oski/internal/storage"
	"github.com/vovakirdan/oski/internal/world"
)

type memSaves struct {
	snap    *save.Snapshot
	saveErr error
}

func (m *memSaves) Save(s save.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snap = &s
	return nil
}

func (m *memSaves) Load() (save.Snapshot, error) {
	if m.snap == nil {
		return save.Snapshot{}, save.ErrNotFound
	}
	return *m.snap, nil
}

type memHistory struct {
	results []storage.SessionResult
}

func (m *memHistory) RecordResult(r storage.SessionResult) (int64, error) {
	m.results = append(m.results, r)
	return int64(len(m.results)), nil
}

func newTestEngine(saves SaveStore, history Recorder) *Engine {
	return NewEngine(Options{
		Params:  world.DefaultParams(),
		Saves:   saves,
		History: history,
		Player:  "tester",
		Logger:  quietLogger(),
	})
}

func TestEngineRequiresSession(t *testing.T) {
	e := newTestEngine(&memSaves{}, nil)
	if _, err := e.Execute(Move(core.DirUp)); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
	if err := e.SaveGame(); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestEngineNewGame(t *testing.T) {
	e := newTestEngine(&memSaves{}, nil)

	if _, err := e.Execute(NewGame("x1")); !errors.Is(err, ErrInvalidSeed) {
		t.Errorf("expected ErrInvalidSeed, got %v", err)
	}
	if e.Session() != nil {
		t.Error("invalid seed must not start a session")
	}

	reply, err := e.Execute(NewGame("42"))
	if err != nil {
		t.Fatalf("new game failed: %v", err)
	}
	if e.Session() == nil || e.Session().Seed() != 42 {
		t.Fatal("session not started")
	}
	if len(reply.Lines) < 2 || reply.Lines[1] != TaskLine {
		t.Errorf("reply lines %v", reply.Lines)
	}
}

func TestEngineLoadWithoutSave(t *testing.T) {
	e := newTestEngine(&memSaves{}, nil)
	if _, err := e.Execute(LoadGame()); !errors.Is(err, save.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if e.Session() != nil {
		t.Error("failed load should stay at the menu")
	}
}

func TestEngineSaveAndLoad(t *testing.T) {
	saves, err := save.NewFileStore(filepath.Join(t.TempDir(), "save-file.txt"))
	if err != nil {
		t.Fatal(err)
	}
	e := newTestEngine(saves, nil)
	if _, err := e.Execute(NewGame("99")); err != nil {
		t.Fatal(err)
	}
	for _, d := range []core.Dir{core.DirUp, core.DirLeft, core.DirDown, core.DirRight} {
		e.Execute(Move(d))
	}
	before := e.Session().Snapshot()
	turns, id := e.Session().Turns(), e.Session().ID()

	reply, err := e.Execute(SaveExit())
	if err != nil {
		t.Fatalf("save-and-exit failed: %v", err)
	}
	if !reply.Quit {
		t.Error("save-and-exit should ask to quit")
	}

	fresh := newTestEngine(saves, nil)
	if _, err := fresh.Execute(LoadGame()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !fresh.Session().Snapshot().Equal(before) {
		t.Error("loaded session differs from the saved one")
	}
	if fresh.Session().Turns() != turns {
		t.Errorf("Turns = %d after load, expected %d", fresh.Session().Turns(), turns)
	}
	if fresh.Session().ID() != id {
		t.Errorf("ID = %q after load, expected %q", fresh.Session().ID(), id)
	}
}

func TestEngineSaveFailureKeepsSession(t *testing.T) {
	saves := &memSaves{saveErr: errors.New("disk full")}
	e := newTestEngine(saves, nil)
	e.Execute(NewGame("5"))
	before := e.Session().Snapshot()

	reply, err := e.Execute(SaveExit())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected the save error, got %v", err)
	}
	if !reply.Quit {
		t.Error("exit proceeds after a failed save")
	}
	if !e.Session().Snapshot().Equal(before) {
		t.Error("failed save changed the session")
	}
}

func TestEngineRejectedMoveIsNotError(t *testing.T) {
	e := newTestEngine(&memSaves{}, nil)
	e.Execute(NewGame("8"))
	s := e.Session()

	// Find a direction that is blocked
	for _, d := range core.Dirs {
		if s.Grid().At(s.Avatar().Step(d)).Walkable() {
			continue
		}
		reply, err := e.Execute(Move(d))
		if err != nil || reply.Accepted {
			t.Errorf("blocked move: %+v, %v", reply, err)
		}
		return
	}
	t.Skip("avatar has no blocked neighbor")
}

func TestEngineDescribe(t *testing.T) {
	e := newTestEngine(&memSaves{}, nil)
	e.Execute(NewGame("8"))
	reply, err := e.Execute(Describe(e.Session().Avatar()))
	if err != nil {
		t.Fatal(err)
	}
	if len(reply.Lines) != 1 || reply.Lines[0] != "Tile: avatar" {
		t.Errorf("describe lines %v", reply.Lines)
	}
}

func TestEngineRecordsFinishedSession(t *testing.T) {
	history := &memHistory{}
	e := newTestEngine(&memSaves{}, history)
	e.session = roomSession(t)
	teleport(t, e.session, e.session.NPC())

	reply, err := e.Execute(Interact())
	if err != nil || !reply.Accepted {
		t.Fatalf("interact: %+v, %v", reply, err)
	}
	box := DialogueLines(e.Session())
	if len(box) != 3 || box[0] != "Talk to Oski the Bear:" {
		t.Errorf("dialogue box %v", box)
	}

	for _, opt := range []string{"1", "2", "2"} {
		if _, err := e.Execute(Option(opt)); err != nil {
			t.Fatal(err)
		}
	}
	if e.Session().Outcome() != OutcomeEaten {
		t.Fatalf("Outcome = %s", e.Session().Outcome())
	}
	if len(history.results) != 1 {
		t.Fatalf("recorded %d results", len(history.results))
	}
	r := history.results[0]
	if r.Outcome != storage.OutcomeEaten || r.Player != "tester" || r.SessionID != "test" {
		t.Errorf("recorded %+v", r)
	}

	if _, err := e.Execute(Move(core.DirUp)); !errors.Is(err, ErrSessionOver) {
		t.Errorf("expected ErrSessionOver, got %v", err)
	}
	if len(history.results) != 1 {
		t.Error("finished session recorded twice")
	}

	// A finished session is not saved
	reply, err = e.Execute(SaveExit())
	if err != nil || !reply.Quit {
		t.Errorf("save-and-exit after the end: %+v, %v", reply, err)
	}
}
