package tui

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/oski/internal/core"
	"github.com/vovakirdan/oski/internal/dialogue"
	"github.com/vovakirdan/oski/internal/game"
	"github.com/vovakirdan/oski/internal/save"
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

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestEngine(saves *memSaves) *game.Engine {
	return game.NewEngine(game.Options{
		Params: world.DefaultParams(),
		Saves:  saves,
		Player: "tester",
		Logger: quietLogger(),
	})
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW = 80
	cfg.ScreenH = 24
	return cfg
}

// talkingEngine loads a seed-42 world saved while Oski's first dialogue
// tree was open.
func talkingEngine(t *testing.T) (*game.Engine, *memSaves) {
	t.Helper()
	s, err := game.NewSession(42, world.DefaultParams(), quietLogger())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	snap := s.Snapshot()
	snap.Dialogue = dialogue.StateFirstTree
	saves := &memSaves{snap: &snap}

	e := newTestEngine(saves)
	if err := e.LoadGame(); err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	return e, saves
}

func press(t *testing.T, m GameModel, msg tea.KeyMsg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func frame(m GameModel) *core.Screen {
	scr := core.NewScreen(80, 24)
	drawGame(scr, m.engine.Session(), m.frame)
	return scr
}

func TestGameModelHUD(t *testing.T) {
	e := newTestEngine(&memSaves{})
	if err := e.NewGame("42"); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	m := NewGameModel(e, testConfig(), []string{"New world from seed 42."})

	scr := frame(m)
	if !strings.Contains(scr.Row(0), gameTitle) || !strings.Contains(scr.Row(0), "seed 42") {
		t.Errorf("row 0 = %q", scr.Row(0))
	}
	if !strings.Contains(scr.Row(1), game.TaskLine) {
		t.Errorf("row 1 = %q", scr.Row(1))
	}
	if !strings.Contains(scr.Row(2), "Beer: 0  Card: 0") {
		t.Errorf("row 2 = %q", scr.Row(2))
	}
	if !strings.Contains(scr.Row(3), "New world from seed 42.") {
		t.Errorf("row 3 = %q", scr.Row(3))
	}
	if !strings.Contains(scr.String(), "@") {
		t.Error("avatar should be visible")
	}
	if m.View() == "" {
		t.Error("View should not be empty")
	}
}

func TestGameModelMouseDescribesTile(t *testing.T) {
	e := newTestEngine(&memSaves{})
	if err := e.NewGame("42"); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	m := NewGameModel(e, testConfig(), nil)

	s := e.Session()
	cam := gameCamera(s, 80, 24)
	x, y := cam.toScreen(s.Avatar())

	next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	m = next.(GameModel)
	if m.frame.tileLine != "Tile: avatar" {
		t.Errorf("tile line = %q, expected %q", m.frame.tileLine, "Tile: avatar")
	}

	// The HUD is not part of the map.
	next, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionMotion})
	m = next.(GameModel)
	if m.frame.tileLine != "Tile: avatar" {
		t.Errorf("hovering the HUD changed the tile line to %q", m.frame.tileLine)
	}
}

func TestGameModelSaveQuitChord(t *testing.T) {
	saves := &memSaves{}
	e := newTestEngine(saves)
	if err := e.NewGame("7"); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	m := NewGameModel(e, testConfig(), nil)

	m, cmd := press(t, m, runeKey(':'))
	if cmd != nil || m.IsQuitting() {
		t.Fatal("':' alone should not quit")
	}
	m, cmd = press(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("':q' should quit")
	}
	if saves.snap == nil || saves.snap.Seed != 7 {
		t.Errorf("':q' should save the session, got %+v", saves.snap)
	}
}

func TestGameModelSaveFailureKeepsPlaying(t *testing.T) {
	saves := &memSaves{saveErr: errors.New("disk full")}
	e := newTestEngine(saves)
	if err := e.NewGame("7"); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	m := NewGameModel(e, testConfig(), nil)

	m, _ = press(t, m, runeKey(':'))
	m, _ = press(t, m, runeKey('q'))
	if m.IsQuitting() {
		t.Error("a failed save should not quit")
	}
	if !strings.Contains(m.frame.status, "disk full") {
		t.Errorf("status = %q, expected the save error", m.frame.status)
	}
}

func TestGameModelCtrlCQuitsWithoutSaving(t *testing.T) {
	saves := &memSaves{}
	e := newTestEngine(saves)
	if err := e.NewGame("7"); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	m := NewGameModel(e, testConfig(), nil)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() || cmd == nil {
		t.Error("ctrl+c should quit")
	}
	if saves.snap != nil {
		t.Error("ctrl+c should not save")
	}
}

func TestGameModelDialogueFlow(t *testing.T) {
	e, _ := talkingEngine(t)
	m := NewGameModel(e, testConfig(), nil)

	scr := frame(m)
	if !strings.Contains(scr.String(), dialogue.Title) {
		t.Fatal("dialogue box should be open after loading a first-tree save")
	}

	// Moving is blocked while the box is open.
	before := e.Session().Avatar()
	m, _ = press(t, m, runeKey('d'))
	if e.Session().Avatar() != before {
		t.Error("avatar moved during dialogue")
	}

	// 1: concerned -> second tree, Oski's line lands in the box.
	m, _ = press(t, m, runeKey('1'))
	if e.Session().Dialogue() != dialogue.StateSecondTree {
		t.Fatalf("state = %v, expected second tree", e.Session().Dialogue())
	}
	if len(m.frame.conversation) != 1 || !strings.HasPrefix(m.frame.conversation[0], "Oski:") {
		t.Errorf("conversation = %q", m.frame.conversation)
	}
	if !strings.Contains(frame(m).String(), "I'm dying") {
		t.Error("Oski's reply should be drawn in the box")
	}

	// 2 twice: refuse, refuse -> eaten.
	m, _ = press(t, m, runeKey('2'))
	if e.Session().Over() {
		t.Fatal("first refusal should only warn")
	}
	m, _ = press(t, m, runeKey('2'))
	if e.Session().Outcome() != game.OutcomeEaten {
		t.Fatalf("outcome = %v, expected eaten", e.Session().Outcome())
	}

	scr = frame(m)
	if !strings.Contains(scr.String(), game.LossLine) || !strings.Contains(scr.String(), game.GameOverLine) {
		t.Errorf("end screen missing loss lines:\n%s", scr.String())
	}

	// Any key leaves the end screen.
	m, _ = press(t, m, runeKey('x'))
	if !m.BackToMenu() {
		t.Error("a key on the end screen should return to the menu")
	}
}

func TestGameModelGoodbyeClosesBox(t *testing.T) {
	e, _ := talkingEngine(t)
	m := NewGameModel(e, testConfig(), nil)

	m, _ = press(t, m, runeKey('2'))
	if e.Session().Dialogue() != dialogue.StateIdle {
		t.Fatalf("state = %v, expected idle", e.Session().Dialogue())
	}
	if m.frame.conversation != nil {
		t.Errorf("conversation should be cleared, got %q", m.frame.conversation)
	}
	if m.frame.status != "Oski: Goodbye..." {
		t.Errorf("status = %q", m.frame.status)
	}
	if strings.Contains(frame(m).String(), dialogue.Title) {
		t.Error("dialogue box should be closed")
	}
}
