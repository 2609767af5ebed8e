package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/oski/internal/storage"
)

type fakeHistory struct {
	results []storage.SessionResult
	err     error
}

func (f *fakeHistory) RecentResults(limit int) ([]storage.SessionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeHistory) PlayerResults(player string, limit int) ([]storage.SessionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []storage.SessionResult
	for _, r := range f.results {
		if r.Player == player {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeHistory) Stats() (*storage.Stats, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := &storage.Stats{Played: len(f.results)}
	for _, r := range f.results {
		if r.Outcome == storage.OutcomeWon {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	return s, nil
}

func sampleHistory() *fakeHistory {
	now := time.Now()
	return &fakeHistory{results: []storage.SessionResult{
		{Player: "alice", Seed: 42, Outcome: storage.OutcomeWon, Beers: 2, Cards: 1, Turns: 80, CreatedAt: now},
		{Player: "bob", Seed: 7, Outcome: storage.OutcomeEaten, Beers: 1, Turns: 30, CreatedAt: now},
		{Player: "alice", Seed: 9, Outcome: storage.OutcomeEaten, Turns: 12, CreatedAt: now},
	}}
}

func TestHistoryLoadsAll(t *testing.T) {
	m := NewHistoryModel(sampleHistory(), "alice", 100, 30)

	if len(m.Results()) != 3 {
		t.Fatalf("expected 3 results, got %d", len(m.Results()))
	}
	if got := m.statsLine(); got != "Played 3  |  Saved Oski 1  |  Eaten 2" {
		t.Errorf("statsLine() = %q", got)
	}
	view := m.View()
	if !strings.Contains(view, "HISTORY - all players") {
		t.Error("title should mention all players")
	}
}

func TestHistoryFilterToggle(t *testing.T) {
	m := NewHistoryModel(sampleHistory(), "alice", 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if len(m.Results()) != 2 {
		t.Errorf("expected alice's 2 results, got %d", len(m.Results()))
	}
	if !strings.Contains(m.View(), "HISTORY - alice") {
		t.Error("title should name the player")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if len(m.Results()) != 3 {
		t.Errorf("expected all 3 results again, got %d", len(m.Results()))
	}
}

func TestHistoryWithoutSource(t *testing.T) {
	m := NewHistoryModel(nil, "alice", 80, 24)
	if len(m.Results()) != 0 {
		t.Error("no source should mean no results")
	}
	if !strings.Contains(m.View(), "History is unavailable.") {
		t.Error("view should explain the missing history")
	}
}

func TestHistoryLoadError(t *testing.T) {
	m := NewHistoryModel(&fakeHistory{err: errors.New("db locked")}, "alice", 80, 24)
	if !strings.Contains(m.View(), "db locked") {
		t.Error("view should show the load error")
	}
}

func TestHistoryBackAndQuit(t *testing.T) {
	m := NewHistoryModel(sampleHistory(), "alice", 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	back := next.(HistoryModel)
	if !back.IsGoingBack() || back.IsQuitting() || cmd != nil {
		t.Error("esc should go back without quitting")
	}

	next, cmd = m.Update(runeKey('q'))
	quit := next.(HistoryModel)
	if !quit.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestSanitizeUser(t *testing.T) {
	tests := []struct{ in, want string }{
		{"alice", "alice"},
		{"Bob_1-x", "Bob_1-x"},
		{"../../etc/passwd", "______etc_passwd"},
		{"a b", "a_b"},
		{"", "anonymous"},
	}
	for _, tt := range tests {
		if got := sanitizeUser(tt.in); got != tt.want {
			t.Errorf("sanitizeUser(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestHistoryCopySeed(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { writeClipboard = orig }()

	m := NewHistoryModel(sampleHistory(), "alice", 100, 30)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(runeKey('c'))
	m = next.(HistoryModel)

	if copied != "7" {
		t.Errorf("copied %q, expected the second row's seed 7", copied)
	}
	if !strings.Contains(m.View(), "Copied seed 7") {
		t.Error("view should confirm the copy")
	}
}

func TestHistoryCopyFailure(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no display") }
	defer func() { writeClipboard = orig }()

	m := NewHistoryModel(sampleHistory(), "alice", 100, 30)
	next, _ := m.Update(runeKey('c'))
	m = next.(HistoryModel)
	if !strings.Contains(m.View(), "Clipboard unavailable: no display") {
		t.Error("view should report the clipboard error")
	}
}
