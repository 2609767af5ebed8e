package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/oski/internal/game"
	"github.com/vovakirdan/oski/internal/save"
	"github.com/vovakirdan/oski/internal/world"
)

func newTestDriver(t *testing.T) (*driver, *bytes.Buffer, *save.FileStore) {
	t.Helper()
	saves, err := save.NewFileStore(filepath.Join(t.TempDir(), "save.txt"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	var out bytes.Buffer
	engine := game.NewEngine(game.Options{
		Params: world.DefaultParams(),
		Saves:  saves,
		Player: "tester",
		Logger: log.New(io.Discard),
	})
	return &driver{engine: engine, out: &out}, &out, saves
}

func TestDriverNewAndSave(t *testing.T) {
	d, out, saves := newTestDriver(t)

	script := "# comment\n\nnew 42\nsave\nmove up\n"
	if err := d.run(strings.NewReader(script)); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "New world from seed 42.") {
		t.Errorf("missing welcome line:\n%s", text)
	}
	if !strings.Contains(text, "Game saved.") {
		t.Errorf("missing save line:\n%s", text)
	}
	if !saves.Exists() {
		t.Error("save file should exist")
	}

	snap, err := saves.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Seed != 42 {
		t.Errorf("saved seed = %d, expected 42", snap.Seed)
	}
}

func TestDriverErrors(t *testing.T) {
	d, out, _ := newTestDriver(t)

	script := "dance\nmove up\nnew -5\nload\n"
	if err := d.run(strings.NewReader(script)); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "unknown command") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "no game in progress") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "error:") {
		t.Errorf("line 2 = %q", lines[2])
	}
	if lines[3] != "error: no saved game" {
		t.Errorf("line 3 = %q", lines[3])
	}
}

func TestDriverDescribe(t *testing.T) {
	d, out, _ := newTestDriver(t)
	if err := d.run(strings.NewReader("new 42\ndescribe -1 -1\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Tile: nothing") {
		t.Errorf("expected 'Tile: nothing' in:\n%s", out.String())
	}
}
