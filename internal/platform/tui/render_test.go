package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/oski/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(12, 2)
	scr.DrawText(0, 0, "Oski", core.ColorOski)
	scr.DrawText(0, 1, "#\"\"#", core.ColorWall)

	out := RenderScreen(scr)
	if !strings.Contains(out, "Oski") {
		t.Errorf("rendered output lost the text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorDanger; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("color %d has no style", c)
		}
	}
}
