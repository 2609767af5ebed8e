package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/vovakirdan/oski/internal/core"
	"github.com/vovakirdan/oski/internal/game"
	"github.com/vovakirdan/oski/internal/world"
)

// Layout constants
const (
	minHUDRows     = 5  // Title, task, inventory, status, separator
	dialogueMaxW   = 64 // Widest dialogue box
	dialogueMargin = 2  // Gap between the box and the screen edge
)

const gameTitle = "Oski's Intervention"

// camera maps grid coordinates onto the screen area given to the map.
// A grid smaller than the view is centered; a larger one scrolls so the
// focus point stays as close to the middle as the grid edges allow.
type camera struct {
	view   core.Rect  // Screen cells used by the map
	origin core.Point // Grid point drawn at the view's top-left cell
}

func newCamera(gridW, gridH int, view core.Rect, focus core.Point) camera {
	return camera{
		view: view,
		origin: core.Pt(
			axisOrigin(gridW, view.W, focus.X),
			axisOrigin(gridH, view.H, focus.Y),
		),
	}
}

func axisOrigin(size, span, focus int) int {
	if size <= span {
		return -(span - size) / 2
	}
	return core.Clamp(focus-span/2, 0, size-span)
}

// toWorld converts a screen cell to a grid point. It fails outside the view.
func (c camera) toWorld(x, y int) (core.Point, bool) {
	if !c.view.Contains(core.Pt(x, y)) {
		return core.Point{}, false
	}
	return core.Pt(x-c.view.X+c.origin.X, y-c.view.Y+c.origin.Y), true
}

// toScreen converts a grid point to a screen cell, which may lie outside the view.
func (c camera) toScreen(p core.Point) (x, y int) {
	return p.X - c.origin.X + c.view.X, p.Y - c.origin.Y + c.view.Y
}

// hudRows returns the number of rows reserved above the map.
func hudRows(p world.Params) int {
	return max(p.HUDHeight, minHUDRows)
}

// gameCamera builds the camera for a session on a screen of the given size.
func gameCamera(s *game.Session, width, height int) camera {
	hud := hudRows(s.Params())
	view := core.NewRect(0, hud, width, max(height-hud, 0))
	g := s.Grid()
	return newCamera(g.Width(), g.Height(), view, s.Avatar())
}

// drawMap draws every visible grid cell.
func drawMap(scr *core.Screen, g *world.Grid, cam camera) {
	for y := cam.view.Y; y < cam.view.Bottom(); y++ {
		for x := cam.view.X; x < cam.view.Right(); x++ {
			p, _ := cam.toWorld(x, y)
			t := g.At(p)
			if t == world.TileNothing {
				continue
			}
			scr.Set(x, y, t.Rune(), t.Color())
		}
	}
}

// drawHUD draws the status rows above the map.
func drawHUD(scr *core.Screen, s *game.Session, tileLine, status string) {
	rows := hudRows(s.Params())

	scr.DrawText(1, 0, gameTitle, core.ColorTitle)
	seed := fmt.Sprintf("seed %d", s.Seed())
	scr.DrawText(scr.Width()-len(seed)-1, 0, seed, core.ColorMuted)

	scr.DrawText(1, 1, game.TaskLine, core.ColorDefault)
	scr.DrawText(1, 2, s.InventoryLine(), core.ColorBeer)
	if tileLine != "" {
		scr.DrawText(scr.Width()-len([]rune(tileLine))-1, 2, tileLine, core.ColorMuted)
	}
	if status != "" {
		scr.DrawText(1, 3, status, core.ColorMuted)
	}

	scr.FillRect(core.NewRect(0, rows-1, scr.Width(), 1), '─', core.ColorMuted)
}

// boxLine is one line of the dialogue box.
type boxLine struct {
	text  string
	color core.Color
}

// dialogueBox lays out the conversation so far followed by the open choices.
func dialogueBox(conversation, choices []string, inner int) []boxLine {
	var lines []boxLine
	for _, l := range conversation {
		c := core.ColorDefault
		switch {
		case strings.HasPrefix(l, "Oski:"):
			c = core.ColorOski
		case strings.HasPrefix(l, "You:"):
			c = core.ColorAvatar
		}
		for _, w := range strings.Split(wordwrap.String(l, inner), "\n") {
			lines = append(lines, boxLine{text: w, color: c})
		}
	}
	if len(lines) > 0 {
		lines = append(lines, boxLine{})
	}
	for i, l := range choices {
		c := core.ColorDefault
		if i == 0 {
			c = core.ColorTitle
		}
		lines = append(lines, boxLine{text: l, color: c})
	}
	return lines
}

// drawDialogue draws the dialogue box anchored to the bottom of the screen.
func drawDialogue(scr *core.Screen, conversation, choices []string) {
	w := min(scr.Width()-2*dialogueMargin, dialogueMaxW)
	if w < 8 {
		return
	}
	lines := dialogueBox(conversation, choices, w-4)
	h := len(lines) + 2
	box := core.NewRect((scr.Width()-w)/2, max(scr.Height()-h-1, 0), w, h)

	scr.FillRect(box, ' ', core.ColorDefault)
	scr.DrawBox(box, core.ColorMuted)
	for i, l := range lines {
		scr.DrawText(box.X+2, box.Y+1+i, l.text, l.color)
	}
}

// drawEnd draws the win or loss screen.
func drawEnd(scr *core.Screen, s *game.Session) {
	scr.Clear()
	lines := s.EndLines()
	headline := core.ColorTitle
	if s.Outcome() == game.OutcomeEaten {
		headline = core.ColorDanger
	}

	y := scr.Height()/2 - 2
	for i, l := range lines {
		c := core.ColorMuted
		if i == 0 {
			c = headline
		}
		scr.DrawTextCentered(y+i*2, l, c)
	}
	scr.DrawTextCentered(y+len(lines)*2+1, "Press any key to return to the menu", core.ColorMuted)
}

// drawGame draws one full frame for a session in progress or just finished.
func drawGame(scr *core.Screen, s *game.Session, v frameState) {
	scr.Clear()
	if s.Over() {
		drawEnd(scr, s)
		return
	}

	cam := gameCamera(s, scr.Width(), scr.Height())
	drawMap(scr, s.Grid(), cam)
	drawHUD(scr, s, v.tileLine, v.status)

	if box := game.DialogueLines(s); box != nil {
		drawDialogue(scr, v.conversation, box)
	}
}

// frameState is the front-end state drawn next to the session.
type frameState struct {
	tileLine     string   // Result of the last mouse query
	status       string   // Last non-dialogue message
	conversation []string // Lines spoken since the box opened
}
