package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one character position: a rune and its foreground colour.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a row-major cell buffer the game draws into every frame.
// The platform turns it into terminal output. All drawing clips at the
// edges, so callers may draw partly off-screen.
type Screen struct {
	width, height int
	cells         []Cell
	background    Background
}

// NewScreen creates a blank screen. Negative sizes are treated as zero.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

// Resize changes the dimensions and blanks the buffer.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width != s.width || height != s.height || s.cells == nil {
		s.width, s.height = width, height
		s.cells = make([]Cell, width*height)
	}
	s.Clear()
}

// Clear blanks every cell and resets the background.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
	s.background = BackgroundNormal
}

// SetBackground sets the background cue for the whole frame.
func (s *Screen) SetBackground(bg Background) {
	s.background = bg
}

// Background returns the frame's background cue.
func (s *Screen) Background() Background {
	return s.background
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// SetWithColor places a coloured rune at (x, y).
func (s *Screen) SetWithColor(x, y int, r rune, c Color) {
	if s.inside(x, y) {
		s.cells[y*s.width+x] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space outside the screen.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell outside the screen.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blankCell
	}
	return s.cells[y*s.width+x]
}

// DrawText writes text in the default colour starting at (x, y).
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextWithColor(x, y, text, ColorDefault)
}

// DrawTextWithColor writes coloured text starting at (x, y), one rune per cell.
func (s *Screen) DrawTextWithColor(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetWithColor(x, y, r, c)
		x++
	}
}

// DrawTextCentered centres text horizontally on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	s.DrawTextWithColor((s.width-utf8.RuneCountInString(text))/2, y, text, c)
}

// DrawTextRight ends text margin cells before the right edge of row y.
func (s *Screen) DrawTextRight(y, margin int, text string, c Color) {
	s.DrawTextWithColor(s.width-margin-utf8.RuneCountInString(text), y, text, c)
}

// DrawRect fills r with the given rune.
func (s *Screen) DrawRect(r Rect, fill rune, c Color) {
	for y := max(r.Y, 0); y < min(r.Bottom(), s.height); y++ {
		for x := max(r.X, 0); x < min(r.Right(), s.width); x++ {
			s.cells[y*s.width+x] = Cell{Rune: fill, Color: c}
		}
	}
}

// Row returns row y as plain text. Rows outside the screen are blank.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the screen as plain text, rows joined by newlines.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
