package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ScreenSurface writes text to one row of a tcell.Screen
// Each SetText blanks the cells covered by the previous frame before drawing
type ScreenSurface struct {
	mu     sync.Mutex
	screen tcell.Screen
	x, y   int
	style  tcell.Style

	// Width in cells of the last drawn frame
	lastWidth int
	// Skip Show when the host batches screen updates
	deferShow bool
}

// NewScreenSurface anchors a surface at column x, row y
func NewScreenSurface(screen tcell.Screen, x, y int, style tcell.Style) *ScreenSurface {
	return &ScreenSurface{
		screen: screen,
		x:      x,
		y:      y,
		style:  style,
	}
}

// NewCenteredSurface anchors a surface so that text of the given cell width is centered
func NewCenteredSurface(screen tcell.Screen, text string, style tcell.Style) *ScreenSurface {
	w, h := screen.Size()
	x := (w - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	return NewScreenSurface(screen, x, h/2, style)
}

// SetDeferShow disables the screen flush after each frame
func (s *ScreenSurface) SetDeferShow(deferShow bool) {
	s.mu.Lock()
	s.deferShow = deferShow
	s.mu.Unlock()
}

// SetStyle changes the style used for subsequent frames
func (s *ScreenSurface) SetStyle(style tcell.Style) {
	s.mu.Lock()
	s.style = style
	s.mu.Unlock()
}

// MoveTo re-anchors the surface, the old region is cleared
func (s *ScreenSurface) MoveTo(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.x, s.y = x, y
}

// SetText draws text left to right, advancing by each rune's cell width
func (s *ScreenSurface) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()

	width, _ := s.screen.Size()
	col := s.x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			// Control and combining runes get a cell so frames keep their length
			w = 1
		}
		if col+w > width {
			break
		}
		s.screen.SetContent(col, s.y, r, nil, s.style)
		col += w
	}
	s.lastWidth = col - s.x

	if !s.deferShow {
		s.screen.Show()
	}
}

func (s *ScreenSurface) clearLocked() {
	for i := 0; i < s.lastWidth; i++ {
		s.screen.SetContent(s.x+i, s.y, ' ', nil, s.style)
	}
	s.lastWidth = 0
}
