package teaview

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lixenwraith/shuffletext/event"
)

// Sender is the subset of *tea.Program used to forward frames
type Sender interface {
	Send(msg tea.Msg)
}

// Surface forwards engine frames into a running program
// SetText blocks until the program loop accepts the message or the program has exited
type Surface struct {
	sender Sender
}

// NewSurface creates a surface bound to sender
func NewSurface(sender Sender) *Surface {
	return &Surface{sender: sender}
}

// SetText sends a FrameMsg
func (s *Surface) SetText(text string) {
	s.sender.Send(FrameMsg{Text: text})
}

// CompletionListener returns a bus listener that sends CompleteMsg for every completion event
func CompletionListener(sender Sender) event.Listener {
	return event.ListenerFunc(func(event.Event) {
		sender.Send(CompleteMsg{})
	})
}
