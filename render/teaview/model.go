package teaview

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FrameMsg carries one rendered frame
type FrameMsg struct {
	Text string
}

// CompleteMsg marks the end of a run
type CompleteMsg struct{}

// Starter begins an animation run
type Starter interface {
	Start(keep bool)
}

const helpLine = "space: restart  k: restart keeping text  q: quit"

// Model displays engine frames inside a bubbletea program
type Model struct {
	starter Starter
	styles  Styles
	keep    bool

	text     string
	complete bool
	runs     int

	width  int
	height int
}

// New creates a model that starts the first run on Init
// keep selects the reveal mode of the first and space-triggered runs
func New(starter Starter, keep bool) Model {
	return Model{
		starter: starter,
		styles:  DefaultStyles(),
		keep:    keep,
	}
}

// WithStyles replaces the palette
func (m Model) WithStyles(s Styles) Model {
	m.styles = s
	return m
}

// Text returns the last frame received
func (m Model) Text() string { return m.text }

// Complete reports whether the last run finished
func (m Model) Complete() bool { return m.complete }

// Runs returns the number of completed runs
func (m Model) Runs() int { return m.runs }

// Init starts the first run
func (m Model) Init() tea.Cmd {
	return m.start(m.keep)
}

// start runs Starter.Start off the program loop; Start writes the placeholder frame
// synchronously and Program.Send must not be called from Update
func (m Model) start(keep bool) tea.Cmd {
	if m.starter == nil {
		return nil
	}
	starter := m.starter
	return func() tea.Msg {
		starter.Start(keep)
		return nil
	}
}

// Update handles frames, completion, resize and keys
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.text = msg.Text
		m.complete = false
	case CompleteMsg:
		m.complete = true
		m.runs++
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			return m, m.start(m.keep)
		case "k":
			return m, m.start(true)
		}
	}
	return m, nil
}

// View centres the current frame with a help line underneath
func (m Model) View() string {
	style := m.styles.Text
	if m.complete {
		style = m.styles.Complete
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		style.Render(m.text),
		m.styles.Help.Render(fmt.Sprintf("%s  runs: %d", helpLine, m.runs)),
	)

	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
