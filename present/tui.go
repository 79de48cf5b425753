package present

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"ftlsim/ftl"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	liveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	deadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
)

// Step advances the simulated device by one command and reports what
// happened, so the inspector model can drive a Simulator without
// depending on the workload package's Command type directly.
type Step func() (description string, err error)

// model is the bubbletea state for the interactive inspector: a page
// table view of the device, a toggleable raw-state panel, and a status
// line recording the last command's outcome.
type model struct {
	sim      *ftl.Simulator
	step     Step
	status   string
	showSpew bool
	width    int
	height   int
}

// Inspect runs an interactive terminal session over sim, advancing one
// command per keypress. It blocks until the user quits.
func Inspect(sim *ftl.Simulator, step Step) error {
	m := model{sim: sim, step: step, status: "ready"}
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n", " ":
			desc, err := m.step()
			if err != nil {
				m.status = fmt.Sprintf("%s -> %s", desc, ftl.Outcome(err))
			} else {
				m.status = fmt.Sprintf("%s -> success", desc)
			}
			return m, nil
		case "u":
			erased := m.sim.Upkeep()
			m.status = fmt.Sprintf("upkeep -> %d block(s) reclaimed", erased)
			return m, nil
		case "d":
			m.showSpew = !m.showSpew
			return m, nil
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("ftlsim inspector — policy=%s", m.sim.PolicyName())))
	b.WriteString("\n\n")
	b.WriteString(m.renderPageTable())
	b.WriteString("\n")
	b.WriteString("status: " + m.status + "\n")
	b.WriteString("[n] step  [u] upkeep  [d] toggle raw dump  [q] quit\n")
	if m.showSpew {
		b.WriteString("\n")
		b.WriteString(spew.Sdump(m.sim.Blocks()))
	}
	return b.String()
}

func (m model) renderPageTable() string {
	cursor := m.sim.CursorPosition()
	var b strings.Builder
	for _, pv := range m.sim.Pages() {
		cell := fmt.Sprintf("[%c]", pv.StateRune())
		switch {
		case pv.Physical == cursor:
			cell = cursorStyle.Render(cell)
		case pv.Live:
			cell = liveStyle.Render(cell)
		case pv.State != ftl.Invalid:
			cell = deadStyle.Render(cell)
		}
		b.WriteString(cell)
		if (pv.Physical+1)%16 == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
