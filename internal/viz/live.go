package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/verlet/internal/metrics"
	"github.com/san-kum/verlet/internal/world"
)

const (
	canvasWidth     = 80
	canvasHeight    = 28
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// WorldFactory rebuilds the scene from scratch; used by the reset key.
type WorldFactory func() (*world.World, error)

// Model drives a live terminal view of a running world.
type Model struct {
	w       *world.World
	factory WorldFactory

	sceneName string
	fps       int
	canvas    *Canvas

	energy        *metrics.KineticEnergy
	energyHistory []float64
	collisions    int

	running bool
	err     error
}

func NewModel(w *world.World, factory WorldFactory, sceneName string, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	w.Start()
	return Model{
		w:             w,
		factory:       factory,
		sceneName:     sceneName,
		fps:           fps,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		energy:        metrics.NewKineticEnergy(),
		energyHistory: make([]float64, 0, historyCapacity),
		running:       true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.running {
				m.w.Stop()
			} else {
				m.w.Start()
			}
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			ev := m.w.Advance(time.Second / time.Duration(m.fps))
			m.collisions = ev.Collisions

			m.energy.Reset()
			m.energy.Observe(m.w, 0)
			m.energyHistory = append(m.energyHistory, m.energy.Value())
			if len(m.energyHistory) > historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) reset() {
	if m.factory == nil {
		return
	}
	w, err := m.factory()
	if err != nil {
		m.err = err
		return
	}
	if m.running {
		w.Start()
	}
	m.w = w
	m.energyHistory = m.energyHistory[:0]
	m.collisions = 0
	m.err = nil
}

func (m Model) View() string {
	m.canvas.Clear()
	RenderWorld(m.canvas, m.w, ViewFor(m.w))
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sceneName)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("Kinetic energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	dyn, static := 0, 0
	for _, b := range m.w.Bodies() {
		if b.Static {
			static++
		} else {
			dyn++
		}
	}

	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.w.StepCount())) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d dynamic, %d static", dyn, static)) + "\n")
	s.WriteString(labelStyle.Render("Constraints") + valueStyle.Render(fmt.Sprintf("%d", len(m.w.Constraints()))) + "\n")
	s.WriteString(labelStyle.Render("Collisions") + valueStyle.Render(fmt.Sprintf("%d/frame", m.collisions)) + "\n")
	if m.err != nil {
		s.WriteString("\n" + valueStyle.Render("reset failed: "+m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause  R:Reset  Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
