package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/skillwall/internal/sim"
	"github.com/san-kum/skillwall/internal/survey"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 45
	historyCapacity = 300
	frameInterval   = time.Second / 30
	maxFrame        = 100 * time.Millisecond
)

type TickMsg time.Time

type updateMsg survey.Update

// Loader is the part of the survey loader the kiosk drives.
type Loader interface {
	Initial(ctx context.Context) survey.Update
	Refresh(ctx context.Context) survey.Update
}

// Model runs a session in the terminal.
type Model struct {
	session       *sim.Session
	loader        Loader
	refresh       time.Duration
	ctx           context.Context
	canvas        *Canvas
	surface       *Surface
	width, height int
	last          time.Time
	energyHistory []float64
}

// NewModel builds the kiosk. loader may be nil, in which case the session
// keeps whatever data it was given.
func NewModel(ctx context.Context, session *sim.Session, loader Loader, refresh time.Duration) Model {
	m := Model{
		session:       session,
		loader:        loader,
		refresh:       refresh,
		ctx:           ctx,
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.resize(width, height)
	return m
}

func (m *Model) resize(w, h int) {
	if w < 10 {
		w = 10
	}
	if h < 4 {
		h = 4
	}
	m.width, m.height = w, h
	m.canvas = NewCanvas(w, h)
	lw, lh := m.session.Size()
	m.surface = NewSurface(m.canvas, lw, lh)
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) load(initial bool) tea.Cmd {
	if m.loader == nil {
		return nil
	}
	return func() tea.Msg {
		if initial {
			return updateMsg(m.loader.Initial(m.ctx))
		}
		return updateMsg(m.loader.Refresh(m.ctx))
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.load(true))
}

// Update handles input, frame ticks and survey loads.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "t":
			NextTheme()
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width-statsWidth-6, msg.Height-4)
	case updateMsg:
		m.session.ApplyUpdate(survey.Update(msg))
		if m.refresh <= 0 {
			return m, nil
		}
		return m, tea.Tick(m.refresh, func(time.Time) tea.Msg { return refreshMsg{} })
	case refreshMsg:
		return m, m.load(false)
	case TickMsg:
		now := time.Time(msg)
		dt := frameInterval
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now
		m.step(dt)
		return m, tick()
	}
	return m, nil
}

type refreshMsg struct{}

// step advances the session by dt, capped so a stalled terminal does not
// fling bubbles across their region in one frame.
func (m *Model) step(dt time.Duration) {
	if dt > maxFrame {
		dt = maxFrame
	}
	m.session.Step(dt)
	m.energyHistory = append(m.energyHistory, m.session.Snapshot().Energy)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// View renders the kiosk frame and the stats panel.
func (m Model) View() string {
	m.session.Draw(m.surface)
	canvasView := canvasStyle.Render(m.canvas.Render())

	snap := m.session.Snapshot()
	phases := m.session.Phases()

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(snap.Phase.Label)) + "\n")
	s.WriteString(statusStyle().Render(snap.Status) + "\n\n")

	progress := 0.0
	if snap.Phase.Duration > 0 {
		progress = float64(snap.Elapsed) / float64(snap.Phase.Duration)
	}
	s.WriteString(ProgressBar(progress, 30) + "\n\n")

	s.WriteString(labelStyle.Render("Phase") + valueStyle.Render(fmt.Sprintf("%d/%d  %s", snap.Index+1, len(phases), snap.Phase.Key)) + "\n")
	s.WriteString(labelStyle.Render("Teach") + valueStyle.Render(fmt.Sprintf("%d", snap.Teach)) + "\n")
	s.WriteString(labelStyle.Render("Learn") + valueStyle.Render(fmt.Sprintf("%d", snap.Learn)) + "\n")
	s.WriteString(labelStyle.Render("Morph") + valueStyle.Render(fmt.Sprintf("%.2f", snap.MorphT)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f", snap.Energy)) + "\n")
	s.WriteString(labelStyle.Render("Peak") + valueStyle.Render(fmt.Sprintf("%.3f", snap.PeakEnergy)) + "\n")
	s.WriteString(labelStyle.Render("Overlap") + valueStyle.Render(fmt.Sprintf("%.1f%%", snap.Overlap*100)) + "\n")
	s.WriteString(labelStyle.Render("Clock") + valueStyle.Render(snap.Clock.Truncate(100*time.Millisecond).String()) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nQ:Quit  T:Theme"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the terminal kiosk and blocks until the user quits.
func Run(ctx context.Context, session *sim.Session, loader Loader, refresh time.Duration) error {
	p := tea.NewProgram(NewModel(ctx, session, loader, refresh), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
