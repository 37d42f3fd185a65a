// Package tui is a terminal front-end for the event display. It drives a
// viewer.App from a Bubble Tea program: a tick per frame, keys for the event
// and view-mode transitions and mouse picking.
package tui

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	conf "github.com/Dragunija/PPE-Data-Visualization/config"
	"github.com/Dragunija/PPE-Data-Visualization/viewer"
)

var log = conf.NamedLogger("tui")

const (
	headerHeight = 1
	infoWidth    = 36
	orbitStep    = math.Pi / 36
	zoomStep     = 1.1
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	infoStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9999ff")).
			Padding(0, 1).
			Width(infoWidth - 2)
)

type tickMsg time.Time

type loadedMsg viewer.Response

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the Bubble Tea model of the event display.
type Model struct {
	ctx      context.Context
	app      *viewer.App
	canvas   *Canvas
	keys     keyMap
	help     help.Model
	initial  viewer.Request
	interval time.Duration

	width  int
	height int
}

// New creates model showing app, drawn on canvas, starting with the initial
// request. canvas must be the renderer of app.
func New(ctx context.Context, app *viewer.App, canvas *Canvas, initial viewer.Request, frameRate int) Model {
	if frameRate < 1 {
		frameRate = 1
	}
	return Model{
		ctx:      ctx,
		app:      app,
		canvas:   canvas,
		keys:     defaultKeyMap(),
		help:     help.New(),
		initial:  initial,
		interval: time.Second / time.Duration(frameRate),
	}
}

// Init ...
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.initial), tick(m.interval))
}

// fetch runs the request outside the event loop; the response comes back as a
// message so the scene only changes inside Update.
func (m Model) fetch(req viewer.Request) tea.Cmd {
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		return loadedMsg(app.Fetch(ctx, req))
	}
}

// Update ...
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	case tickMsg:
		m.app.Frame()
		return m, tick(m.interval)
	case loadedMsg:
		if _, err := m.app.Loaded(viewer.Response(msg)); err != nil {
			log.Debugf("event %d: %s", msg.Request.State.Index, err.Error())
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var action viewer.Action
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.OrbitLeft):
		m.app.Orbit(-orbitStep)
		return m, nil
	case key.Matches(msg, m.keys.OrbitRight):
		m.app.Orbit(orbitStep)
		return m, nil
	case key.Matches(msg, m.keys.ZoomIn):
		m.app.Zoom(1 / zoomStep)
		return m, nil
	case key.Matches(msg, m.keys.ZoomOut):
		m.app.Zoom(zoomStep)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		action = viewer.NextEvent
	case key.Matches(msg, m.keys.Previous):
		action = viewer.PreviousEvent
	case key.Matches(msg, m.keys.Momentum):
		action = viewer.MomentumView
	case key.Matches(msg, m.keys.Spacetime):
		action = viewer.SpacetimeView
	case key.Matches(msg, m.keys.Retry):
		action = viewer.Retry
	default:
		return m, nil
	}
	req, ok := m.app.Key(action)
	if !ok {
		return m, nil
	}
	return m, m.fetch(req)
}

func (m Model) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y-headerHeight
	w, h := m.canvas.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	m.app.PointerMove(float64(x)+0.5, float64(y)+0.5, float64(w), float64(h))
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.app.Click()
	}
}

// layout sizes the canvas to the space left by the header, info panel and help.
func (m Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	w := m.width - infoWidth
	h := m.height - headerHeight - lipgloss.Height(m.help.View(m.keys))
	m.canvas.Resize(w, h)
	w, h = m.canvas.Size()
	// Terminal cells are about twice as tall as they are wide.
	m.app.Resize(float64(w), float64(2*h))
}

// View ...
func (m Model) View() string {
	header := titleStyle.Render("hepvis") + "  " + statusStyle.Render(m.app.Status())
	info := m.app.Info()
	if info == "" {
		info = statusStyle.Render("click a track to inspect it")
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.String(), infoStyle.Render(info))
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.help.View(m.keys))
}

// Run shows the display until the user quits.
func Run(ctx context.Context, app *viewer.App, canvas *Canvas, initial viewer.Request, frameRate int) error {
	program := tea.NewProgram(New(ctx, app, canvas, initial, frameRate), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := program.Run()
	return err
}
