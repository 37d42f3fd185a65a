package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Dragunija/PPE-Data-Visualization/model"
	"github.com/Dragunija/PPE-Data-Visualization/scene"
)

type brush int

const (
	blank brush = iota
	beamBrush
	detectorBrush
	photonBrush
	leptonBrush
	neutrinoBrush
	hadronBrush
)

func style(c model.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}

var brushes = map[brush]struct {
	glyph rune
	style lipgloss.Style
}{
	blank:         {' ', lipgloss.NewStyle()},
	beamBrush:     {'·', style(model.BeamColor)},
	detectorBrush: {'·', style(model.DetectorColor)},
	photonBrush:   {'•', style(model.Photon.Color())},
	leptonBrush:   {'•', style(model.Lepton.Color())},
	neutrinoBrush: {'•', style(model.Neutrino.Color())},
	hadronBrush:   {'•', style(model.Hadron.Color())},
}

func brushOf(l *scene.Line) brush {
	switch l.Kind {
	case scene.KindBeam:
		return beamBrush
	case scene.KindDetector:
		return detectorBrush
	}
	switch l.Info.Category {
	case model.Photon:
		return photonBrush
	case model.Lepton:
		return leptonBrush
	case model.Neutrino:
		return neutrinoBrush
	default:
		return hadronBrush
	}
}

// Canvas rasterises a scene onto a grid of terminal cells. It implements
// viewer.Renderer.
type Canvas struct {
	width  int
	height int
	cells  [][]brush
	frame  string
}

// NewCanvas creates canvas of width columns and height rows.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize changes the canvas size. The content is lost until the next Draw.
func (c *Canvas) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width, c.height = width, height
	c.cells = make([][]brush, height)
	for i := range c.cells {
		c.cells[i] = make([]brush, width)
	}
	c.frame = ""
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Draw renders every line of s seen through cam. Later lines cover earlier ones.
func (c *Canvas) Draw(s *scene.Scene, cam scene.Camera) {
	for _, row := range c.cells {
		for i := range row {
			row[i] = blank
		}
	}
	for _, l := range s.Lines() {
		b := brushOf(l)
		for i := 1; i < len(l.Points); i++ {
			c.segment(cam, l.Points[i-1], l.Points[i], b)
		}
	}
	c.frame = c.render()
}

func (c *Canvas) segment(cam scene.Camera, a, b r3.Vec, br brush) {
	// Clip slightly inside the view range so clipped endpoints still project.
	inner := cam
	inner.Near, inner.Far = 2*cam.Near, 0.999*cam.Far
	a, b, ok := inner.ClipSegment(a, b)
	if !ok {
		return
	}
	ax, ay, aok := cam.Project(a)
	bx, by, bok := cam.Project(b)
	if !aok || !bok {
		return
	}
	ax, ay, bx, by, ok = clipRect(ax, ay, bx, by)
	if !ok {
		return
	}
	x0, y0 := c.cell(ax, ay)
	x1, y1 := c.cell(bx, by)
	c.line(x0, y0, x1, y1, br)
}

// cell maps normalized device coordinates to a column and row.
func (c *Canvas) cell(x, y float64) (int, int) {
	col := int(math.Floor((x + 1) / 2 * float64(c.width)))
	row := int(math.Floor((1 - y) / 2 * float64(c.height)))
	return col, row
}

func (c *Canvas) set(x, y int, br brush) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = br
}

// line draws with Bresenham's algorithm.
func (c *Canvas) line(x0, y0, x1, y1 int, br brush) {
	dx := intAbs(x1 - x0)
	dy := intAbs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x0, y0, br)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// clipRect clips a segment to the [-1, 1] square with the Liang-Barsky algorithm.
func clipRect(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	for _, edge := range [4][2]float64{
		{-dx, x0 + 1},
		{dx, 1 - x0},
		{-dy, y0 + 1},
		{dy, 1 - y0},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func (c *Canvas) render() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x] == row[start] {
				continue
			}
			br := brushes[row[start]]
			run := strings.Repeat(string(br.glyph), x-start)
			if row[start] == blank {
				b.WriteString(run)
			} else {
				b.WriteString(br.style.Render(run))
			}
			start = x
		}
	}
	return b.String()
}

// String returns the last drawn frame.
func (c *Canvas) String() string {
	return c.frame
}
