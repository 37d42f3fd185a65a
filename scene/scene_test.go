package scene

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Dragunija/PPE-Data-Visualization/model"
)

var payloadParticles = []model.Particle{
	{Barcode: 1, PID: 22, Momentum: [4]float64{1, 0, 0, 1}, StartVertex: -1},
	{Barcode: 2, PID: 11, Charge: -1, Momentum: [4]float64{0, 0, 5, 5}, StartVertex: -1},
	{Barcode: 3, PID: -14, Momentum: [4]float64{0, 3, 4, 5}, StartVertex: -2},
	{Barcode: 4, PID: 211, Charge: 1, Momentum: [4]float64{2, 2, 0, 3}, StartVertex: -2},
}

var payloadVertices = []model.Vertex{
	{Barcode: -1},
	{Barcode: -2, Position: [4]float64{1, 1, 1, 0}},
}

func TestNewSceneHasDecoration(t *testing.T) {
	s := New()
	assert.Empty(t, s.Particles())
	require.NotEmpty(t, s.Lines())
	kinds := map[Kind]int{}
	for _, l := range s.Lines() {
		assert.True(t, l.Permanent())
		kinds[l.Kind]++
	}
	assert.Equal(t, 1, kinds[KindBeam])
	assert.Equal(t, 3+detectorStruts, kinds[KindDetector])
}

func TestClearKeepsDecoration(t *testing.T) {
	s := New()
	decoration := append([]*Line{}, s.Lines()...)

	require.NoError(t, NewBuilder().Build(s, Momentum, payloadParticles, payloadVertices))
	require.Len(t, s.Particles(), len(payloadParticles))

	s.Clear()
	assert.Empty(t, s.Particles())
	assert.Equal(t, decoration, s.Lines())

	s.Clear()
	assert.Equal(t, decoration, s.Lines())
}

func TestBuildMomentumOneLinePerParticle(t *testing.T) {
	lines, err := NewBuilder().Lines(Momentum, payloadParticles, payloadVertices)
	require.NoError(t, err)
	require.Len(t, lines, len(payloadParticles))
	for i, l := range lines {
		assert.Equal(t, payloadParticles[i].PID, l.Info.PID)
		assert.Equal(t, payloadParticles[i].Barcode, l.Info.Barcode)
		assert.Equal(t, payloadParticles[i].Momentum, l.Info.Momentum)
		assert.Equal(t, KindParticle, l.Kind)
	}
}

func TestBuildMomentumPhoton(t *testing.T) {
	b := NewBuilder()
	b.Scale = 2
	lines, err := b.Lines(Momentum, []model.Particle{{PID: 22, Momentum: [4]float64{1, 0, 0, 1}}}, nil)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, model.Photon, lines[0].Info.Category)
	assert.Equal(t, []r3.Vec{{}, {X: 2}}, lines[0].Points)
}

func TestBuildSpacetimeLepton(t *testing.T) {
	particles := []model.Particle{{PID: 11, Charge: -1, Momentum: [4]float64{0, 0, 5, 5}, StartVertex: 0}}
	vertices := []model.Vertex{{Barcode: 0, Position: [4]float64{0, 0, 0, 0}}}
	lines, err := NewBuilder().Lines(Spacetime, particles, vertices)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	l := lines[0]
	assert.Equal(t, model.Lepton, l.Info.Category)
	assert.Equal(t, r3.Vec{}, l.Points[0])
	require.Greater(t, len(l.Points), 2)

	first, mid, last := l.Points[0], l.Points[len(l.Points)/2], l.Points[len(l.Points)-1]
	offChord := r3.Norm(r3.Cross(r3.Sub(mid, first), r3.Unit(r3.Sub(last, first))))
	assert.Greater(t, offChord, 0.1)
}

func TestBuildSpacetimeStartsAtVertex(t *testing.T) {
	lines, err := NewBuilder().Lines(Spacetime, payloadParticles, payloadVertices)
	require.NoError(t, err)
	require.Len(t, lines, len(payloadParticles))
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, lines[2].Points[0])
}

func TestBuildSpacetimeMissingVertex(t *testing.T) {
	particles := append([]model.Particle{}, payloadParticles...)
	particles = append(particles, model.Particle{Barcode: 9, PID: 13, Momentum: [4]float64{1, 0, 0, 2}, StartVertex: -42})

	s := New()
	err := NewBuilder().Build(s, Spacetime, particles, payloadVertices)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingVertex)

	var particleErr *ParticleError
	require.ErrorAs(t, err, &particleErr)
	assert.Equal(t, 9, particleErr.Barcode)
	assert.Len(t, s.Particles(), len(payloadParticles))
}

func TestBuildMomentumIgnoresVertices(t *testing.T) {
	particles := []model.Particle{{Barcode: 9, PID: 13, Momentum: [4]float64{1, 0, 0, 2}, StartVertex: -42}}
	lines, err := NewBuilder().Lines(Momentum, particles, nil)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestParseViewMode(t *testing.T) {
	mode, err := ParseViewMode("spacetime")
	require.NoError(t, err)
	assert.Equal(t, Spacetime, mode)
	mode, err = ParseViewMode("1")
	require.NoError(t, err)
	assert.Equal(t, Momentum, mode)
	_, err = ParseViewMode("sideways")
	assert.Error(t, err)
	assert.Equal(t, "momentum", Momentum.String())
}

func TestInfoString(t *testing.T) {
	info := Info{Category: model.Lepton, PID: -13, Momentum: [4]float64{1, 2.5, -3, 4}}
	assert.Equal(t, "Type: lepton\nID: -13\nMomentum: 1, 2.5, -3, 4", info.String())
}

func TestCameraProjectAndRay(t *testing.T) {
	c := NewCamera(2)
	x, y, ok := c.Project(r3.Vec{})
	require.True(t, ok)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	_, _, ok = c.Project(r3.Scale(2, c.Position))
	assert.False(t, ok, "behind the camera")

	p := r3.Vec{X: 30, Y: -20, Z: 10}
	x, y, ok = c.Project(p)
	require.True(t, ok)
	ray := c.Ray(x, y)
	dist, _ := ray.segmentDistance(p, p)
	assert.InDelta(t, 0, dist, 1e-6)
}

func TestCameraOrbitKeepsDistance(t *testing.T) {
	c := NewCamera(1)
	before := r3.Norm(c.Position)
	c.Orbit(math.Pi / 3)
	assert.InDelta(t, before, r3.Norm(c.Position), 1e-9)
	assert.InDelta(t, 150, c.Position.Y, 1e-9)

	c.Zoom(0.5)
	assert.InDelta(t, before/2, r3.Norm(c.Position), 1e-9)
	c.Zoom(1e6)
	assert.InDelta(t, before/2, r3.Norm(c.Position), 1e-9)
}

func TestPickNearestLine(t *testing.T) {
	s := New()
	near := &Line{Kind: KindParticle, Info: Info{PID: 1}, Points: []r3.Vec{{X: -50, Z: 100}, {X: 50, Z: 100}}}
	far := &Line{Kind: KindParticle, Info: Info{PID: 2}, Points: []r3.Vec{{X: -50, Z: -100}, {X: 50, Z: -100}}}
	s.Add(far, near)

	ray := Ray{Origin: r3.Vec{Z: 1000}, Direction: r3.Vec{Z: -1}}
	picked, ok := Pick(s, ray, 1)
	require.True(t, ok)
	assert.Same(t, near, picked)

	hits := Intersect(s, ray, 1)
	require.Len(t, hits, 2)
	assert.InDelta(t, 900, hits[0].Distance, 1e-9)
	assert.InDelta(t, 1100, hits[1].Distance, 1e-9)
}

func TestIntersectOrdersByDistance(t *testing.T) {
	s := New()
	crossing := func(pid int, z float64) *Line {
		return &Line{Kind: KindParticle, Info: Info{PID: pid}, Points: []r3.Vec{{X: -50, Z: z}, {X: 50, Z: z}}}
	}
	s.Add(crossing(1, 100), crossing(2, -100), crossing(3, 300), crossing(4, 0), crossing(5, 100))

	hits := Intersect(s, Ray{Origin: r3.Vec{Z: 1000}, Direction: r3.Vec{Z: -1}}, 1)
	require.Len(t, hits, 5)
	pids := make([]int, len(hits))
	for i, hit := range hits {
		pids[i] = hit.Line.Info.PID
	}
	assert.Equal(t, []int{3, 1, 5, 4, 2}, pids)
}

func TestPickMisses(t *testing.T) {
	s := New()
	s.Add(&Line{Kind: KindParticle, Points: []r3.Vec{{X: 10, Y: 10}, {X: 20, Y: 10}}})

	_, ok := Pick(s, Ray{Origin: r3.Vec{Z: 1000}, Direction: r3.Vec{Z: -1}}, 1)
	assert.False(t, ok, "beam line is decoration and the particle line is 10 away")

	_, ok = Pick(s, Ray{Origin: r3.Vec{X: 15, Y: 10, Z: -1000}, Direction: r3.Vec{Z: -1}}, 1)
	assert.False(t, ok, "line is behind the ray origin")
}

func TestSegmentDistance(t *testing.T) {
	ray := Ray{Origin: r3.Vec{}, Direction: r3.Vec{X: 1}}
	testCases := []struct {
		a, b  r3.Vec
		dist  float64
		along float64
	}{
		{r3.Vec{X: 5, Y: -1, Z: 2}, r3.Vec{X: 5, Y: 1, Z: 2}, 2, 5},
		{r3.Vec{X: 5, Y: 3}, r3.Vec{X: 5, Y: 4}, 3, 5},
		{r3.Vec{X: 2, Y: 1}, r3.Vec{X: 8, Y: 1}, 1, 2},
		{r3.Vec{X: -4, Y: 3}, r3.Vec{X: -2, Y: 3}, math.Sqrt(13), 0},
	}
	for _, tc := range testCases {
		dist, along := ray.segmentDistance(tc.a, tc.b)
		assert.InDelta(t, tc.dist, dist, 1e-9)
		assert.InDelta(t, tc.along, along, 1e-9)
	}
}

func TestExportVTK(t *testing.T) {
	s := New()
	require.NoError(t, NewBuilder().Build(s, Momentum, payloadParticles, payloadVertices))

	var out bytes.Buffer
	require.NoError(t, ExportVTK(&out, s))
	data := out.Bytes()
	assert.True(t, bytes.HasPrefix(data, []byte("# vtk DataFile Version 3.0\n")))
	assert.Contains(t, string(data), "POINTS 8 float\n")
	assert.Contains(t, string(data), "\nCELLS 4 12\n")
	assert.Contains(t, string(data), "\nCELL_TYPES 4\n")
	assert.Contains(t, string(data), "SCALARS pid int\n")
}

func TestCameraClipSegment(t *testing.T) {
	cam := NewCamera(1)

	a, b, ok := cam.ClipSegment(r3.Vec{Z: -BeamHalfLength}, r3.Vec{Z: BeamHalfLength})
	require.True(t, ok)
	forward, _, _ := cam.basis()
	for _, p := range []r3.Vec{a, b} {
		depth := r3.Dot(r3.Sub(p, cam.Position), forward)
		assert.GreaterOrEqual(t, depth, cam.Near-1e-6)
		assert.LessOrEqual(t, depth, cam.Far+1e-6)
	}

	_, _, ok = cam.ClipSegment(r3.Scale(2, cam.Position), r3.Scale(3, cam.Position))
	assert.False(t, ok)

	a, b, ok = cam.ClipSegment(r3.Vec{}, r3.Vec{X: 10})
	require.True(t, ok)
	assert.Equal(t, r3.Vec{}, a)
	assert.Equal(t, r3.Vec{X: 10}, b)
}
