package trajectory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertVecInDelta(t *testing.T, expected, actual r3.Vec, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "x")
	assert.InDelta(t, expected.Y, actual.Y, delta, "y")
	assert.InDelta(t, expected.Z, actual.Z, delta, "z")
}

// curvature is the distance of the middle step from the chord joining the ends.
func curvature(points []r3.Vec) float64 {
	first, last := points[0], points[len(points)-1]
	mid := points[len(points)/2]
	chord := r3.Sub(last, first)
	return r3.Norm(r3.Cross(r3.Sub(mid, first), chord)) / r3.Norm(chord)
}

func TestMass(t *testing.T) {
	assert.InDelta(t, 4.0, Mass([4]float64{3, 0, 0, 5}), 1e-12)
	assert.Equal(t, 0.0, Mass([4]float64{0, 0, 5, 5}))
	assert.Equal(t, 0.0, Mass([4]float64{3, 4, 0, 1}))
}

func TestStepNeutralIsStraight(t *testing.T) {
	in := NewIntegrator()
	start := r3.Vec{X: 1, Y: 2, Z: 3}
	steps, err := in.Step(start, [4]float64{1, 0, 0, 2}, 0)
	require.NoError(t, err)
	require.Len(t, steps, DefaultSteps+1)

	// v = p c / E = 1.5e10 mm/s along x, 7.5 mm per step
	assert.Equal(t, start, steps[0])
	for i, p := range steps {
		assertVecInDelta(t, r3.Vec{X: 1 + 7.5*float64(i), Y: 2, Z: 3}, p, 1e-9)
	}
}

func TestStepChargedBends(t *testing.T) {
	in := NewIntegrator()
	steps, err := in.Step(r3.Vec{}, [4]float64{0, 0, 5, 5}, -1)
	require.NoError(t, err)
	require.Len(t, steps, DefaultSteps+1)

	assert.Equal(t, r3.Vec{}, steps[0])
	assertVecInDelta(t, r3.Vec{Z: 15}, steps[1], 1e-9)
	assert.Greater(t, curvature(steps), 0.1)
	assert.Greater(t, steps[len(steps)-1].X, 0.0, "electron bends towards +x in a +y field")
}

func TestStepOppositeChargesBendOppositeWays(t *testing.T) {
	in := NewIntegrator()
	minus, err := in.Step(r3.Vec{}, [4]float64{0, 0, 5, 5}, -1)
	require.NoError(t, err)
	plus, err := in.Step(r3.Vec{}, [4]float64{0, 0, 5, 5}, 1)
	require.NoError(t, err)

	last := len(minus) - 1
	assert.InDelta(t, -minus[last].X, plus[last].X, 1e-9)
	assert.InDelta(t, minus[last].Z, plus[last].Z, 1e-9)
}

func TestStepParallelToFieldIsStraight(t *testing.T) {
	in := NewIntegrator()
	in.Field = r3.Vec{Z: 4}
	steps, err := in.Step(r3.Vec{}, [4]float64{0, 0, 5, 5}, -1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, curvature(steps), 1e-9)
}

func TestStepNoEnergy(t *testing.T) {
	in := NewIntegrator()
	_, err := in.Step(r3.Vec{}, [4]float64{1, 0, 0, 0}, 1)
	assert.ErrorIs(t, err, ErrNoEnergy)
	_, err = in.Step(r3.Vec{}, [4]float64{1, 0, 0, math.NaN()}, 1)
	assert.ErrorIs(t, err, ErrNoEnergy)
}

func TestPathSamples(t *testing.T) {
	in := NewIntegrator()
	path, err := in.Path(r3.Vec{}, [4]float64{0, 0, 5, 5}, -1)
	require.NoError(t, err)
	require.Len(t, path.Points, DefaultSamples+1)
	assert.Equal(t, path.Steps[0], path.Points[0])
	assertVecInDelta(t, path.Steps[len(path.Steps)-1], path.Points[len(path.Points)-1], 1e-9)
	assert.Equal(t, 0.0, path.Mass)
}

func TestPathTwoPointsIsSegment(t *testing.T) {
	in := NewIntegrator()
	in.Steps = 1
	path, err := in.Path(r3.Vec{X: 1}, [4]float64{3, 0, 0, 5}, 0)
	require.NoError(t, err)
	require.Len(t, path.Points, 2)
	assert.Equal(t, r3.Vec{X: 1}, path.Points[0])
	assertVecInDelta(t, r3.Vec{X: 10}, path.Points[1], 1e-9)
	assert.InDelta(t, 4.0, path.Mass, 1e-12)
}

func TestCatmullRomPassesThroughControlPoints(t *testing.T) {
	points := []r3.Vec{{X: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}, {X: 3, Y: -2}, {X: 4}}
	curve := NewCatmullRom(points)
	for i, p := range points {
		assertVecInDelta(t, p, curve.Point(float64(i)/float64(len(points)-1)), 1e-9)
	}
}

func TestCatmullRomCollinearStaysOnLine(t *testing.T) {
	points := []r3.Vec{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	samples := NewCatmullRom(points).Points(30)
	require.Len(t, samples, 31)
	for _, p := range samples {
		assert.InDelta(t, 0.0, p.Y, 1e-9)
		assert.InDelta(t, 0.0, p.Z, 1e-9)
		assert.True(t, p.X >= -1e-9 && p.X <= 3+1e-9)
	}
}

func TestCatmullRomCoincidentPoints(t *testing.T) {
	points := []r3.Vec{{X: 1}, {X: 1}, {X: 1}}
	for _, p := range NewCatmullRom(points).Points(10) {
		assertVecInDelta(t, r3.Vec{X: 1}, p, 1e-12)
	}
}
