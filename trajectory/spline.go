package trajectory

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CatmullRom is an open centripetal Catmull-Rom curve through its control points.
// The curve is parametrised over [0, 1] with equal parameter length per segment.
type CatmullRom struct {
	points []r3.Vec
}

// NewCatmullRom creates curve through points. At least two points are required.
func NewCatmullRom(points []r3.Vec) *CatmullRom {
	return &CatmullRom{points: points}
}

// Points samples the curve at divisions+1 evenly spaced parameters, endpoints included.
func (c *CatmullRom) Points(divisions int) []r3.Vec {
	out := make([]r3.Vec, divisions+1)
	for d := 0; d <= divisions; d++ {
		out[d] = c.Point(float64(d) / float64(divisions))
	}
	return out
}

// Point returns the curve position at t in [0, 1].
func (c *CatmullRom) Point(t float64) r3.Vec {
	n := len(c.points)
	p := float64(n-1) * t
	seg := int(math.Floor(p))
	weight := p - float64(seg)
	if seg >= n-1 {
		seg, weight = n-2, 1
	}
	if seg < 0 {
		seg, weight = 0, 0
	}

	p1, p2 := c.points[seg], c.points[seg+1]
	var p0, p3 r3.Vec
	if seg > 0 {
		p0 = c.points[seg-1]
	} else {
		p0 = r3.Sub(r3.Scale(2, p1), p2)
	}
	if seg+2 < n {
		p3 = c.points[seg+2]
	} else {
		p3 = r3.Sub(r3.Scale(2, p2), p1)
	}

	dt0 := math.Pow(r3.Norm2(r3.Sub(p0, p1)), 0.25)
	dt1 := math.Pow(r3.Norm2(r3.Sub(p1, p2)), 0.25)
	dt2 := math.Pow(r3.Norm2(r3.Sub(p2, p3)), 0.25)
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return r3.Vec{
		X: cubic(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, weight),
		Y: cubic(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, weight),
		Z: cubic(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, weight),
	}
}

// cubic evaluates the non-uniform Catmull-Rom segment between x1 and x2.
func cubic(x0, x1, x2, x3, dt0, dt1, dt2, t float64) float64 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2
	return c0 + t*(c1+t*(c2+t*c3))
}
