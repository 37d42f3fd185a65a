package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
	// Fov is the vertical field of view in degrees.
	Fov    float64
	Aspect float64
	Near   float64
	Far    float64
}

// NewCamera returns the default event display camera for the given aspect ratio.
func NewCamera(aspect float64) Camera {
	return Camera{
		Position: r3.Vec{X: 400, Y: 150, Z: 700},
		Up:       r3.Vec{Y: 1},
		Fov:      45,
		Aspect:   aspect,
		Near:     0.01,
		Far:      5000,
	}
}

// basis returns the forward, right and up unit vectors of the camera.
func (c Camera) basis() (forward, right, up r3.Vec) {
	forward = r3.Unit(r3.Sub(c.Target, c.Position))
	right = r3.Unit(r3.Cross(forward, c.Up))
	up = r3.Cross(right, forward)
	return forward, right, up
}

func (c Camera) tanHalfFov() float64 {
	return math.Tan(c.Fov * math.Pi / 360)
}

// Project maps p to normalized device coordinates, both in [-1, 1] when p is in
// view and y pointing up. ok is false for points outside the near/far range.
func (c Camera) Project(p r3.Vec) (x, y float64, ok bool) {
	forward, right, up := c.basis()
	d := r3.Sub(p, c.Position)
	depth := r3.Dot(d, forward)
	if depth < c.Near || depth > c.Far {
		return 0, 0, false
	}
	t := c.tanHalfFov()
	x = r3.Dot(d, right) / (depth * t * c.Aspect)
	y = r3.Dot(d, up) / (depth * t)
	return x, y, true
}

// Ray is a half line from Origin along the unit vector Direction.
type Ray struct {
	Origin    r3.Vec
	Direction r3.Vec
}

// Ray casts a ray from the camera through normalized device coordinates (x, y).
func (c Camera) Ray(x, y float64) Ray {
	forward, right, up := c.basis()
	t := c.tanHalfFov()
	dir := r3.Add(forward, r3.Add(r3.Scale(x*t*c.Aspect, right), r3.Scale(y*t, up)))
	return Ray{Origin: c.Position, Direction: r3.Unit(dir)}
}

// Orbit rotates the camera around the vertical axis through Target by angle radians.
func (c *Camera) Orbit(angle float64) {
	offset := r3.Sub(c.Position, c.Target)
	sin, cos := math.Sincos(angle)
	offset = r3.Vec{
		X: offset.X*cos + offset.Z*sin,
		Y: offset.Y,
		Z: -offset.X*sin + offset.Z*cos,
	}
	c.Position = r3.Add(c.Target, offset)
}

// Zoom moves the camera towards (factor < 1) or away from (factor > 1) Target.
// The distance stays inside the near/far range.
func (c *Camera) Zoom(factor float64) {
	offset := r3.Sub(c.Position, c.Target)
	dist := r3.Norm(offset) * factor
	if dist < 10*c.Near || dist > c.Far/2 {
		return
	}
	c.Position = r3.Add(c.Target, r3.Scale(factor, offset))
}

// ClipSegment clips segment ab to the part between the near and far planes.
// ok is false when no part of the segment is in that range.
func (c Camera) ClipSegment(a, b r3.Vec) (r3.Vec, r3.Vec, bool) {
	forward, _, _ := c.basis()
	da := r3.Dot(r3.Sub(a, c.Position), forward)
	db := r3.Dot(r3.Sub(b, c.Position), forward)
	for _, plane := range []struct {
		depth float64
		sign  float64
	}{{c.Near, 1}, {c.Far, -1}} {
		ina := (da-plane.depth)*plane.sign >= 0
		inb := (db-plane.depth)*plane.sign >= 0
		switch {
		case !ina && !inb:
			return a, b, false
		case !ina:
			a = r3.Add(a, r3.Scale((plane.depth-da)/(db-da), r3.Sub(b, a)))
			da = plane.depth
		case !inb:
			b = r3.Add(a, r3.Scale((plane.depth-da)/(db-da), r3.Sub(b, a)))
			db = plane.depth
		}
	}
	return a, b, true
}
