package scene

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Intersection is a particle line hit by a ray.
type Intersection struct {
	Line *Line
	// Distance along the ray to the closest approach.
	Distance float64
}

// Intersect returns the particle lines passing within threshold of ray,
// nearest first. Decoration is never intersected.
func Intersect(s *Scene, ray Ray, threshold float64) []Intersection {
	hits := []Intersection{}
	for _, l := range s.Particles() {
		best := math.Inf(1)
		for i := 1; i < len(l.Points); i++ {
			dist, along := ray.segmentDistance(l.Points[i-1], l.Points[i])
			if dist <= threshold && along < best {
				best = along
			}
		}
		if !math.IsInf(best, 1) {
			hits = append(hits, Intersection{Line: l, Distance: best})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Pick returns the nearest particle line within threshold of ray.
func Pick(s *Scene, ray Ray, threshold float64) (*Line, bool) {
	hits := Intersect(s, ray, threshold)
	if len(hits) == 0 {
		return nil, false
	}
	return hits[0].Line, true
}

// segmentDistance returns the distance between the ray and segment ab at their
// closest approach, and the distance along the ray to that point.
func (r Ray) segmentDistance(a, b r3.Vec) (dist, along float64) {
	u := r3.Sub(b, a)
	w := r3.Sub(r.Origin, a)
	d := r.Direction

	uu := r3.Dot(u, u)
	var s, t float64
	if uu < 1e-12 {
		s = math.Max(0, -r3.Dot(d, w))
	} else {
		du := r3.Dot(d, u)
		dw := r3.Dot(d, w)
		uw := r3.Dot(u, w)
		den := uu - du*du
		if den > 1e-12*uu {
			s = (du*uw - uu*dw) / den
			t = (uw - du*dw) / den
		} else {
			t = 0
			s = -dw
		}
		if s < 0 {
			s = 0
			t = uw / uu
		}
		if t < 0 || t > 1 {
			t = clamp(t, 0, 1)
			s = math.Max(0, r3.Dot(d, r3.Sub(r3.Add(a, r3.Scale(t, u)), r.Origin)))
			t = clamp(r3.Dot(u, r3.Sub(r3.Add(r.Origin, r3.Scale(s, d)), a))/uu, 0, 1)
		}
	}
	onRay := r3.Add(r.Origin, r3.Scale(s, d))
	onSegment := r3.Add(a, r3.Scale(t, u))
	return r3.Norm(r3.Sub(onRay, onSegment)), s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
