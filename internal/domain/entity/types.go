package entity

import "math"

// EntityID is a unique identifier for an entity
type EntityID uint32

// Vec2 is a 2D vector in world units. Y points up.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// LenSq returns the squared length
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the length
func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalized returns the unit vector, or the zero vector for a zero input
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Distance returns the distance between two points
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Vec3 is a 3D position. Only used by the save format, which keeps the
// engine's depth coordinate.
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// XY drops the depth coordinate
func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// ToVec3 lifts a 2D point with zero depth
func (v Vec2) ToVec3() Vec3 {
	return Vec3{X: v.X, Y: v.Y}
}

// Direction is one of the four attack/aim directions
type Direction int

const (
	DirRight Direction = iota
	DirUp
	DirLeft
	DirDown
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirLeft:
		return "Left"
	case DirDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// Vector returns the unit vector for the direction
func (d Direction) Vector() Vec2 {
	switch d {
	case DirRight:
		return Vec2{X: 1}
	case DirUp:
		return Vec2{Y: 1}
	case DirLeft:
		return Vec2{X: -1}
	case DirDown:
		return Vec2{Y: -1}
	default:
		return Vec2{}
	}
}

// Rect is an axis-aligned box given by its center and full size
type Rect struct {
	Center Vec2
	Size   Vec2
}

// Min returns the bottom-left corner
func (r Rect) Min() Vec2 {
	return Vec2{X: r.Center.X - r.Size.X/2, Y: r.Center.Y - r.Size.Y/2}
}

// Max returns the top-right corner
func (r Rect) Max() Vec2 {
	return Vec2{X: r.Center.X + r.Size.X/2, Y: r.Center.Y + r.Size.Y/2}
}

// Overlaps reports whether two rects intersect. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	a0, a1 := r.Min(), r.Max()
	b0, b1 := o.Min(), o.Max()
	return a0.X < b1.X && a1.X > b0.X && a0.Y < b1.Y && a1.Y > b0.Y
}

// Sign returns -1, 0 or 1
func Sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// IntersectsCircle reports whether the circle touches the rect
func (r Rect) IntersectsCircle(center Vec2, radius float64) bool {
	lo, hi := r.Min(), r.Max()
	cx := math.Max(lo.X, math.Min(center.X, hi.X))
	cy := math.Max(lo.Y, math.Min(center.Y, hi.Y))
	dx, dy := center.X-cx, center.Y-cy
	return dx*dx+dy*dy <= radius*radius
}

// IntersectsSegment reports whether the segment from origin along dir for
// distance crosses the rect (slab test). dir need not be normalized.
func (r Rect) IntersectsSegment(origin, dir Vec2, distance float64) bool {
	d := dir.Normalized()
	if d.LenSq() == 0 || distance <= 0 {
		return r.Contains(origin)
	}
	lo, hi := r.Min(), r.Max()
	tmin, tmax := 0.0, distance

	for _, axis := range [2][4]float64{
		{origin.X, d.X, lo.X, hi.X},
		{origin.Y, d.Y, lo.Y, hi.Y},
	} {
		o, dd, amin, amax := axis[0], axis[1], axis[2], axis[3]
		if dd == 0 {
			if o < amin || o > amax {
				return false
			}
			continue
		}
		t1 := (amin - o) / dd
		t2 := (amax - o) / dd
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return false
		}
	}
	return true
}

// Contains reports whether p lies inside or on the rect
func (r Rect) Contains(p Vec2) bool {
	lo, hi := r.Min(), r.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// RectFromMinMax builds a rect from two corners
func RectFromMinMax(lo, hi Vec2) Rect {
	return Rect{
		Center: Vec2{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2},
		Size:   Vec2{X: math.Abs(hi.X - lo.X), Y: math.Abs(hi.Y - lo.Y)},
	}
}
