package design

import "math"

// Vec2 is a point or displacement in the flat (2D) view.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Rotate rotates v by angle radians around the origin.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Vec3 is a point or displacement in nanometers.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v*k.
func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Len returns the euclidean norm.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Quat is a unit quaternion used as a rotor.
type Quat struct {
	W float64 `json:"w" yaml:"w"`
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// IdentityQuat is the rotation that does nothing.
var IdentityQuat = Quat{W: 1}

// AxisAngle builds the rotation of angle radians around axis.
func AxisAngle(axis Vec3, angle float64) Quat {
	l := axis.Len()
	if l == 0 {
		return IdentityQuat
	}
	s, c := math.Sincos(angle / 2)
	a := axis.Scale(s / l)
	return Quat{W: c, X: a.X, Y: a.Y, Z: a.Z}
}

// Mul composes q after o.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Conj returns the inverse rotation of a unit quaternion.
func (q Quat) Conj() Quat { return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z} }

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	p := q.Mul(Quat{X: v.X, Y: v.Y, Z: v.Z}).Mul(q.Conj())
	return Vec3{p.X, p.Y, p.Z}
}

// Isometry2 places a helix in the flat view.
type Isometry2 struct {
	Translation Vec2    `json:"translation" yaml:"translation"`
	Angle       float64 `json:"angle" yaml:"angle"`
}

// Apply maps a local point through the isometry.
func (i Isometry2) Apply(p Vec2) Vec2 {
	return p.Rotate(i.Angle).Add(i.Translation)
}
