package lava

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec3) float64 { return a.Sub(b).Length() }

// Wrap maps v into [0,bounds) on every axis.
func (v Vec3) Wrap(bounds Vec3) Vec3 {
	return Vec3{wrap(v.X, bounds.X), wrap(v.Y, bounds.Y), wrap(v.Z, bounds.Z)}
}

func wrap(x, bound float64) float64 {
	x = math.Mod(x, bound)
	if x < 0 {
		x += bound
	}
	// -tiny + bound rounds to bound in float64
	if x >= bound {
		x = 0
	}
	return x
}
