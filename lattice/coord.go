// Package lattice models the bounded cubic coordinate space shared by the
// 3D games: coordinates, unit steps and the precomputed direction tables.
package lattice

import "fmt"

// Coord is a cell position in an N×N×N lattice.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Vec is a lattice step with every component in {-1, 0, 1}.
type Vec struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
	DZ int `json:"dz"`
}

// C is shorthand for Coord{x, y, z}.
func C(x, y, z int) Coord { return Coord{X: x, Y: y, Z: z} }

// Add returns c moved one step along v.
func (c Coord) Add(v Vec) Coord {
	return Coord{X: c.X + v.DX, Y: c.Y + v.DY, Z: c.Z + v.DZ}
}

// Step returns c moved n steps along v. n may be negative.
func (c Coord) Step(v Vec, n int) Coord {
	return Coord{X: c.X + n*v.DX, Y: c.Y + n*v.DY, Z: c.Z + n*v.DZ}
}

// In reports whether c lies inside a lattice of side size.
func (c Coord) In(size int) bool {
	return c.X >= 0 && c.X < size &&
		c.Y >= 0 && c.Y < size &&
		c.Z >= 0 && c.Z < size
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Neg returns the opposite step.
func (v Vec) Neg() Vec { return Vec{DX: -v.DX, DY: -v.DY, DZ: -v.DZ} }

// IsZero reports whether v does not move.
func (v Vec) IsZero() bool { return v == Vec{} }

// Axis returns 0, 1 or 2 when v is a unit step along x, y or z,
// and -1 for diagonals and the zero vector.
func (v Vec) Axis() int {
	switch {
	case v.DX != 0 && v.DY == 0 && v.DZ == 0:
		return 0
	case v.DX == 0 && v.DY != 0 && v.DZ == 0:
		return 1
	case v.DX == 0 && v.DY == 0 && v.DZ != 0:
		return 2
	}
	return -1
}

// IsAxis reports whether v is one of the six entries of Axes.
func (v Vec) IsAxis() bool {
	for _, a := range Axes {
		if v == a {
			return true
		}
	}
	return false
}

var axisNames = map[Vec]string{
	{1, 0, 0}: "+x", {-1, 0, 0}: "-x",
	{0, 1, 0}: "+y", {0, -1, 0}: "-y",
	{0, 0, 1}: "+z", {0, 0, -1}: "-z",
}

func (v Vec) String() string {
	if s, ok := axisNames[v]; ok {
		return s
	}
	return fmt.Sprintf("[%d,%d,%d]", v.DX, v.DY, v.DZ)
}
