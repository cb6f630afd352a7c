package lattice

// Unit steps along the three axes.
var (
	PosX = Vec{DX: 1}
	NegX = Vec{DX: -1}
	PosY = Vec{DY: 1}
	NegY = Vec{DY: -1}
	PosZ = Vec{DZ: 1}
	NegZ = Vec{DZ: -1}
)

// Axes holds the six axis-aligned unit steps. They are the legal crossword
// word directions and also the 6-neighborhood of a cell.
var Axes = [6]Vec{PosX, NegX, PosY, NegY, PosZ, NegZ}

// Lines holds one representative of each of the 13 lines through a cell:
// 3 axes, 6 face diagonals and 4 space diagonals. A line is scanned along
// d and d.Neg().
var Lines = buildLines()

// buildLines keeps every non-zero step whose first non-zero component is
// positive, which picks exactly one of {d, -d} for each line.
func buildLines() [13]Vec {
	var out [13]Vec
	n := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				v := Vec{DX: dx, DY: dy, DZ: dz}
				if v.IsZero() || !canonical(v) {
					continue
				}
				out[n] = v
				n++
			}
		}
	}
	return out
}

func canonical(v Vec) bool {
	switch {
	case v.DX != 0:
		return v.DX > 0
	case v.DY != 0:
		return v.DY > 0
	default:
		return v.DZ > 0
	}
}
