package lattice

// Grid is dense N×N×N storage indexed by Coord. The zero value of T marks an
// empty cell.
type Grid[T any] struct {
	size  int
	cells []T
}

// NewGrid allocates an empty grid of side size.
func NewGrid[T any](size int) *Grid[T] {
	if size < 0 {
		size = 0
	}
	return &Grid[T]{size: size, cells: make([]T, size*size*size)}
}

// Size returns the side length.
func (g *Grid[T]) Size() int { return g.size }

// In reports whether c is inside the grid.
func (g *Grid[T]) In(c Coord) bool { return c.In(g.size) }

func (g *Grid[T]) index(c Coord) int {
	return (c.X*g.size+c.Y)*g.size + c.Z
}

// At returns the value at c, or the zero value when c is out of bounds.
func (g *Grid[T]) At(c Coord) T {
	if !g.In(c) {
		var zero T
		return zero
	}
	return g.cells[g.index(c)]
}

// Set stores v at c. Returns false if c is out of bounds.
func (g *Grid[T]) Set(c Coord, v T) bool {
	if !g.In(c) {
		return false
	}
	g.cells[g.index(c)] = v
	return true
}

// Each calls fn for every cell in x, then y, then z order.
func (g *Grid[T]) Each(fn func(c Coord, v T)) {
	i := 0
	for x := 0; x < g.size; x++ {
		for y := 0; y < g.size; y++ {
			for z := 0; z < g.size; z++ {
				fn(Coord{X: x, Y: y, Z: z}, g.cells[i])
				i++
			}
		}
	}
}

// Clone returns a shallow copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	cp := &Grid[T]{size: g.size, cells: make([]T, len(g.cells))}
	copy(cp.cells, g.cells)
	return cp
}
