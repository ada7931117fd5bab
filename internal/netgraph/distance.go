package netgraph

// DistanceMatrix answers shortest-path network distance queries between
// nodes. Implementations are immutable once built; every pipeline stage
// consumes them read-only.
type DistanceMatrix interface {
	// Distance returns the shortest-path distance from one node to
	// another. ok is false when no path exists or either node is unknown.
	Distance(from, to string) (dist float64, ok bool)
}

// Matrix is a map-backed DistanceMatrix. The reference solver fills one per
// run; tests build small ones by hand via Set.
type Matrix struct {
	dist map[string]map[string]float64
}

// NewMatrix returns an empty Matrix.
func NewMatrix() *Matrix {
	return &Matrix{dist: make(map[string]map[string]float64)}
}

// Set records the distance from one node to another. Symmetry is not
// assumed; the solver records both directions explicitly.
func (m *Matrix) Set(from, to string, dist float64) {
	row, ok := m.dist[from]
	if !ok {
		row = make(map[string]float64)
		m.dist[from] = row
	}
	row[to] = dist
}

// Distance implements DistanceMatrix.
func (m *Matrix) Distance(from, to string) (float64, bool) {
	if from == to {
		return 0, true
	}
	d, ok := m.dist[from][to]
	return d, ok
}

// Sources returns the number of source nodes the matrix covers.
func (m *Matrix) Sources() int { return len(m.dist) }
