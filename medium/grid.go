package medium

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

// ErrMapShape reports an override map whose dimensions do not match the grid.
var ErrMapShape = errors.New("medium: override map shape mismatch")

// Grid is a rectangular ny-by-nx network of point masses coupled by springs
// along both axes, with every edge node additionally linked to a rigid wall.
// Node (i, j) linearizes to index i*nx + j.
//
// Defaults are scalar kx, ky and m; per-node masses and per-edge stiffnesses
// can be overridden with maps. Maps only override internal links: the wall
// links of the boundary always use the scalar defaults, so every node keeps
// the same coordination number of four.
type Grid struct {
	nx, ny int
	kx, ky float64

	mass []float64 // per node, length nx*ny
	// hx[i*(nx+1)+j] is the horizontal link between (i,j-1) and (i,j);
	// j == 0 and j == nx are the wall links of row i.
	hx []float64
	// vy[i*nx+j] is the vertical link between (i-1,j) and (i,j);
	// i == 0 and i == ny are the wall links of column j.
	vy []float64
}

// GridOption configures NewGrid.
type GridOption func(*gridConfig)

type gridConfig struct {
	kx, ky  float64
	mass    float64
	massMap *mat.Dense
	kxMap   *mat.Dense
	kyMap   *mat.Dense
}

func defaultGridConfig() gridConfig {
	return gridConfig{kx: 1, ky: 1, mass: 1}
}

// WithGridCoupling sets the default spring constants along x and y. They
// apply to every link not covered by an override map, and to all wall links
// unconditionally.
func WithGridCoupling(kx, ky float64) GridOption {
	return func(c *gridConfig) { c.kx = kx; c.ky = ky }
}

// WithNodeMass sets the default node mass.
func WithNodeMass(m float64) GridOption {
	return func(c *gridConfig) { c.mass = m }
}

// WithMassMap overrides per-node masses with a (ny, nx) map.
func WithMassMap(m *mat.Dense) GridOption {
	return func(c *gridConfig) { c.massMap = m }
}

// WithCouplingXMap overrides the stiffness of internal horizontal links with
// a (ny, nx) map; entry (i, j) is the link from node (i,j) to its right
// neighbor (i,j+1). The last column's entries are unused (they would describe
// wall links, which stay at the scalar default).
func WithCouplingXMap(m *mat.Dense) GridOption {
	return func(c *gridConfig) { c.kxMap = m }
}

// WithCouplingYMap overrides the stiffness of internal vertical links with a
// (ny, nx) map; entry (i, j) is the link from node (i,j) to its lower
// neighbor (i+1,j). The last row's entries are unused.
func WithCouplingYMap(m *mat.Dense) GridOption {
	return func(c *gridConfig) { c.kyMap = m }
}

func checkMapShape(name string, m *mat.Dense, ny, nx int) error {
	r, c := m.Dims()
	if r != ny || c != nx {
		return fmt.Errorf("%w: %s is (%d, %d), want (%d, %d)",
			ErrMapShape, name, r, c, ny, nx)
	}
	return nil
}

// NewGrid builds an nx-by-ny oscillator grid. All override maps must match
// the (ny, nx) shape exactly; all masses must be positive and all
// stiffnesses non-negative. Optional maps are materialized here into fully
// resolved per-node and per-link arrays, so the stiffness assembly below has
// no map-present branching.
func NewGrid(nx, ny int, opts ...GridOption) (*Grid, error) {
	if nx < 1 || ny < 1 {
		return nil, ErrInvalidSize
	}

	cfg := defaultGridConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.kx < 0 || cfg.ky < 0 {
		return nil, fmt.Errorf("%w: kx = %v, ky = %v", ErrInvalidStiffness, cfg.kx, cfg.ky)
	}

	g := &Grid{
		nx: nx, ny: ny,
		kx: cfg.kx, ky: cfg.ky,
		mass: make([]float64, nx*ny),
		hx:   make([]float64, ny*(nx+1)),
		vy:   make([]float64, (ny+1)*nx),
	}

	if cfg.massMap != nil {
		if err := checkMapShape("mass map", cfg.massMap, ny, nx); err != nil {
			return nil, err
		}
		for i := 0; i < ny; i++ {
			for j := 0; j < nx; j++ {
				g.mass[i*nx+j] = cfg.massMap.At(i, j)
			}
		}
	} else {
		for i := range g.mass {
			g.mass[i] = cfg.mass
		}
	}
	for i, m := range g.mass {
		if m <= 0 {
			return nil, fmt.Errorf("%w: node %d has m = %v", ErrInvalidMass, i, m)
		}
	}

	if cfg.kxMap != nil {
		if err := checkMapShape("kx map", cfg.kxMap, ny, nx); err != nil {
			return nil, err
		}
	}
	if cfg.kyMap != nil {
		if err := checkMapShape("ky map", cfg.kyMap, ny, nx); err != nil {
			return nil, err
		}
	}

	for i := 0; i < ny; i++ {
		for j := 0; j <= nx; j++ {
			v := cfg.kx
			if j > 0 && j < nx && cfg.kxMap != nil {
				v = cfg.kxMap.At(i, j-1)
			}
			g.hx[i*(nx+1)+j] = v
		}
	}
	for i := 0; i <= ny; i++ {
		for j := 0; j < nx; j++ {
			v := cfg.ky
			if i > 0 && i < ny && cfg.kyMap != nil {
				v = cfg.kyMap.At(i-1, j)
			}
			g.vy[i*nx+j] = v
		}
	}

	for i, k := range g.hx {
		if k < 0 {
			return nil, fmt.Errorf("%w: horizontal link %d has k = %v", ErrInvalidStiffness, i, k)
		}
	}
	for i, k := range g.vy {
		if k < 0 {
			return nil, fmt.Errorf("%w: vertical link %d has k = %v", ErrInvalidStiffness, i, k)
		}
	}

	return g, nil
}

// Nx returns the number of columns.
func (g *Grid) Nx() int { return g.nx }

// Ny returns the number of rows.
func (g *Grid) Ny() int { return g.ny }

// N returns the total node count nx*ny.
func (g *Grid) N() int { return g.nx * g.ny }

// MassVector returns a copy of the resolved per-node masses in linearized
// order.
func (g *Grid) MassVector() []float64 {
	return append([]float64(nil), g.mass...)
}

// MassMap returns the resolved per-node masses as a (ny, nx) matrix.
func (g *Grid) MassMap() *mat.Dense {
	m := mat.NewDense(g.ny, g.nx, nil)
	for i := 0; i < g.ny; i++ {
		for j := 0; j < g.nx; j++ {
			m.Set(i, j, g.mass[i*g.nx+j])
		}
	}
	return m
}

// ReplaceMass returns a copy of the grid with its per-node masses replaced by
// the given (ny, nx) map. Stiffness links are carried over unchanged. Used by
// profile builders that resample the grid under synthetic mass perturbation.
func (g *Grid) ReplaceMass(massMap *mat.Dense) (*Grid, error) {
	if err := checkMapShape("mass map", massMap, g.ny, g.nx); err != nil {
		return nil, err
	}

	out := &Grid{
		nx: g.nx, ny: g.ny,
		kx: g.kx, ky: g.ky,
		mass: make([]float64, g.nx*g.ny),
		hx:   append([]float64(nil), g.hx...),
		vy:   append([]float64(nil), g.vy...),
	}
	for i := 0; i < g.ny; i++ {
		for j := 0; j < g.nx; j++ {
			m := massMap.At(i, j)
			if m <= 0 {
				return nil, fmt.Errorf("%w: node (%d,%d) has m = %v", ErrInvalidMass, i, j, m)
			}
			out.mass[i*g.nx+j] = m
		}
	}
	return out, nil
}

// StiffnessMatrix assembles the symmetric 5-point-stencil stiffness operator.
// Every node receives exactly four link contributions; where a neighbor is
// missing, the link connects to a fixed wall instead, so boundary nodes have
// the same coordination number as internal ones.
func (g *Grid) StiffnessMatrix() *mat.SymDense {
	n := g.N()
	k := mat.NewSymDense(n, nil)

	for i := 0; i < g.ny; i++ {
		for j := 0; j < g.nx; j++ {
			idx := i*g.nx + j
			left := g.hx[i*(g.nx+1)+j]
			right := g.hx[i*(g.nx+1)+j+1]
			up := g.vy[i*g.nx+j]
			down := g.vy[(i+1)*g.nx+j]

			k.SetSym(idx, idx, left+right+up+down)
			if j < g.nx-1 {
				k.SetSym(idx, idx+1, -right)
			}
			if i < g.ny-1 {
				k.SetSym(idx, idx+g.nx, -down)
			}
		}
	}
	return k
}

// MassMatrix returns the diagonal mass operator.
func (g *Grid) MassMatrix() *mat.DiagDense {
	return mat.NewDiagDense(g.N(), g.MassVector())
}

// Eigenmodes solves K v = ω² M v. nModes <= 0 (or >= N) returns the full
// spectrum; otherwise only the lowest nModes pairs are returned. Frequencies
// are ascending and the mode matrix is M-orthonormal.
func (g *Grid) Eigenmodes(nModes int) ([]float64, *mat.Dense) {
	return solveGeneralized(g.StiffnessMatrix(), g.mass, nModes)
}

// LDOSMap computes the eigenmodes and aggregates the local density of states
// over the closed frequency band, reshaped to the (ny, nx) grid layout.
func (g *Grid) LDOSMap(nModes int, band spectrum.Band) (*mat.Dense, error) {
	omega, modes := g.Eigenmodes(nModes)

	flat, err := LDOS(modes, omega, band)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(g.ny, g.nx, flat), nil
}
