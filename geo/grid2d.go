package geo

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/RobertPaulig/SpectralPhysics-Lab/medium"
	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

// ErrMapShape reports a stiffness or density field that does not match the
// cross-section dimensions.
var ErrMapShape = errors.New("geo: field shape must match cross-section")

// CrossSection is a 2D subsurface model: stiffness and density fields over
// an nx by ny raster, with DepthScale meters per cell. Row ny-1 is the
// surface.
type CrossSection struct {
	nx, ny     int
	depthScale float64
	stiffness  *mat.Dense
	density    *mat.Dense
}

// NewCrossSection validates the fields against the raster dimensions and
// copies them.
func NewCrossSection(nx, ny int, depthScale float64, stiffness, density *mat.Dense) (*CrossSection, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("%w: %dx%d raster", ErrMapShape, nx, ny)
	}
	if depthScale <= 0 {
		return nil, fmt.Errorf("%w: depth scale = %v", ErrInvalidStep, depthScale)
	}
	for _, f := range []struct {
		name string
		m    *mat.Dense
	}{{"stiffness", stiffness}, {"density", density}} {
		r, c := f.m.Dims()
		if r != ny || c != nx {
			return nil, fmt.Errorf("%w: %s is %dx%d, want %dx%d",
				ErrMapShape, f.name, r, c, ny, nx)
		}
	}
	return &CrossSection{
		nx:         nx,
		ny:         ny,
		depthScale: depthScale,
		stiffness:  mat.DenseCopyOf(stiffness),
		density:    mat.DenseCopyOf(density),
	}, nil
}

// Nx returns the horizontal cell count.
func (c *CrossSection) Nx() int { return c.nx }

// Ny returns the vertical cell count.
func (c *CrossSection) Ny() int { return c.ny }

// DepthScale returns the cell size in meters.
func (c *CrossSection) DepthScale() float64 { return c.depthScale }

// Grid maps the cross-section onto an oscillator grid: node masses follow
// the density field and both coupling directions follow the stiffness field
// isotropically.
func (c *CrossSection) Grid() (*medium.Grid, error) {
	return medium.NewGrid(c.nx, c.ny,
		medium.WithGridCoupling(1, 1),
		medium.WithNodeMass(1),
		medium.WithMassMap(c.density),
		medium.WithCouplingXMap(c.stiffness),
		medium.WithCouplingYMap(c.stiffness),
	)
}

// SurfaceResponse computes the LDOS map restricted to the band and returns
// its surface row.
func (c *CrossSection) SurfaceResponse(nModes int, band spectrum.Band) ([]float64, error) {
	grid, err := c.Grid()
	if err != nil {
		return nil, err
	}
	ldos, err := grid.LDOSMap(nModes, band)
	if err != nil {
		return nil, err
	}
	surface := make([]float64, c.nx)
	mat.Row(surface, c.ny-1, ldos)
	return surface, nil
}
