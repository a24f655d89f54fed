package ndt

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/RobertPaulig/SpectralPhysics-Lab/medium"
	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

const (
	// DefaultEpsilon guards the z-score denominator in ScoreState.
	DefaultEpsilon = 1e-6

	// massFloor keeps perturbed masses physical.
	massFloor = 1e-3
)

// ErrMapShape reports an LDOS map whose dimensions do not match the profile.
var ErrMapShape = errors.New("ndt: ldos map shape mismatch")

// Profile is the statistical baseline of a healthy medium: the elementwise
// mean and standard deviation of sampled LDOS maps over a fixed frequency
// window. Built once, then read-only.
type Profile struct {
	Band spectrum.Band
	Mean *mat.Dense
	Std  *mat.Dense
}

// Option configures BuildProfile.
type Option func(*config)

type config struct {
	samples int
	noise   float64
	seed    int64
}

func defaultConfig() config {
	return config{samples: 1, seed: 1}
}

// WithSamples sets how many LDOS maps are drawn for the baseline.
func WithSamples(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.samples = n
		}
	}
}

// WithMassNoise adds independent per-node Gaussian mass perturbation of the
// given standard deviation to each sample. Perturbed masses are floored at a
// small positive value to stay physical.
func WithMassNoise(std float64) Option {
	return func(c *config) {
		if std > 0 {
			c.noise = std
		}
	}
}

// WithSeed sets the deterministic random seed for the noise source.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// BuildProfile samples the grid's LDOS map and aggregates the elementwise
// mean and standard deviation. Without noise (or with a single sample) the
// standard deviation is identically zero and ScoreState falls back to the
// raw absolute difference.
func BuildProfile(grid *medium.Grid, nModes int, band spectrum.Band, opts ...Option) (*Profile, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ny, nx := grid.Ny(), grid.Nx()
	base := grid.MassMap()
	rng := rand.New(rand.NewSource(cfg.seed))

	maps := make([]*mat.Dense, 0, cfg.samples)
	for s := 0; s < cfg.samples; s++ {
		g := grid
		if cfg.noise > 0 {
			perturbed := mat.NewDense(ny, nx, nil)
			for i := 0; i < ny; i++ {
				for j := 0; j < nx; j++ {
					m := base.At(i, j) + rng.NormFloat64()*cfg.noise
					if m < massFloor {
						m = massFloor
					}
					perturbed.Set(i, j, m)
				}
			}

			var err error
			g, err = grid.ReplaceMass(perturbed)
			if err != nil {
				return nil, fmt.Errorf("ndt: perturbing mass map: %w", err)
			}
		}

		ldos, err := g.LDOSMap(nModes, band)
		if err != nil {
			return nil, err
		}
		maps = append(maps, ldos)
	}

	mean := mat.NewDense(ny, nx, nil)
	std := mat.NewDense(ny, nx, nil)
	n := float64(len(maps))

	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			var sum float64
			for _, m := range maps {
				sum += m.At(i, j)
			}
			mean.Set(i, j, sum/n)
		}
	}

	if cfg.samples > 1 && cfg.noise > 0 {
		for i := 0; i < ny; i++ {
			for j := 0; j < nx; j++ {
				var sq float64
				for _, m := range maps {
					d := m.At(i, j) - mean.At(i, j)
					sq += d * d
				}
				std.Set(i, j, math.Sqrt(sq/n))
			}
		}
	}

	return &Profile{Band: band, Mean: mean, Std: std}, nil
}

// ScoreState compares a current LDOS map against the profile and returns a
// per-pixel defect score: |current - mean| divided by (std + epsilon) when
// the profile carries meaningful variance (max std > epsilon), or the raw
// absolute difference otherwise. The fallback handles the degenerate
// all-zero-std baseline without a division blow-up.
func ScoreState(p *Profile, current *mat.Dense, epsilon float64) (*mat.Dense, error) {
	ny, nx := p.Mean.Dims()
	r, c := current.Dims()
	if r != ny || c != nx {
		return nil, fmt.Errorf("%w: profile is (%d, %d), current is (%d, %d)",
			ErrMapShape, ny, nx, r, c)
	}

	useStd := mat.Max(p.Std) > epsilon

	scores := mat.NewDense(ny, nx, nil)
	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			d := math.Abs(current.At(i, j) - p.Mean.At(i, j))
			if useStd {
				d /= p.Std.At(i, j) + epsilon
			}
			scores.Set(i, j, d)
		}
	}
	return scores, nil
}

// DefectMask thresholds a score map into a boolean defect mask.
func DefectMask(scores *mat.Dense, threshold float64) [][]bool {
	ny, nx := scores.Dims()
	mask := make([][]bool, ny)
	for i := range mask {
		mask[i] = make([]bool, nx)
		for j := 0; j < nx; j++ {
			mask[i][j] = scores.At(i, j) > threshold
		}
	}
	return mask
}
