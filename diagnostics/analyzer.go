package diagnostics

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

var (
	// ErrEmptySignal reports an empty input time series.
	ErrEmptySignal = errors.New("diagnostics: signal is empty")
	// ErrInvalidSampling reports a non-positive sampling period.
	ErrInvalidSampling = errors.New("diagnostics: time step must be positive")
)

// WindowType selects the taper applied before the FFT.
type WindowType int

const (
	// WindowHann is the default taper for general vibration analysis.
	WindowHann WindowType = iota
	// WindowNone analyzes the raw (DC-removed) signal.
	WindowNone
)

// ChannelConfig describes one measurement channel.
//
// FreqMin and FreqMax restrict the analyzed band in Hz; values <= 0 disable
// the respective bound (frequencies are never negative, so a zero lower
// bound is equivalent to no bound).
type ChannelConfig struct {
	Name    string
	Dt      float64 // sampling period in seconds
	Window  WindowType
	FreqMin float64
	FreqMax float64
}

// SpectralAnalyzer converts a channel's time series into a power spectrum
// according to its configuration.
type SpectralAnalyzer struct {
	cfg ChannelConfig
}

// NewSpectralAnalyzer validates the channel configuration.
func NewSpectralAnalyzer(cfg ChannelConfig) (*SpectralAnalyzer, error) {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return nil, fmt.Errorf("%w: dt = %v", ErrInvalidSampling, cfg.Dt)
	}
	return &SpectralAnalyzer{cfg: cfg}, nil
}

// Config returns the analyzer's channel configuration.
func (a *SpectralAnalyzer) Config() ChannelConfig { return a.cfg }

// Analyze converts a 1D time series into a one-sided power spectrum:
// DC removal, optional Hann taper, forward FFT (zero-padded to the next
// power of two), magnitude-squared power with the one-sided doubling
// convention for every bin except DC and Nyquist, then the optional Hz band
// restriction from the channel configuration.
//
// The returned spectrum carries angular frequencies (rad/s).
func (a *SpectralAnalyzer) Analyze(signal []float64) (*spectrum.Spectrum, error) {
	n := len(signal)
	if n == 0 {
		return nil, ErrEmptySignal
	}

	buf := make([]float64, n)
	mean := vecmath.Sum(signal) / float64(n)
	for i, v := range signal {
		buf[i] = v - mean
	}

	if a.cfg.Window == WindowHann {
		vecmath.MulBlockInPlace(buf, hannWindow(n))
	}

	fftSize := nextPowerOf2(n)
	in := make([]complex128, fftSize)
	for i, v := range buf {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: creating FFT plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("diagnostics: forward FFT: %w", err)
	}

	bins := fftSize/2 + 1
	omega := make([]float64, bins)
	power := make([]float64, bins)
	for k := 0; k < bins; k++ {
		omega[k] = 2 * math.Pi * float64(k) / (float64(fftSize) * a.cfg.Dt)
		re, im := real(out[k]), imag(out[k])
		p := (re*re + im*im) / float64(fftSize)
		if k != 0 && k != bins-1 {
			p *= 2
		}
		power[k] = p
	}

	if a.cfg.FreqMin <= 0 && a.cfg.FreqMax <= 0 {
		return spectrum.New(omega, power)
	}

	var selOmega, selPower []float64
	for k, w := range omega {
		hz := w / (2 * math.Pi)
		if a.cfg.FreqMin > 0 && hz < a.cfg.FreqMin {
			continue
		}
		if a.cfg.FreqMax > 0 && hz > a.cfg.FreqMax {
			continue
		}
		selOmega = append(selOmega, w)
		selPower = append(selPower, power[k])
	}
	return spectrum.New(selOmega, selPower)
}

// hannWindow returns the symmetric Hann taper of length n.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
