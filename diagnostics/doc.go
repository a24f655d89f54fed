// Package diagnostics orchestrates multi-channel spectral health monitoring:
// it converts raw time series into band-limited power spectra, averages
// training spectra into per-channel baselines, extracts scalar spectral
// features, and wraps the comparison against a trained reference into
// monitor types with per-channel anomaly verdicts.
package diagnostics
