// Package config loads the toolkit's YAML configuration: per-channel
// spectral analysis settings for the diagnostics pipeline and grid
// definitions for the NDT baseline workflow.
package config
