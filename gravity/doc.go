// Package gravity holds a toy spectral-pressure model: a body sitting in a
// background spectrum feels a net push when its two sides are transparent to
// different parts of that spectrum.
package gravity
