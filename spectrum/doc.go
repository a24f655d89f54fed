// Package spectrum provides the discrete (frequency, power) spectrum value
// type that the rest of the toolkit is built on.
//
// A Spectrum pairs an angular-frequency grid with a power value per grid
// point. The grid is index-associated, not required to be sorted. Spectra are
// immutable by convention: every operation returns a new instance and never
// mutates its receiver or arguments.
package spectrum
