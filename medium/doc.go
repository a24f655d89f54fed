// Package medium implements discrete oscillator networks used as toy models
// of elastic continua: a 1D chain and a 2D rectangular grid of point masses
// coupled by nearest-neighbor springs, both with fixed-wall boundaries.
//
// Both models assemble a symmetric stiffness operator K and a diagonal mass
// operator M and expose their vibrational eigenmodes through the generalized
// eigenproblem K v = ω² M v. Because M is diagonal and positive, the problem
// is reduced to a standard symmetric one (M^{-1/2} K M^{-1/2}) and solved
// densely; returned mode matrices are M-orthonormal (Vᵀ M V = I) and
// frequencies are sorted ascending.
//
// The package also provides the LDOS aggregation step: for a set of modes and
// a closed frequency window, the per-node sum of squared mode amplitudes over
// the modes inside the window.
package medium
