// Package atomic models atoms as toy surface resonators: small sets of
// discrete spectral lines with a bonding capacity. Two atoms can couple when
// their lines fall within a relative frequency tolerance of each other; the
// accumulated weight of matching lines scores the bond.
//
// The package ships a small registry of toy atoms (H, O, C) and a
// MaterialPatch type that mixes atoms into a weighted surface spectrum for
// coupling against a medium's local density of states.
package atomic
