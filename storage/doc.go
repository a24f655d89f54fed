// Package storage persists the toolkit's data types. Time series come in as
// CSV columns; spectra, health profiles and NDT baselines travel as zip
// archives of npy arrays, readable from numpy with np.load.
package storage
