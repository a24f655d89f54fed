// Package ndt implements the non-destructive-testing layer: a statistical
// LDOS baseline of a healthy 2D medium (per-pixel mean and standard
// deviation, optionally sampled under synthetic mass noise), a z-score-like
// defect scorer against that baseline, and a thresholded defect mask that
// localizes anomalies on the grid.
package ndt
