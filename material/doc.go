// Package material turns reference spectra and feature vectors into anomaly
// detectors. A Signature wraps one "healthy" reference spectrum and measures
// normalized distances against new observations; a FeatureSignature does the
// same in feature space; a HealthProfile aggregates per-channel signatures
// for multi-channel equipment monitoring.
//
// Profiles and signatures are built once and treated as read-only afterwards;
// they may be shared across concurrent readers without synchronization.
package material
