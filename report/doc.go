// Package report renders diagnosis results for humans: a Markdown status
// table per channel and HTML charts for spectra and LDOS maps.
package report
