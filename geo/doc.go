// Package geo maps layered subsurface models onto oscillator media. A 1D
// layer stack discretizes into a mass/spring chain whose pulse response
// carries the layering; a 2D cross-section maps density and stiffness fields
// onto an oscillator grid whose surface LDOS serves as the forward response.
package geo
