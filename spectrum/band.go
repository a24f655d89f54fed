package spectrum

// Band is a closed frequency interval [Min, Max]. The same type serves
// angular-frequency windows (mode selection, LDOS) and Hz analysis bands;
// the unit is fixed by the call site.
type Band struct {
	Min float64
	Max float64
}

// Contains reports whether w lies in the closed interval.
func (b Band) Contains(w float64) bool {
	return w >= b.Min && w <= b.Max
}
