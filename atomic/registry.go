package atomic

// Registry returns a freshly built table of the toy atoms, keyed by name.
// Each call constructs new resonators, so callers never share state.
func Registry() map[string]*Resonator {
	h, _ := NewResonator("H", []Line{{1.0, 1.0}}, 1)
	o, _ := NewResonator("O", []Line{{0.9, 0.5}, {1.0, 0.8}, {1.1, 0.5}}, 2)
	c, _ := NewResonator("C", []Line{{0.8, 0.7}, {1.0, 0.9}, {1.2, 0.7}}, 4)
	return map[string]*Resonator{
		"H": h,
		"O": o,
		"C": c,
	}
}
