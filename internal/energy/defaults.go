package energy

// DefaultGlazing is the window-to-wall ratio and SHGC assumed per orientation
// for legacy designs saved without them.
var DefaultGlazing = map[Orientation]Facade{
	North: {WWR: 0.25, SHGC: 0.5},
	South: {WWR: 0.4, SHGC: 0.3},
	East:  {WWR: 0.3, SHGC: 0.4},
	West:  {WWR: 0.3, SHGC: 0.4},
}

// FillGlazingDefaults sets missing WWR and SHGC values from DefaultGlazing.
// Dimensions are left alone. It reports whether anything changed.
func FillGlazingDefaults(f Facades) (Facades, bool) {
	changed := false
	fill := func(o Orientation, fc *Facade) {
		def := DefaultGlazing[o]
		if fc.WWR <= 0 {
			fc.WWR = def.WWR
			changed = true
		}
		if fc.SHGC <= 0 {
			fc.SHGC = def.SHGC
			changed = true
		}
	}
	fill(North, &f.North)
	fill(South, &f.South)
	fill(East, &f.East)
	fill(West, &f.West)
	return f, changed
}
