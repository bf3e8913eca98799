package layout

// Classify maps a terminal aspect onto one of the four target-ratio rules
// for auto-geometry mode. When the terminal is narrow enough (and there are
// at least three panes) the grid collapses to a single-column stack and
// scoring is bypassed entirely; stacked=true signals that case.
func Classify(count int, aspect float64, th Thresholds) (sub SubMode, stacked bool) {
	if count >= 3 && aspect <= th.StackMax {
		return Tall, true
	}
	switch {
	case aspect >= th.WideMin:
		return Wide, false
	case aspect <= th.TallMax:
		return Tall, false
	default:
		return Square, false
	}
}
