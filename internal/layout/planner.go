// Package layout computes pane-grid dimensions for a monitor session.
//
// The planner is pure: given a pane count, a layout mode, and the terminal
// geometry it returns the (columns, rows) grid that best matches the target
// cell shape. All scoring constants are compatibility values shared with the
// reflow hook; changing them changes which grid an existing session snaps to
// on resize.
package layout

import (
	"fmt"
	"math"
)

// SubMode selects the target cell ratio for grid layouts.
type SubMode int

const (
	Square SubMode = iota
	Wide
	Tall
	// AutoAspect derives the target ratio directly from the terminal aspect.
	AutoAspect
	// AutoGeometry classifies the terminal first (stacked/tall/square/wide)
	// and then delegates to the matching target-ratio rule.
	AutoGeometry
)

// Direction is the split direction for linear layouts.
type Direction int

const (
	Vertical   Direction = iota // panes stacked top to bottom
	Horizontal                  // panes side by side
)

// Mode is the full layout selection: either a linear chain of splits or a
// planned grid.
type Mode struct {
	Linear    bool
	Direction Direction
	Sub       SubMode
}

// ParseMode parses the --layout flag value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "vertical", "v":
		return Mode{Linear: true, Direction: Vertical}, nil
	case "horizontal", "h":
		return Mode{Linear: true, Direction: Horizontal}, nil
	case "square":
		return Mode{Sub: Square}, nil
	case "wide":
		return Mode{Sub: Wide}, nil
	case "tall":
		return Mode{Sub: Tall}, nil
	case "aspect":
		return Mode{Sub: AutoAspect}, nil
	case "auto", "":
		return Mode{Sub: AutoGeometry}, nil
	default:
		return Mode{}, fmt.Errorf("unknown layout %q (expected vertical, horizontal, square, wide, tall, aspect, or auto)", s)
	}
}

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	if m.Linear {
		if m.Direction == Horizontal {
			return "horizontal"
		}
		return "vertical"
	}
	switch m.Sub {
	case Square:
		return "square"
	case Wide:
		return "wide"
	case Tall:
		return "tall"
	case AutoAspect:
		return "aspect"
	default:
		return "auto"
	}
}

// Geometry is the character-cell size of the outer terminal.
type Geometry struct {
	Cols int
	Rows int
}

// Aspect returns the width:height ratio in character cells.
func (g Geometry) Aspect() float64 {
	if g.Rows <= 0 {
		return 1
	}
	return float64(g.Cols) / float64(g.Rows)
}

// Thresholds are the ordered aspect boundaries used by auto-geometry
// classification: stackMax <= tallMax <= wideMin.
type Thresholds struct {
	StackMax float64
	TallMax  float64
	WideMin  float64
}

// DefaultThresholds returns the stock classification boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{StackMax: 0.95, TallMax: 1.25, WideMin: 2.40}
}

// Validate rejects out-of-order thresholds.
func (t Thresholds) Validate() error {
	if t.StackMax > t.TallMax || t.TallMax > t.WideMin {
		return fmt.Errorf("aspect thresholds must satisfy stack-max (%.2f) <= tall-max (%.2f) <= wide-min (%.2f)",
			t.StackMax, t.TallMax, t.WideMin)
	}
	return nil
}

// Plan is the chosen grid: Cols*Rows >= the pane count, with neither axis
// exceeding the count.
type Plan struct {
	Cols int
	Rows int
}

// Slots returns the total slot count of the grid.
func (p Plan) Slots() int { return p.Cols * p.Rows }

// Scoring constants. These are compatibility values, preserved exactly.
const (
	emptySlotWeight  = 0.12 // per unused slot in the grid
	degenerateWeight = 1.0  // single row or column at count >= 4
	imbalanceWeight  = 0.22 // per slot of ragged-row size spread (no padding)
	cellShapeWeight  = 1.2  // auto-geometry only: squashed-cell penalty
	cellShapeIdeal   = 1.15 // minimum comfortable cell aspect before penalty
)

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// targetRatio returns the desired columns:rows ratio for a sub-mode given
// the terminal aspect.
func targetRatio(sub SubMode, aspect float64) float64 {
	switch sub {
	case Wide:
		return clamp(aspect*1.4, 1.2, 4.0)
	case Tall:
		return clamp(aspect*0.7, 0.35, 1.0)
	case AutoAspect:
		return clamp(aspect, 0.6, 3.0)
	default: // Square
		return 1.0
	}
}

// PlanGrid chooses grid dimensions for count panes on a terminal of the
// given geometry. The result is deterministic: candidate column counts are
// scanned in ascending order and a candidate replaces the incumbent only on
// a strictly better score, or an equal score with fewer empty slots.
func PlanGrid(count int, sub SubMode, geom Geometry, th Thresholds, padded bool) Plan {
	if count < 1 {
		count = 1
	}
	aspect := geom.Aspect()

	shaped := false // cell-shape penalty applies in auto-geometry only
	if sub == AutoGeometry {
		target, stacked := Classify(count, aspect, th)
		if stacked {
			return Plan{Cols: 1, Rows: count}
		}
		sub = target
		shaped = true
	}
	ratio := targetRatio(sub, aspect)

	best := Plan{Cols: 1, Rows: count}
	bestScore := math.Inf(1)
	bestEmpty := 0
	for c := 1; c <= count; c++ {
		rows := (count + c - 1) / c
		empty := c*rows - count
		// A layout wasting a whole row is never worth scoring: dropping a
		// row yields a strictly denser grid with the same column count.
		if empty >= c {
			continue
		}

		score := math.Abs(math.Log((float64(c) / float64(rows)) / ratio))
		score += emptySlotWeight * float64(empty)
		if count >= 4 && (rows == 1 || c == 1) {
			score += degenerateWeight
		}
		if !padded && empty > 0 {
			// Ragged grids leave the last row short; penalize the spread
			// between the widest and narrowest row.
			score += imbalanceWeight * float64(empty)
		}
		if shaped {
			// Character cells are roughly twice as tall as wide, so a grid
			// whose cells fall below the comfortable aspect gets squashed.
			cell := aspect * float64(rows) / float64(c)
			score += math.Max(0, cellShapeIdeal-cell) * cellShapeWeight
		}

		const eps = 1e-9
		if score < bestScore-eps || (math.Abs(score-bestScore) <= eps && empty < bestEmpty) {
			best = Plan{Cols: c, Rows: rows}
			bestScore = score
			bestEmpty = empty
		}
	}
	return best
}
