package reflow

import (
	"context"
	"time"

	"github.com/Dicklesworthstone/muxmon/internal/layout"
	"github.com/Dicklesworthstone/muxmon/internal/tmux"
)

// Params carries the layout parameters the launch recorded into the hook
// command line. Hook invocations share no process state with the launcher;
// everything they need arrives here or lives in tmux itself.
type Params struct {
	Session     string
	Mode        layout.Mode
	Thresholds  layout.Thresholds
	Padding     bool
	MinInterval time.Duration
}

// Apply re-plans the grid from the session's live pane count and window
// size and applies the nearest named layout. It never splits or kills
// panes, so the cost is bounded to a handful of tmux calls and running
// content is never disturbed.
func Apply(ctx context.Context, c *tmux.Client, gate *Gate, p Params) error {
	if !c.HasSession(p.Session) {
		// Session is gone; the hook outlived it.
		return nil
	}

	panes, err := c.ListPanes(ctx, p.Session)
	if err != nil {
		return err
	}
	count := len(panes)
	if count <= 1 {
		return nil
	}

	// Consult the gate only once a layout will actually be applied, so a
	// no-op invocation cannot consume the debounce window from under a
	// real resize arriving right behind it.
	if !gate.Allow(p.Session, p.MinInterval) {
		return nil
	}

	cols, rows, err := c.WindowSize(p.Session)
	if err != nil {
		return err
	}

	return c.SelectLayout(p.Session, NamedLayout(count, p.Mode, layout.Geometry{Cols: cols, Rows: rows}, p.Thresholds, p.Padding))
}

// NamedLayout maps the planned grid for the live geometry onto the closest
// layout tmux can apply in one call. Exact non-uniform grids are traded for
// responsiveness: a single column becomes even-vertical, a single row
// even-horizontal, anything else the generic tiled layout.
func NamedLayout(count int, mode layout.Mode, geom layout.Geometry, th layout.Thresholds, padded bool) string {
	if mode.Linear {
		if mode.Direction == layout.Horizontal {
			return tmux.LayoutEvenHorizontal
		}
		return tmux.LayoutEvenVertical
	}

	plan := layout.PlanGrid(count, mode.Sub, geom, th, padded)
	switch {
	case plan.Cols <= 1:
		return tmux.LayoutEvenVertical
	case plan.Rows <= 1:
		return tmux.LayoutEvenHorizontal
	default:
		return tmux.LayoutTiled
	}
}
