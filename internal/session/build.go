// Package session builds and reconciles the monitor session: realizing a
// planned grid as tmux panes, binding monitor commands to slots, and
// attaching without disturbing running content.
package session

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dicklesworthstone/muxmon/internal/layout"
	"github.com/Dicklesworthstone/muxmon/internal/tmux"
)

// SortRowMajor orders panes by physical position: top to bottom, then left
// to right within a row. tmux keeps no stable mapping from pane to logical
// grid slot across splits, so coordinate order is the canonical identity.
func SortRowMajor(panes []tmux.Pane) {
	sort.SliceStable(panes, func(i, j int) bool {
		if panes[i].Top != panes[j].Top {
			return panes[i].Top < panes[j].Top
		}
		return panes[i].Left < panes[j].Left
	})
}

// splitPercent is the share handed to the new pane when carving one region
// off a remainder that must still become k equal regions. The old pane
// keeps 100/k, the new pane takes the remaining 100-100/k and is recursed
// into with k-1, converging to equal sizes without computing absolute
// percentages up front.
func splitPercent(k int) int {
	return 100 - 100/k
}

// buildGrid splits the session's single placeholder pane into the planned
// grid: first into len(rowSlots) stacked rows, then each row into its
// column count. Every new pane runs the hold command until content is
// bound. Returns the realized panes in row-major order.
func buildGrid(ctx context.Context, c *tmux.Client, session string, rowSlots []int, dir, hold string) ([]tmux.Pane, error) {
	panes, err := c.ListPanes(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(panes) != 1 {
		return nil, fmt.Errorf("expected a single placeholder pane, found %d", len(panes))
	}

	target := panes[0].ID
	for k := len(rowSlots); k > 1; k-- {
		id, err := c.SplitPane(ctx, target, true, splitPercent(k), dir, hold)
		if err != nil {
			return nil, fmt.Errorf("splitting row %d: %w", len(rowSlots)-k+1, err)
		}
		// The new pane is the still-unsplit remainder.
		target = id
	}

	rowPanes, err := c.ListPanes(ctx, session)
	if err != nil {
		return nil, err
	}
	SortRowMajor(rowPanes)
	if len(rowPanes) != len(rowSlots) {
		return nil, fmt.Errorf("expected %d row panes, found %d", len(rowSlots), len(rowPanes))
	}

	for i, cols := range rowSlots {
		target := rowPanes[i].ID
		for k := cols; k > 1; k-- {
			id, err := c.SplitPane(ctx, target, false, splitPercent(k), dir, hold)
			if err != nil {
				return nil, fmt.Errorf("splitting row %d into columns: %w", i+1, err)
			}
			target = id
		}
	}

	final, err := c.ListPanes(ctx, session)
	if err != nil {
		return nil, err
	}
	SortRowMajor(final)
	return final, nil
}

// bindSlots replaces each placeholder pane's process with its slot's
// command, in row-major order. Panes are respawned in place, never
// destroyed, so the grid geometry is untouched.
func bindSlots(ctx context.Context, c *tmux.Client, panes []tmux.Pane, commands []string, dir string) error {
	if len(commands) != len(panes) {
		return fmt.Errorf("have %d commands for %d panes", len(commands), len(panes))
	}
	for i, pane := range panes {
		if err := c.RespawnPane(ctx, pane.ID, dir, commands[i]); err != nil {
			return fmt.Errorf("starting slot %d: %w", i+1, err)
		}
	}
	return nil
}

// slotCommands pads the monitor command list with fillers up to the grid's
// slot count when padding is enabled.
func slotCommands(commands []string, plan layout.Plan, padded bool, filler string) []string {
	out := append([]string(nil), commands...)
	if !padded {
		return out
	}
	for len(out) < plan.Slots() {
		out = append(out, filler)
	}
	return out
}
