package session

import (
	"context"
	"fmt"

	"github.com/Dicklesworthstone/muxmon/internal/layout"
	"github.com/Dicklesworthstone/muxmon/internal/reflow"
	"github.com/Dicklesworthstone/muxmon/internal/tmux"
)

// Options describes the desired session state.
type Options struct {
	Session    string
	Dir        string
	Mode       layout.Mode
	Thresholds layout.Thresholds
	Geometry   layout.Geometry
	Padding    bool

	// Commands are the monitor shell commands in slot order; Filler holds
	// unused padded slots open.
	Commands []string
	Filler   string

	Borders           bool
	BorderStyle       string
	ActiveBorderStyle string

	// ReflowHook is the shell command tmux runs on resize/attach events;
	// empty (or Reflow false) removes any installed hooks.
	Reflow     bool
	ReflowHook string

	// Attach switches or attaches the controlling terminal after
	// reconciling. Disabled in tests.
	Attach bool
}

// Reconcile drives the session to the desired state. An existing session is
// never rebuilt: its content processes stay untouched and only cosmetic
// options and hook registration are reapplied before attaching. A missing
// session is built fresh; any failure mid-build tears the partial session
// down so a failed launch never leaves a broken half session behind.
func Reconcile(ctx context.Context, c *tmux.Client, gate *reflow.Gate, opts Options) error {
	if c.HasSession(opts.Session) {
		if err := applyOptions(c, opts); err != nil {
			return err
		}
		if err := syncHooks(c, opts); err != nil {
			return err
		}
		if opts.Attach {
			return c.AttachOrSwitch(opts.Session)
		}
		return nil
	}

	if err := build(ctx, c, opts); err != nil {
		_ = c.KillSession(opts.Session)
		return fmt.Errorf("building session %q: %w", opts.Session, err)
	}
	if err := applyOptions(c, opts); err != nil {
		_ = c.KillSession(opts.Session)
		return fmt.Errorf("configuring session %q: %w", opts.Session, err)
	}
	if err := syncHooks(c, opts); err != nil {
		_ = c.KillSession(opts.Session)
		return fmt.Errorf("configuring session %q: %w", opts.Session, err)
	}

	// The first reflow after a fresh build always applies.
	gate.Clear(opts.Session)

	if opts.Attach {
		return c.AttachOrSwitch(opts.Session)
	}
	return nil
}

func build(ctx context.Context, c *tmux.Client, opts Options) error {
	if len(opts.Commands) == 0 {
		return fmt.Errorf("no monitor commands to launch")
	}
	if opts.Mode.Linear {
		return buildLinear(ctx, c, opts)
	}

	count := len(opts.Commands)
	plan := layout.PlanGrid(count, opts.Mode.Sub, opts.Geometry, opts.Thresholds, opts.Padding)
	rows := layout.RowSlots(plan, count, opts.Padding)

	if err := c.NewSession(ctx, opts.Session, opts.Geometry.Cols, opts.Geometry.Rows, opts.Dir, opts.Filler); err != nil {
		return err
	}
	panes, err := buildGrid(ctx, c, opts.Session, rows, opts.Dir, opts.Filler)
	if err != nil {
		return err
	}
	commands := slotCommands(opts.Commands, plan, opts.Padding, opts.Filler)
	if err := bindSlots(ctx, c, panes, commands, opts.Dir); err != nil {
		return err
	}
	if len(panes) > 0 {
		if err := c.SelectPane(panes[0].ID); err != nil {
			return err
		}
	}
	return nil
}

// buildLinear chains simple splits, one pane per monitor, and evens them
// out with a named layout.
func buildLinear(ctx context.Context, c *tmux.Client, opts Options) error {
	vertical := opts.Mode.Direction == layout.Vertical
	named := tmux.LayoutEvenVertical
	if !vertical {
		named = tmux.LayoutEvenHorizontal
	}

	if err := c.NewSession(ctx, opts.Session, opts.Geometry.Cols, opts.Geometry.Rows, opts.Dir, opts.Commands[0]); err != nil {
		return err
	}
	target := opts.Session
	for i, cmd := range opts.Commands[1:] {
		remaining := len(opts.Commands) - 1 - i
		id, err := c.SplitPane(ctx, target, vertical, splitPercent(remaining+1), opts.Dir, cmd)
		if err != nil {
			return fmt.Errorf("splitting pane %d: %w", i+2, err)
		}
		target = id
	}
	return c.SelectLayout(opts.Session, named)
}

// applyOptions reapplies cosmetic session options. Safe to run repeatedly
// against a live session.
func applyOptions(c *tmux.Client, opts Options) error {
	if err := c.SetOption(opts.Session, "status", "off"); err != nil {
		return err
	}
	if err := c.SetWindowOption(opts.Session, "window-size", "latest"); err != nil {
		return err
	}

	border, active := "fg=default", "fg=default"
	if opts.Borders {
		border, active = opts.BorderStyle, opts.ActiveBorderStyle
	}
	if err := c.SetWindowOption(opts.Session, "pane-border-style", border); err != nil {
		return err
	}
	return c.SetWindowOption(opts.Session, "pane-active-border-style", active)
}

// syncHooks adds or removes the live-reflow hooks according to the current
// flags. A failed installation is reported: succeeding here is the only
// guarantee the caller has that reflow is live. Removal stays best effort.
func syncHooks(c *tmux.Client, opts Options) error {
	events := []string{tmux.HookClientResized, tmux.HookClientAttached}
	if opts.Reflow && opts.ReflowHook != "" {
		for _, ev := range events {
			if err := c.SetHook(opts.Session, ev, opts.ReflowHook); err != nil {
				return fmt.Errorf("installing %s hook: %w", ev, err)
			}
		}
		return nil
	}
	for _, ev := range events {
		c.UnsetHook(opts.Session, ev)
	}
	return nil
}
