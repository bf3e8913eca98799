package tmux

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Named layouts tmux can apply in a single call. The reflow path maps every
// planned grid onto one of these.
const (
	LayoutEvenVertical   = "even-vertical"
	LayoutEvenHorizontal = "even-horizontal"
	LayoutTiled          = "tiled"
)

// Hook events muxmon registers for live reflow.
const (
	HookClientResized  = "client-resized"
	HookClientAttached = "client-attached"
)

// Pane is one tmux pane with its physical position inside the window.
// Top/Left are character-cell offsets; after a series of splits they are the
// only way to recover which pane sits in which grid slot.
type Pane struct {
	ID     string
	Top    int
	Left   int
	Width  int
	Height int
	Active bool
}

// ValidateSessionName checks if a session name is valid.
func ValidateSessionName(name string) error {
	if name == "" {
		return errors.New("session name cannot be empty")
	}
	if strings.ContainsAny(name, ":./\\") {
		return errors.New("session name cannot contain ':', '.', '/', or '\\'")
	}
	return nil
}

// HasSession checks if a session exists. A non-zero exit here is a probe
// result, not an error.
func (c *Client) HasSession(name string) bool {
	return c.RunSilent("has-session", "-t", name) == nil
}

// NewSession creates a detached session sized to the caller's terminal,
// running command in the initial pane.
func (c *Client) NewSession(ctx context.Context, name string, cols, rows int, dir, command string) error {
	args := []string{"new-session", "-d", "-s", name,
		"-x", strconv.Itoa(cols), "-y", strconv.Itoa(rows)}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	if command != "" {
		args = append(args, command)
	}
	return c.RunSilentContext(ctx, args...)
}

// KillSession kills a tmux session.
func (c *Client) KillSession(name string) error {
	return c.RunSilent("kill-session", "-t", name)
}

// ListPanes returns every pane in the session with its physical position,
// in tmux's own (index) order. Callers needing row-major order must sort by
// (Top, Left) themselves.
func (c *Client) ListPanes(ctx context.Context, session string) ([]Pane, error) {
	sep := "|===|"
	format := fmt.Sprintf("#{pane_id}%[1]s#{pane_top}%[1]s#{pane_left}%[1]s#{pane_width}%[1]s#{pane_height}%[1]s#{pane_active}", sep)
	output, err := c.RunContext(ctx, "list-panes", "-s", "-t", session, "-F", format)
	if err != nil {
		return nil, err
	}

	var panes []Pane
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, sep)
		if len(parts) < 6 {
			continue
		}

		top, _ := strconv.Atoi(parts[1])
		left, _ := strconv.Atoi(parts[2])
		width, _ := strconv.Atoi(parts[3])
		height, _ := strconv.Atoi(parts[4])

		panes = append(panes, Pane{
			ID:     parts[0],
			Top:    top,
			Left:   left,
			Width:  width,
			Height: height,
			Active: parts[5] == "1",
		})
	}
	return panes, nil
}

// SplitPane splits the target pane and returns the new pane's ID. vertical
// splits stack the new pane below the target; horizontal places it to the
// right. percent is the share of the target's area the new pane receives.
func (c *Client) SplitPane(ctx context.Context, target string, vertical bool, percent int, dir, command string) (string, error) {
	direction := "-h"
	if vertical {
		direction = "-v"
	}
	args := []string{"split-window", "-t", target, direction,
		"-l", fmt.Sprintf("%d%%", percent),
		"-P", "-F", "#{pane_id}"}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	if command != "" {
		args = append(args, command)
	}
	return c.RunContext(ctx, args...)
}

// RespawnPane replaces the process running in a pane without destroying the
// pane itself.
func (c *Client) RespawnPane(ctx context.Context, paneID, dir, command string) error {
	args := []string{"respawn-pane", "-k", "-t", paneID}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	if command != "" {
		args = append(args, command)
	}
	return c.RunSilentContext(ctx, args...)
}

// SelectLayout applies a named layout to the session's window.
func (c *Client) SelectLayout(session, layout string) error {
	return c.RunSilent("select-layout", "-t", session, layout)
}

// SelectPane focuses a pane.
func (c *Client) SelectPane(paneID string) error {
	return c.RunSilent("select-pane", "-t", paneID)
}

// SetOption sets a session option.
func (c *Client) SetOption(session, key, value string) error {
	return c.RunSilent("set-option", "-t", session, key, value)
}

// SetWindowOption sets a window option on the session's window.
func (c *Client) SetWindowOption(session, key, value string) error {
	return c.RunSilent("set-option", "-w", "-t", session, key, value)
}

// SetHook installs a session hook that runs the given shell command when
// the event fires.
func (c *Client) SetHook(session, event, command string) error {
	return c.RunSilent("set-hook", "-t", session, event,
		fmt.Sprintf("run-shell %s", ShellQuote(command)))
}

// UnsetHook removes a session hook. Removing an absent hook is not an
// error.
func (c *Client) UnsetHook(session, event string) {
	_ = c.RunSilent("set-hook", "-u", "-t", session, event)
}

// WindowSize returns the character-cell size of the session's window.
func (c *Client) WindowSize(session string) (cols, rows int, err error) {
	output, err := c.Run("display-message", "-p", "-t", session, "#{window_width} #{window_height}")
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(output)
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("unexpected window size output %q", output)
	}
	cols, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parsing window width: %w", err)
	}
	rows, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parsing window height: %w", err)
	}
	return cols, rows, nil
}

// AttachOrSwitch attaches to a session or switches if already in tmux.
func (c *Client) AttachOrSwitch(session string) error {
	if c.Remote == "" {
		if InTmux() {
			return c.RunSilent("switch-client", "-t", session)
		}
		if c.runner != nil {
			return c.RunSilent("attach-session", "-t", session)
		}
		// Interactive attach needs stdin/stdout, so exec directly for local.
		cmd := exec.Command("tmux", "attach-session", "-t", session)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}

	// ssh -t user@host tmux attach-session -t session
	remoteCmd := buildRemoteShellCommand("tmux", "attach-session", "-t", session)
	sshArgs := []string{"-t", "--", c.Remote, remoteCmd}
	cmd := exec.Command("ssh", sshArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
