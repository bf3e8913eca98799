// Package tmux drives the tmux binary, locally or over ssh.
package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// RunnerFunc executes one tmux invocation and returns trimmed stdout.
// Tests inject a scripted runner; production clients use the exec-based
// default.
type RunnerFunc func(ctx context.Context, args ...string) (string, error)

// Client handles tmux operations, optionally on a remote host.
type Client struct {
	Remote string // "user@host" or empty for local
	runner RunnerFunc
}

// Option configures a Client.
type Option func(*Client)

// WithRemote targets a remote host's tmux via ssh.
func WithRemote(host string) Option {
	return func(c *Client) { c.Remote = host }
}

// WithRunner replaces the exec-based runner, for tests.
func WithRunner(fn RunnerFunc) Option {
	return func(c *Client) { c.runner = fn }
}

// NewClient creates a new tmux client.
func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultClient is the default local client.
var DefaultClient = NewClient()

// Run executes a tmux command.
func (c *Client) Run(args ...string) (string, error) {
	return c.RunContext(context.Background(), args...)
}

// RunContext executes a tmux command with cancellation support.
func (c *Client) RunContext(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.runner != nil {
		return c.runner(ctx, args...)
	}
	if c.Remote == "" {
		return runLocalContext(ctx, args...)
	}

	// Remote execution via ssh. OpenSSH transmits a single command string
	// to the remote shell, so every argument must be quoted.
	remoteCmd := buildRemoteShellCommand("tmux", args...)
	// "--" prevents Remote from being parsed as an ssh option.
	return runSSHContext(ctx, "--", c.Remote, remoteCmd)
}

// RunSilent executes a tmux command ignoring stdout.
func (c *Client) RunSilent(args ...string) error {
	_, err := c.Run(args...)
	return err
}

// RunSilentContext executes a tmux command with cancellation support,
// ignoring stdout.
func (c *Client) RunSilentContext(ctx context.Context, args ...string) error {
	_, err := c.RunContext(ctx, args...)
	return err
}

// ShellQuote returns a POSIX-shell-safe single-quoted string.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}

	// Close-quote, escape single quote, reopen: ' -> '\''.
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func buildRemoteShellCommand(command string, args ...string) string {
	parts := make([]string, 0, 1+len(args))
	parts = append(parts, command)
	for _, arg := range args {
		parts = append(parts, ShellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func runLocalContext(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("tmux %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

func runSSHContext(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "ssh", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("ssh %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsInstalled checks if tmux is available on the target host.
func (c *Client) IsInstalled() bool {
	if c.runner != nil {
		return true
	}
	if c.Remote == "" {
		_, err := exec.LookPath("tmux")
		return err == nil
	}
	return c.RunSilent("-V") == nil
}

// InTmux returns true if currently inside a tmux session.
func InTmux() bool {
	return os.Getenv("TMUX") != ""
}
