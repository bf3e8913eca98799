package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/muxmon/internal/layout"
	"github.com/Dicklesworthstone/muxmon/internal/monitor"
	"github.com/Dicklesworthstone/muxmon/internal/output"
	"github.com/Dicklesworthstone/muxmon/internal/reflow"
	"github.com/Dicklesworthstone/muxmon/internal/session"
	"github.com/Dicklesworthstone/muxmon/internal/tmux"
)

var launchFlags struct {
	session           string
	layoutMode        string
	stackMax          float64
	tallMax           float64
	wideMin           float64
	pad               bool
	noPad             bool
	reflow            bool
	noReflow          bool
	reflowInterval    time.Duration
	borders           bool
	borderStyle       string
	activeBorderStyle string
	all               bool
	detach            bool
	dir               string
}

// runLaunch is the root action: resolve monitors, plan the grid, and
// reconcile the tmux session toward it.
func runLaunch(cmd *cobra.Command, args []string) error {
	c := tmux.DefaultClient

	if !c.IsInstalled() {
		return output.NewCLIError("tmux not found").
			WithCause("muxmon drives tmux and cannot run without it").
			WithHint("install tmux (apt install tmux / brew install tmux)").
			WithCode("E_NO_TMUX")
	}

	sessionName := launchFlags.session
	if sessionName == "" {
		sessionName = cfg.Session
	}
	if err := tmux.ValidateSessionName(sessionName); err != nil {
		return output.NewCLIError("invalid session name").
			WithCause(err.Error()).
			WithCode("E_SESSION_NAME")
	}

	// Positional args split at "--": monitors before, passthrough after.
	monitors := args
	var passthrough []string
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		monitors = args[:at]
		passthrough = args[at:]
	}

	providers, err := resolveProviders(monitors, launchFlags.all)
	if err != nil {
		return err
	}

	mode, th, err := layoutParams(cmd)
	if err != nil {
		return err
	}

	padding := resolveToggle(cmd, "pad", "no-pad", cfg.Layout.Padding)
	doReflow := resolveToggle(cmd, "reflow", "no-reflow", cfg.Reflow.Enabled)
	interval := cfg.ReflowInterval()
	if cmd.Flags().Changed("reflow-interval") {
		if launchFlags.reflowInterval < 0 {
			return output.NewCLIError("invalid --reflow-interval").
				WithCause("interval must be zero or positive").
				WithCode("E_VALIDATION")
		}
		interval = launchFlags.reflowInterval
	}

	borders := cfg.Borders.Enabled
	if cmd.Flags().Changed("borders") {
		borders = launchFlags.borders
	}
	borderStyle := cfg.Borders.Style
	if launchFlags.borderStyle != "" {
		borderStyle = launchFlags.borderStyle
	}
	activeStyle := cfg.Borders.ActiveStyle
	if launchFlags.activeBorderStyle != "" {
		activeStyle = launchFlags.activeBorderStyle
	}

	// Hooks run on the host where the tmux server lives; over ssh the
	// muxmon binary may not exist there, so live reflow stays off.
	if doReflow && cfg.Remote != "" {
		output.Warn("live reflow is disabled for remote sessions")
		doReflow = false
	}

	commands := make([]string, 0, len(providers))
	for _, p := range providers {
		program, named := cfg.Monitors.Program, true
		if override := cfg.Monitors.Overrides[p.Name]; override != "" {
			program, named = override, false
		}
		extra := append(append([]string(nil), cfg.Monitors.Args...), passthrough...)
		commands = append(commands, p.Command(program, named, extra))
	}

	var hook string
	if doReflow {
		hook = reflowHookCommand(sessionName, mode, th, padding, interval)
	}

	opts := session.Options{
		Session:           sessionName,
		Dir:               launchFlags.dir,
		Mode:              mode,
		Thresholds:        th,
		Geometry:          terminalGeometry(),
		Padding:           padding,
		Commands:          commands,
		Filler:            monitor.FillerCommand(),
		Borders:           borders,
		BorderStyle:       borderStyle,
		ActiveBorderStyle: activeStyle,
		Reflow:            doReflow,
		ReflowHook:        hook,
		Attach:            !launchFlags.detach,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Reconcile(ctx, c, reflow.NewGate(""), opts); err != nil {
		return err
	}
	if launchFlags.detach {
		output.Success("session %q ready with %d monitors", sessionName, len(providers))
		output.Info("attach with: %s", output.Bold("tmux attach -t "+sessionName))
	}
	return nil
}

// resolveProviders maps CLI monitor names to providers. No names and no
// --all means everything the host can run.
func resolveProviders(names []string, all bool) ([]monitor.Provider, error) {
	if all || len(names) == 0 {
		available := monitor.Available()
		if len(available) == 0 {
			return nil, output.NewCLIError("no monitors available on this host").
				WithCause("none of the monitor data sources were found").
				WithHint("muxmon list shows each monitor's availability").
				WithCode("E_NO_MONITORS")
		}
		return available, nil
	}

	seen := make(map[string]bool, len(names))
	var providers []monitor.Provider
	for _, name := range names {
		p, err := monitor.Resolve(name)
		if err != nil {
			return nil, output.NewCLIError("unknown monitor").
				WithCause(err.Error()).
				WithHint("muxmon list shows valid monitor names").
				WithCode("E_UNKNOWN_MONITOR")
		}
		if !p.CanRun() {
			return nil, output.NewCLIError(fmt.Sprintf("monitor %q cannot run on this host", p.Name)).
				WithCause("its data source was not found").
				WithHint("muxmon list shows each monitor's availability").
				WithCode("E_MONITOR_UNAVAILABLE")
		}
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		providers = append(providers, p)
	}
	return providers, nil
}

// layoutParams merges layout flags over config and validates the result.
func layoutParams(cmd *cobra.Command) (layout.Mode, layout.Thresholds, error) {
	modeStr := cfg.Layout.Mode
	if launchFlags.layoutMode != "" {
		modeStr = launchFlags.layoutMode
	}
	mode, err := layout.ParseMode(modeStr)
	if err != nil {
		return layout.Mode{}, layout.Thresholds{}, output.NewCLIError("invalid layout").
			WithCause(err.Error()).
			WithCode("E_VALIDATION")
	}

	th := layout.Thresholds{
		StackMax: cfg.Layout.StackMax,
		TallMax:  cfg.Layout.TallMax,
		WideMin:  cfg.Layout.WideMin,
	}
	if cmd.Flags().Changed("stack-max") {
		th.StackMax = launchFlags.stackMax
	}
	if cmd.Flags().Changed("tall-max") {
		th.TallMax = launchFlags.tallMax
	}
	if cmd.Flags().Changed("wide-min") {
		th.WideMin = launchFlags.wideMin
	}
	if err := th.Validate(); err != nil {
		return layout.Mode{}, layout.Thresholds{}, output.NewCLIError("invalid aspect thresholds").
			WithCause(err.Error()).
			WithCode("E_VALIDATION")
	}
	return mode, th, nil
}

// resolveToggle merges a --flag / --no-flag pair over a config default.
// The negative form wins when both are given.
func resolveToggle(cmd *cobra.Command, pos, neg string, def bool) bool {
	v := def
	if cmd.Flags().Changed(pos) {
		v, _ = cmd.Flags().GetBool(pos)
	}
	if cmd.Flags().Changed(neg) {
		if n, _ := cmd.Flags().GetBool(neg); n {
			v = false
		}
	}
	return v
}

// terminalGeometry sizes the session to the launching terminal, falling
// back to a conventional 80x24 when stdout is not a tty.
func terminalGeometry() layout.Geometry {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return layout.Geometry{Cols: 80, Rows: 24}
	}
	return layout.Geometry{Cols: cols, Rows: rows}
}

// reflowHookCommand builds the shell command tmux runs on resize/attach.
// Hook invocations are separate processes, so the full layout selection
// rides on the command line.
func reflowHookCommand(sessionName string, mode layout.Mode, th layout.Thresholds, padding bool, interval time.Duration) string {
	exe, err := os.Executable()
	if err != nil {
		exe = "muxmon"
	}
	parts := []string{
		tmux.ShellQuote(exe), "reflow",
		"--session", tmux.ShellQuote(sessionName),
		"--layout", mode.String(),
		"--stack-max", fmt.Sprintf("%g", th.StackMax),
		"--tall-max", fmt.Sprintf("%g", th.TallMax),
		"--wide-min", fmt.Sprintf("%g", th.WideMin),
		fmt.Sprintf("--pad=%t", padding),
		"--interval", interval.String(),
	}
	return strings.Join(parts, " ")
}
