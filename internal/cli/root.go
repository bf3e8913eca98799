package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/muxmon/internal/config"
	"github.com/Dicklesworthstone/muxmon/internal/output"
	"github.com/Dicklesworthstone/muxmon/internal/tmux"
)

var (
	cfgFile string
	cfg     *config.Config
	sshHost string

	// Build information - set by goreleaser via ldflags
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "muxmon [monitors...]",
	Short: "Launch system monitors in an adaptive tmux pane grid",
	Long: `muxmon spawns a tmux session with one pane per system monitor and
keeps the pane grid shaped to the terminal, reflowing it live as the
window resizes.

Quick Start:
  muxmon                      # All available monitors, auto layout
  muxmon cpu mem net          # Just these three
  muxmon --layout wide --all  # Every monitor, wide cells
  muxmon list                 # Show what can run on this host

Arguments after -- are forwarded to every monitor program:
  muxmon cpu gpu -- --interval 2`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date),
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadOrDefault(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if sshHost != "" {
			cfg.Remote = sshHost
		}
		if cfg.Remote != "" {
			tmux.DefaultClient = tmux.NewClient(tmux.WithRemote(cfg.Remote))
		}
		return nil
	},
	RunE: runLaunch,
}

// Execute runs the root command and renders any error to stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			output.PrintCLIError(cliErr)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/muxmon/config.toml)")
	rootCmd.PersistentFlags().StringVar(&sshHost, "ssh", "", "run tmux on a remote host (user@host)")

	f := rootCmd.Flags()
	f.StringVarP(&launchFlags.session, "session", "s", "", "tmux session name")
	f.StringVarP(&launchFlags.layoutMode, "layout", "l", "", "layout: vertical, horizontal, square, wide, tall, aspect, auto")
	f.Float64Var(&launchFlags.stackMax, "stack-max", 0, "aspect at or below which auto stacks a single column")
	f.Float64Var(&launchFlags.tallMax, "tall-max", 0, "aspect below which auto prefers tall cells")
	f.Float64Var(&launchFlags.wideMin, "wide-min", 0, "aspect at or above which auto prefers wide cells")
	f.BoolVar(&launchFlags.pad, "pad", true, "fill trailing grid slots so rows stay uniform")
	f.BoolVar(&launchFlags.noPad, "no-pad", false, "leave the last grid row ragged")
	f.BoolVar(&launchFlags.reflow, "reflow", true, "reshape the grid on window resize")
	f.BoolVar(&launchFlags.noReflow, "no-reflow", false, "never reshape the grid after launch")
	f.DurationVar(&launchFlags.reflowInterval, "reflow-interval", -1, "minimum interval between reflows")
	f.BoolVar(&launchFlags.borders, "borders", true, "style pane borders")
	f.StringVar(&launchFlags.borderStyle, "border-style", "", "tmux style for inactive pane borders")
	f.StringVar(&launchFlags.activeBorderStyle, "active-border-style", "", "tmux style for the active pane border")
	f.BoolVar(&launchFlags.all, "all", false, "launch every monitor available on this host")
	f.BoolVarP(&launchFlags.detach, "detach", "d", false, "create the session without attaching")
	f.StringVar(&launchFlags.dir, "dir", "", "working directory for every pane")
}
