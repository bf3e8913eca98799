package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/muxmon/internal/layout"
	"github.com/Dicklesworthstone/muxmon/internal/reflow"
	"github.com/Dicklesworthstone/muxmon/internal/tmux"
)

var reflowFlags struct {
	session  string
	layout   string
	stackMax float64
	tallMax  float64
	wideMin  float64
	pad      bool
	interval time.Duration
}

// reflowCmd is the hook re-entry point. tmux invokes it on resize and
// attach events; it must never fail loudly because a hook error would
// surface inside the user's session.
var reflowCmd = &cobra.Command{
	Use:    "reflow",
	Short:  "Reshape a session's pane grid to its current window size",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := layout.ParseMode(reflowFlags.layout)
		if err != nil {
			fmt.Fprintln(os.Stderr, "muxmon reflow:", err)
			return nil
		}
		th := layout.Thresholds{
			StackMax: reflowFlags.stackMax,
			TallMax:  reflowFlags.tallMax,
			WideMin:  reflowFlags.wideMin,
		}
		if err := th.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "muxmon reflow:", err)
			return nil
		}

		p := reflow.Params{
			Session:     reflowFlags.session,
			Mode:        mode,
			Thresholds:  th,
			Padding:     reflowFlags.pad,
			MinInterval: reflowFlags.interval,
		}
		if err := reflow.Apply(cmd.Context(), tmux.DefaultClient, reflow.NewGate(""), p); err != nil {
			// Report but exit 0: a missed reflow is cosmetic.
			fmt.Fprintln(os.Stderr, "muxmon reflow:", err)
		}
		return nil
	},
}

func init() {
	f := reflowCmd.Flags()
	f.StringVar(&reflowFlags.session, "session", "", "session to reshape")
	f.StringVar(&reflowFlags.layout, "layout", "auto", "layout mode recorded at launch")
	f.Float64Var(&reflowFlags.stackMax, "stack-max", 0.95, "stack threshold recorded at launch")
	f.Float64Var(&reflowFlags.tallMax, "tall-max", 1.25, "tall threshold recorded at launch")
	f.Float64Var(&reflowFlags.wideMin, "wide-min", 2.40, "wide threshold recorded at launch")
	f.BoolVar(&reflowFlags.pad, "pad", true, "padding recorded at launch")
	f.DurationVar(&reflowFlags.interval, "interval", 0, "minimum interval between reflows")
	_ = reflowCmd.MarkFlagRequired("session")

	rootCmd.AddCommand(reflowCmd)
}
