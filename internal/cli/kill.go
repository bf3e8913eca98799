package cli

import (
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/muxmon/internal/output"
	"github.com/Dicklesworthstone/muxmon/internal/tmux"
)

var killCmd = &cobra.Command{
	Use:   "kill [session]",
	Short: "Kill a monitor session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := cfg.Session
		if len(args) > 0 {
			name = args[0]
		}
		c := tmux.DefaultClient
		if !c.HasSession(name) {
			return output.NewCLIError("no such session").
				WithCause("session " + name + " is not running").
				WithHint("tmux ls shows live sessions").
				WithCode("E_NO_SESSION")
		}
		if err := c.KillSession(name); err != nil {
			return err
		}
		output.Success("killed session %q", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(killCmd)
}
