package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/muxmon/internal/monitor"
	"github.com/Dicklesworthstone/muxmon/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List monitors and whether they can run on this host",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range monitor.All() {
			mark := "✗"
			if p.CanRun() {
				mark = "✓"
			}
			name := p.Name
			if len(p.Aliases) > 0 {
				name += output.Dim(" (" + strings.Join(p.Aliases, ", ") + ")")
			}
			fmt.Printf("  %s %-28s %s\n", mark, name, output.Dim(p.Title))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
