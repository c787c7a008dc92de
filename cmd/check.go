package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mingue/arch-audit-notify/pkg/daemon"
)

// NewCheckCmd creates the `check` command.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Ask the running daemon to check for security updates",
		Long: `Queues a check on the running daemon and returns immediately. The result
is visible via 'status', 'watch' or the tray icon once the check completes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := daemon.New("")
			if err := client.Check(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Check queued")
			return nil
		},
	}
}
