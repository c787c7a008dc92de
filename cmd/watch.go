package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mingue/arch-audit-notify/cli"
	"github.com/mingue/arch-audit-notify/pkg/daemon"
)

// NewWatchCmd creates the `watch` command.
func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream check results from the daemon as they complete",
		Long: `Connects to the daemon's event stream and prints every status as it
arrives, starting with the current one. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			client := daemon.New("")
			events, err := client.Events(ctx)
			if err != nil {
				return err
			}

			jsonOutput := cli.GetOptions(cmd).JSONOutput
			for st := range events {
				if jsonOutput {
					data, err := json.Marshal(st)
					if err != nil {
						return err
					}
					fmt.Println(string(data))
					continue
				}
				printStatus(st)
			}
			return nil
		},
	}
}
