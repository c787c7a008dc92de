package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/mingue/arch-audit-notify/cli"
	"github.com/mingue/arch-audit-notify/internal/notifier"
	"github.com/mingue/arch-audit-notify/pkg/daemon"
)

// NewStatusCmd creates the `status` command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the daemon's latest check result",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := daemon.New("")
			snap, err := client.Status(cmd.Context())
			if err != nil {
				return err
			}

			if opts := cli.GetOptions(cmd); opts.JSONOutput {
				data, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			printStatus(snap.Status)
			if !snap.Status.CheckedAt.IsZero() {
				fmt.Printf("Checked: %s\n", snap.Status.CheckedAt.Format(time.RFC1123))
			}
			fmt.Printf("Checks since start: %d\n", snap.Checks)
			return nil
		},
	}
}

// printStatus renders one status line, colorized when stdout is a terminal,
// followed by the affected packages if any.
func printStatus(st notifier.Status) {
	out := termenv.NewOutput(os.Stdout)

	var styled termenv.Style
	switch st.Icon() {
	case notifier.IconAlert:
		styled = out.String(st.Text()).Foreground(out.Color("3")).Bold()
	case notifier.IconCross:
		styled = out.String(st.Text()).Foreground(out.Color("1")).Bold()
	default:
		styled = out.String(st.Text()).Foreground(out.Color("2"))
	}
	fmt.Println(styled)

	for _, update := range st.Updates {
		fmt.Printf("  %s\n    %s\n", update.Text, out.String(update.Link).Faint())
	}
}
