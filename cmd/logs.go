package cmd

import (
	"fmt"
	"os"

	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"

	"github.com/mingue/arch-audit-notify/logging"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the daemon log",
		Long: `Prints the daemon's log file. With -f the command keeps running and
follows new lines, surviving log file truncation and recreation.`,
		RunE: runLogsE,
	}

	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().String("component", "notifyd", "Component log to show")

	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	component, _ := cmd.Flags().GetString("component")
	follow, _ := cmd.Flags().GetBool("follow")

	path := logging.FilePath(component)
	if path == "" {
		return fmt.Errorf("could not resolve the log directory")
	}

	if !follow {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "No log file yet at %s\n", path)
				return nil
			}
			return err
		}
		os.Stdout.Write(data)
		return nil
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow: true,
		// The daemon recreates the file on restart; keep tailing across that.
		ReOpen: true,
		Logger: tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to tail %s: %w", path, err)
	}
	defer t.Cleanup()

	for line := range t.Lines {
		if line.Err != nil {
			return line.Err
		}
		fmt.Println(line.Text)
	}
	return nil
}
