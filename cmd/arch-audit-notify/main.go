package main

import (
	"os"

	"github.com/mingue/arch-audit-notify/cli"
	"github.com/mingue/arch-audit-notify/cmd"
	"github.com/mingue/arch-audit-notify/version"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"arch-audit-notify",
		"Security update notifier for Arch Linux",
	)
	rootCmd.Version = version.Version
	cli.SetVersionTemplate(rootCmd, version.GetInfo())

	rootCmd.AddCommand(cmd.NewDaemonCmd())
	rootCmd.AddCommand(cmd.NewCheckCmd())
	rootCmd.AddCommand(cmd.NewStatusCmd())
	rootCmd.AddCommand(cmd.NewWatchCmd())
	rootCmd.AddCommand(cmd.NewLogsCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())
	rootCmd.AddCommand(cli.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		verbose := false
		for _, arg := range os.Args[1:] {
			if arg == "--verbose" || arg == "-v" {
				verbose = true
			}
		}
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
