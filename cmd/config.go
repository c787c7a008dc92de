package cmd

import (
	"encoding/json"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/mingue/arch-audit-notify/cli"
	"github.com/mingue/arch-audit-notify/config"
	"github.com/mingue/arch-audit-notify/logging"
)

// resolvedConfig is the printable form of a loaded configuration, with the
// validated theme back in its config-file field.
type resolvedConfig struct {
	IconTheme string               `toml:"icon_theme" json:"icon_theme"`
	Checker   config.CheckerConfig `toml:"checker" json:"checker"`
	Watch     config.WatchConfig   `toml:"watch" json:"watch"`
	TrayOn    bool                 `toml:"tray_enabled" json:"tray_enabled"`
	Log       logging.Config       `toml:"log" json:"log"`
	File      string               `toml:"-" json:"config_file,omitempty"`
}

// NewConfigCmd creates the `config` command.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long:  "Prints the configuration the daemon would run with: file values merged with defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)
			cfg, err := cli.LoadConfig(cmd, logger)
			if err != nil {
				return err
			}

			resolved := resolvedConfig{
				IconTheme: cfg.IconTheme.String(),
				Checker:   cfg.Checker,
				Watch:     cfg.Watch,
				TrayOn:    cfg.TrayEnabled(),
				Log:       cfg.Log,
				File:      config.FindConfigFile(),
			}

			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(resolved, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if resolved.File != "" {
				fmt.Printf("# %s\n", resolved.File)
			} else {
				fmt.Println("# no config file, defaults")
			}
			data, err := toml.Marshal(resolved)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}
