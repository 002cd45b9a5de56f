package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printerm/printerm/pkg/config"
	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/ui"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: MsgSettingsShort,
		Long: `Settings shows the effective configuration and changes individual
values in the configuration file. Values not set in the file fall back
to defaults and can be overridden with PRINTERM_* environment
variables.`,
	}

	cmd.AddCommand(newSettingsShowCmd(a))
	cmd.AddCommand(newSettingsSetIPCmd(a))
	cmd.AddCommand(newSettingsSetCharsCmd(a))
	cmd.AddCommand(newSettingsSetSpecialCmd(a))
	cmd.AddCommand(newSettingsSetUpdatesCmd(a))
	return cmd
}

type settingsOutput struct {
	IPAddress            string `json:"ip_address"`
	CharsPerLine         int    `json:"chars_per_line"`
	EnableSpecialLetters bool   `json:"enable_special_letters"`
	CheckForUpdates      bool   `json:"check_for_updates"`
	WebPort              int    `json:"web_port"`
	HistoryEnabled       bool   `json:"history_enabled"`
	ConfigFile           string `json:"config_file"`
}

func newSettingsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Short:   "Show the effective configuration",
		Example: `  printerm settings show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			out := settingsOutput{
				IPAddress:            cfg.Printer.IPAddress,
				CharsPerLine:         cfg.CharsPerLine(),
				EnableSpecialLetters: cfg.Printer.EnableSpecialLetters,
				CheckForUpdates:      cfg.Updates.CheckForUpdates,
				WebPort:              cfg.WebPort(),
				HistoryEnabled:       cfg.History.Enabled,
				ConfigFile:           a.paths.ConfigFilePath(),
			}
			if a.output == ui.FormatJSON {
				return printJSON(out)
			}

			address := out.IPAddress
			if address == "" {
				address = "(not set)"
			}
			fmt.Printf("Printer address:    %s\n", address)
			fmt.Printf("Chars per line:     %d\n", out.CharsPerLine)
			fmt.Printf("Special letters:    %s\n", onOff(out.EnableSpecialLetters))
			fmt.Printf("Check for updates:  %s\n", onOff(out.CheckForUpdates))
			fmt.Printf("Web port:           %d\n", out.WebPort)
			fmt.Printf("History:            %s\n", onOff(out.HistoryEnabled))
			fmt.Printf("Config file:        %s\n", out.ConfigFile)
			return nil
		},
	}
}

func newSettingsSetIPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "set-ip <address>",
		Short:   "Set the printer's network address",
		Example: `  printerm settings set-ip 192.168.1.50`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.saveSetting("printer.ip_address", args[0])
		},
	}
}

func newSettingsSetCharsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "set-chars-per-line <n>",
		Short:   "Set the printable line width in characters",
		Example: `  printerm settings set-chars-per-line 48`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return errors.New(errors.ErrInvalidInput, "Invalid number for chars per line.")
			}
			return a.saveSetting("printer.chars_per_line", n)
		},
	}
}

func newSettingsSetSpecialCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "set-special-letters <on|off>",
		Short:   "Toggle transliteration-free printing of accented letters",
		Example: `  printerm settings set-special-letters on`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			return a.saveSetting("printer.enable_special_letters", v)
		},
	}
}

func newSettingsSetUpdatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "set-check-updates <on|off>",
		Short:   "Toggle the update check after printing",
		Example: `  printerm settings set-check-updates off`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			return a.saveSetting("updates.check_for_updates", v)
		},
	}
}

func (a *app) saveSetting(key string, value any) error {
	if err := a.init(); err != nil {
		return err
	}
	if err := config.SetValue(a.paths.ConfigFilePath(), key, value); err != nil {
		return err
	}
	fmt.Printf(MsgSettingSaved, key, value)
	return nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.Newf(errors.ErrInvalidInput, "Invalid value '%s', expected on or off", s)
	}
	return v, nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
