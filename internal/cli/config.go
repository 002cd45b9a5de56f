package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/printerm/printerm/pkg/errors"
)

// configSkeleton is written when the user edits a config file that
// does not exist yet, so the editor opens on something to uncomment.
const configSkeleton = `# printerm configuration

[printer]
# ip_address = "192.168.1.50"
# chars_per_line = 32
# enable_special_letters = false

[updates]
# check_for_updates = true
`

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
	}

	cmd.AddCommand(newConfigEditCmd(a))
	cmd.AddCommand(newConfigPathCmd(a))
	return cmd
}

func newConfigEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "edit",
		Short:   "Open the configuration file in $EDITOR",
		Example: `  printerm config edit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			path := a.paths.ConfigFilePath()
			if err := ensureConfigFile(path); err != nil {
				return err
			}

			parts := strings.Fields(editorCommand())
			if len(parts) == 0 {
				parts = []string{"vi"}
			}
			editor := exec.CommandContext(cmd.Context(), parts[0], append(parts[1:], path)...)
			editor.Stdin = os.Stdin
			editor.Stdout = os.Stdout
			editor.Stderr = os.Stderr
			if err := editor.Run(); err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "Editor '%s' failed", parts[0])
			}
			return nil
		},
	}
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "path",
		Short:   "Print the configuration file path",
		Example: `  printerm config path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.init(); err != nil {
				return err
			}
			fmt.Println(a.paths.ConfigFilePath())
			return nil
		},
	}
}

func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "Cannot create the config directory")
	}
	if err := os.WriteFile(path, []byte(configSkeleton), 0o644); err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "Cannot create the config file")
	}
	return nil
}

// editorCommand resolves the editor the way git does: $VISUAL, then
// $EDITOR, then vi.
func editorCommand() string {
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return "vi"
}
