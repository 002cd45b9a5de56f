package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/printerm/printerm/internal/version"
	"github.com/printerm/printerm/pkg/ui"
	"github.com/printerm/printerm/pkg/updates"
)

type updateOutput struct {
	Current   string `json:"current"`
	Latest    string `json:"latest"`
	Available bool   `json:"available"`
}

func newUpdateCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update-check",
		Short: MsgUpdateShort,
		Long: `Update-check asks the release feed for the newest printerm version and
compares it with this build. It always checks, regardless of the
updates.check_for_updates setting.`,
		Example: `  printerm update-check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := updates.NewChecker("").Check(cmd.Context(), version.Version)
			if err != nil {
				return err
			}

			if a.output == ui.FormatJSON {
				return printJSON(updateOutput{
					Current:   result.Current,
					Latest:    result.Latest,
					Available: result.Available,
				})
			}
			if result.Available {
				fmt.Printf(MsgUpdateAvailable, result.Latest, result.Current)
			} else {
				fmt.Printf(MsgUpToDate, result.Current)
			}
			return nil
		},
	}
}
