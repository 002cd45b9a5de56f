package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/printerm/printerm/internal/cli"
	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(style.ErrorIndicator+" "+userMessage(err)))
		if errors.IsErrorCode(err, errors.ErrConfigValid) {
			fmt.Fprintln(os.Stderr, cli.MsgPrinterNotSetTip)
		}
		os.Exit(1)
	}
}

// userMessage strips the [CODE] prefix; the code matters in logs and
// API responses, not on a terminal.
func userMessage(err error) string {
	var perr *errors.PrintermError
	if stderrors.As(err, &perr) {
		return perr.Message
	}
	return err.Error()
}
