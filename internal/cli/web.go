package cli

import (
	"fmt"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/printerm/printerm/pkg/web"
)

func newWebCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "web",
		Short: MsgWebShort,
		Long: `Web serves the JSON API: template listing, preview, validation,
printing and settings. The server reads its configuration from the
same file as the CLI and picks up changes without restarting.`,
		Example: `  # Listen on the configured port (web.port, default 5555)
  printerm web

  # Listen somewhere else
  printerm web --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			store, err := a.store()
			if err != nil {
				return err
			}
			hist, err := a.openHistory(cfg)
			if err != nil {
				return err
			}
			if hist != nil {
				defer func() { _ = hist.Close() }()
			}

			server, err := web.NewServer(web.Options{
				Templates:  store,
				Renderer:   a.renderer(cfg),
				History:    hist,
				ConfigPath: a.paths.ConfigFilePath(),
			})
			if err != nil {
				return err
			}

			if port == 0 {
				port = cfg.WebPort()
			}
			addr := fmt.Sprintf(":%d", port)
			fmt.Printf(MsgWebListening, net.JoinHostPort("localhost", strconv.Itoa(port)))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, addr)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, FlagPortDesc)
	return cmd
}
