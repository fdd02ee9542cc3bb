package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"salience/internal/daemon"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP summarization server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if value := strings.TrimSpace(bind); value != "" {
				cfg.API.Bind = value
			}

			svc, closeFn, err := ctx.openService(serviceOptions{})
			if err != nil {
				return err
			}
			defer closeFn()

			d, err := daemon.New(cfg, svc, ctx.log(), daemon.WithVersion(version))
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return d.Run(runCtx)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (default from [api] bind)")
	return cmd
}
