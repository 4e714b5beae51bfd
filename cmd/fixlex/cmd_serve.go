package main

import (
	"os/signal"
	"syscall"

	"github.com/danmuck/fixlex/internal/config"
	"github.com/danmuck/fixlex/internal/observability"
	"github.com/danmuck/fixlex/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.ListenAddr = addr
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			logger := observability.InitLogger("fixlex")
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New("fixlex", cfg, logger).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides listen_addr)")
	return cmd
}
