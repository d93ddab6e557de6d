package main

import (
	"github.com/spf13/cobra"

	"smart-ats/internal/bootstrap"
	"smart-ats/internal/shared/config"
	"smart-ats/internal/shared/server"
)

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyze API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			app, err := bootstrap.Build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return server.Run(cmd.Context(), server.Addr(cfg.Port), app.Router)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}
