package cmd

import (
	"github.com/emrgen/doctrack/internal/server"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd())
}

func serveCmd() *cobra.Command {
	var port string

	command := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				cfg.Server.HTTPPort = port
			}

			return server.Start(cfg)
		},
	}

	command.Flags().StringVar(&port, "port", "", "http port (default from config)")

	return command
}
