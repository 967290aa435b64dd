package cmd

import (
	"github.com/Sahithi-Kallem/invisiface/infrastructure"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (and the Telegram bot when TELEGRAM_TOKEN is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return infrastructure.StartServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
