package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sahithi-Kallem/invisiface/infrastructure"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/biometric"
	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	"github.com/spf13/cobra"
)

// Version is the application version.
const Version = "0.1.0"

// strength overrides PERTURBATION_STRENGTH for the offline commands when set.
var strength float64

var rootCmd = &cobra.Command{
	Use:     "invisiface",
	Short:   "Face cloaking against facial recognition",
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return infrastructure.StartServer(cmd.Context())
	},
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&strength, "strength", 0, "perturbation strength (default: PERTURBATION_STRENGTH or 0.05)")
}

// loadService builds the detector stack for a one-shot command. The caller
// must Close it.
func loadService() *biometric.Service {
	logger.InitializeLogger()
	cfg := biometric.ConfigFromEnv()
	if strength > 0 {
		cfg.PerturbationStrength = strength
	}
	return biometric.NewService(cfg)
}
