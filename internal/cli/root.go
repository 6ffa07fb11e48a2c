package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	port       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	// .env is optional; real environment variables still win
	_ = godotenv.Load()
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "feud-board",
		Short:        "Host-driven survey quiz board",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&port, "port", "", "port to listen on (overrides config)")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewImportCmd(&configPath))
	return cmd
}
