package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	port       string
	configPath string
	backendURL string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	if envPort == "" {
		envPort = "8080"
	}
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envBackend := os.Getenv("BACKEND_URL")

	cmd := &cobra.Command{
		Use:   "wedding-trivia",
		Short: "Wedding trivia quiz runner and leaderboard",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&backendURL, "backend", envBackend, "quiz backend URL (overrides config)")
	cmd.PersistentFlags().StringVar(&port, "port", envPort, "port for the serve command")
	cmd.AddCommand(NewPlayCmd(&configPath, &backendURL))
	cmd.AddCommand(NewLeaderboardCmd(&configPath, &backendURL))
	cmd.AddCommand(NewServeCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	return cmd
}
