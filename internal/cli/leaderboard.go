package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"wedding-trivia/internal/backend"
	"wedding-trivia/internal/config"
	"wedding-trivia/internal/render"
)

// NewLeaderboardCmd builds the CLI subcommand that prints the standings.
func NewLeaderboardCmd(configPath, backendURL *string) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the quiz leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderboard(cmd.Context(), *configPath, *backendURL, watch)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep refreshing until interrupted")
	return cmd
}

func runLeaderboard(ctx context.Context, configPath, backendURL string, watch bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	client, err := buildClient(cfg, backendURL)
	if err != nil {
		return err
	}

	interval := config.DurationOr(cfg.Quiz.LeaderboardPoll, 5*time.Second)
	cached := backend.NewCachedLeaderboard(client, interval/2)

	show := func() {
		entries, err := cached.Leaderboard(ctx)
		if err != nil {
			_ = render.TextError(os.Stdout)
			return
		}
		_ = render.Text(os.Stdout, entries)
	}

	show()
	if !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-ticker.C:
			fmt.Println()
			show()
		}
	}
}
