package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"wedding-trivia/internal/app"
	"wedding-trivia/internal/config"
	"wedding-trivia/internal/domain"
	"wedding-trivia/internal/render"
)

// NewPlayCmd builds the CLI subcommand that runs an interactive quiz session.
func NewPlayCmd(configPath, backendURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the wedding trivia quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath, *backendURL)
		},
	}
}

func runPlay(ctx context.Context, configPath, backendURL string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	client, err := buildClient(cfg, backendURL)
	if err != nil {
		return err
	}

	source, cleanup, err := buildQuestionSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	qs, err := source.Load(ctx)
	if err != nil {
		fmt.Println("The quiz questions could not be loaded. Please try again later.")
		return fmt.Errorf("load questions: %w", err)
	}
	if len(qs) == 0 {
		fmt.Println("The quiz questions could not be loaded. Please try again later.")
		return domain.ErrNoQuestions
	}

	ctrl := app.NewController(client, buildProfileStore(cfg), qs, controllerConfig(cfg))
	defer ctrl.Close()

	// One goroutine owns stdin; everything else reads from the channel so
	// forced-advance events can interrupt a blocked prompt.
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		registered, err := register(ctx, ctrl, lines)
		if err != nil {
			return err
		}
		if !registered {
			return nil
		}
		showRules(len(qs), controllerConfig(cfg))
		fmt.Println("Press Enter to start.")
		if _, open := readLine(ctx, lines); !open {
			return nil
		}
		if err := ctrl.Begin(ctx); err != nil {
			return err
		}

		if err := playQuestions(ctx, ctrl, lines, len(qs)); err != nil {
			return err
		}
		if err := showResults(ctx, ctrl); err != nil {
			return err
		}

		fmt.Print("\nPlay again? [y/N]: ")
		answer, open := readLine(ctx, lines)
		if !open || !strings.EqualFold(strings.TrimSpace(answer), "y") {
			return nil
		}
		ctrl.Restart()
	}
}

func readLine(ctx context.Context, lines <-chan string) (string, bool) {
	select {
	case line, open := <-lines:
		return line, open
	case <-ctx.Done():
		return "", false
	}
}

func register(ctx context.Context, ctrl *app.Controller, lines <-chan string) (bool, error) {
	remembered, _ := ctrl.RememberedProfile(ctx)
	for {
		email, open := prompt(ctx, lines, "Email", remembered.Email)
		if !open {
			return false, nil
		}
		name, open := prompt(ctx, lines, "Name", remembered.Name)
		if !open {
			return false, nil
		}
		err := ctrl.Register(ctx, email, name)
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			fmt.Println("That doesn't look like an email address, try again.")
		case errors.Is(err, domain.ErrEmptyName):
			fmt.Println("Please tell us your name.")
		case err != nil:
			return false, err
		default:
			return true, nil
		}
	}
}

func showRules(total int, cfg app.Config) {
	fmt.Printf("\n%d questions, 4 options each. One answer per question.\n", total)
	fmt.Printf("A correct answer is worth %d points plus a speed bonus of up to %d.\n",
		cfg.Scoring.BasePoints, cfg.Scoring.MaxTimeBonus)
}

func playQuestions(ctx context.Context, ctrl *app.Controller, lines <-chan string, total int) error {
	events, cancel := ctrl.Subscribe()
	defer cancel()

	for ctrl.State() == app.StatePlaying {
		index, q, ok := ctrl.Current()
		if !ok {
			break
		}
		printQuestion(index, total, q)

		jumped, finished, err := answerPhase(ctx, ctrl, lines, events)
		if err != nil {
			return err
		}
		if finished {
			return nil
		}
		if jumped {
			continue
		}

		fmt.Println("Press Enter for the next question.")
		select {
		case _, open := <-lines:
			if !open {
				return nil
			}
			if done, err := ctrl.Next(ctx); err != nil {
				return err
			} else if done {
				return nil
			}
		case ev := <-events:
			if ev.Kind == app.EventFinished {
				return nil
			}
			fmt.Printf("\nThe host moved everyone ahead to question %d!\n", ev.Index+1)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// answerPhase blocks until the player picks an option or the session moves
// without them (forced jump or finish).
func answerPhase(ctx context.Context, ctrl *app.Controller, lines <-chan string, events <-chan app.Event) (jumped, finished bool, err error) {
	for {
		select {
		case line, open := <-lines:
			if !open {
				return false, true, nil
			}
			choice, convErr := strconv.Atoi(strings.TrimSpace(line))
			if convErr != nil {
				fmt.Println("Type the number of your answer.")
				continue
			}
			rec, ansErr := ctrl.Answer(ctx, choice-1)
			if errors.Is(ansErr, domain.ErrOptionOutOfRange) {
				fmt.Println("Pick one of the listed options.")
				continue
			}
			if ansErr != nil {
				return false, false, ansErr
			}
			if rec.Correct {
				fmt.Printf("Correct! +%d points\n", rec.Points)
			} else {
				fmt.Println("Not this time, 0 points.")
			}
			return false, false, nil
		case ev := <-events:
			if ev.Kind == app.EventFinished {
				return false, true, nil
			}
			fmt.Printf("\nThe host moved everyone ahead to question %d!\n", ev.Index+1)
			return true, false, nil
		case <-ctx.Done():
			return false, false, ctx.Err()
		}
	}
}

func showResults(ctx context.Context, ctrl *app.Controller) error {
	summary := ctrl.Summary()
	fmt.Printf("\nThat's a wrap, %s! You scored %d points (%d/%d correct).\n",
		summary.Name, summary.TotalScore, summary.CorrectAnswers, summary.TotalQuestions)

	fmt.Println("\nLeaderboard:")
	entries, err := ctrl.Leaderboard(ctx)
	if err != nil {
		return render.TextError(os.Stdout)
	}
	return render.Text(os.Stdout, entries)
}

func printQuestion(index, total int, q domain.Question) {
	fmt.Printf("\nQuestion %d of %d\n%s\n", index+1, total, q.Text)
	for i, opt := range q.Options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	fmt.Print("> ")
}

func prompt(ctx context.Context, lines <-chan string, label, fallback string) (string, bool) {
	if fallback != "" {
		fmt.Printf("%s [%s]: ", label, fallback)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, open := readLine(ctx, lines)
	if !open {
		return fallback, false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, true
	}
	return line, true
}
