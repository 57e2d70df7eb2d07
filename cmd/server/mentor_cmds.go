package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"utfpr.edu.br/menfin/internal/core"
	"utfpr.edu.br/menfin/internal/locale"
	"utfpr.edu.br/menfin/internal/render"
)

// withUser resolves --user and runs fn with the wired services.
func withUser(cmd *cobra.Command, fn func(ctx context.Context, a *app, userID int64) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	username, _ := cmd.Flags().GetString("user")

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.dbStore.GetUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %q not found", username)
	}

	stop := printStates(a.board, user.ID)
	defer stop()
	return fn(ctx, a, user.ID)
}

// printStates echoes the user's feature transitions until stop is called.
func printStates(board *core.StateBoard, userID int64) (stop func()) {
	events, cancel := board.Subscribe(userID)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			if ev.State.Status == core.StatusLoading {
				fmt.Println(render.Muted(fmt.Sprintf("[%s] mentor pensando...", ev.State.Feature)))
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func userFlag(cmd *cobra.Command) {
	cmd.Flags().String("user", "", "Username whose data the mentor reads")
	cmd.MarkFlagRequired("user")
}

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [QUESTION]",
		Short: "Ask the mentor a quick or free-text question",
		Long: `Ask the mentor a question. QUESTION may be a quick-question code
(HOW_TO_SAVE, BIG_MONTH_EXPENSES, LAUNCH_EXPENSES) or free text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(cmd, func(ctx context.Context, a *app, userID int64) error {
				answer, err := a.mentor.Ask(ctx, userID, strings.Join(args, " "))
				if err != nil {
					fmt.Println(render.Error(err.Error()))
					return err
				}
				fmt.Println(render.Terminal(answer))
				return nil
			})
		},
	}
	userFlag(cmd)
	return cmd
}

func newInsightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate insights about the user's goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(cmd, func(ctx context.Context, a *app, userID int64) error {
				insights, err := a.mentor.GoalInsights(ctx, userID)
				if err != nil {
					fmt.Println(render.Error(err.Error()))
					return err
				}
				for _, in := range insights {
					fmt.Println(render.Insight(in.Text, in.Type == core.InsightPositive))
				}
				return nil
			})
		},
	}
	userFlag(cmd)
	return cmd
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a month of transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			month := time.Now()
			if raw, _ := cmd.Flags().GetString("month"); raw != "" {
				m, err := locale.ParseMonth(raw)
				if err != nil {
					return err
				}
				month = m
			}
			return withUser(cmd, func(ctx context.Context, a *app, userID int64) error {
				summary, err := a.mentor.MonthSummary(ctx, userID, month)
				if err != nil {
					fmt.Println(render.Error(err.Error()))
					return err
				}
				fmt.Println(render.Terminal(fmt.Sprintf("**%s**", locale.MonthName(summary.Month))))
				fmt.Printf("Receitas: %s\nDespesas: %s\nSaldo: %s\n",
					locale.FormatBRL(summary.Revenue), locale.FormatBRL(summary.Expenses), locale.FormatBRL(summary.Balance))
				for _, line := range summary.Insights {
					fmt.Println("- " + render.Terminal(line))
				}
				return nil
			})
		},
	}
	userFlag(cmd)
	cmd.Flags().String("month", "", "Month in YYYY-MM format (current month if not provided)")
	return cmd
}
