package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"utfpr.edu.br/menfin/internal/api"
	"utfpr.edu.br/menfin/internal/config"
	"utfpr.edu.br/menfin/internal/core"
	"utfpr.edu.br/menfin/internal/store"
)

// app holds the wired services shared by every command.
type app struct {
	dbStore  *store.SQLiteStore
	board    *core.StateBoard
	accounts *core.AccountService
	ledger   *core.LedgerService
	mentor   *core.MentorService
	chat     *core.ChatService
	closers  []func()
}

func newApp(ctx context.Context) (*app, error) {
	dbStore, err := store.NewSQLiteStore(config.AppConfig.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	completer, err := core.NewCompleter(ctx, config.AppConfig)
	if err != nil {
		dbStore.Close()
		return nil, fmt.Errorf("failed to initialize completer: %w", err)
	}

	a := &app{dbStore: dbStore, board: core.NewStateBoard()}
	a.closers = append(a.closers, func() { dbStore.Close() })
	if c, ok := completer.(*core.GenAICompleter); ok {
		a.closers = append(a.closers, c.Close)
	}

	a.accounts = core.NewAccountService(dbStore)
	a.ledger = core.NewLedgerService(dbStore)
	a.mentor = core.NewMentorService(dbStore, a.ledger, completer, a.board)
	queue := core.NewChatQueue(config.AppConfig.ChatQueueDepth)
	a.chat = core.NewChatService(dbStore, completer, queue, a.board, config.AppConfig.ChatHistoryLimit)
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "menfin",
		Short: "MenFin - personal finance mentor",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()

			log.SetFlags(log.LstdFlags | log.Lshortfile)
			if config.AppConfig.Debug() {
				log.Println("Service starting in DEBUG mode")
			}
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: serve the HTTP API
			return runServer(cmd.Context())
		},
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newInsightsCmd())
	rootCmd.AddCommand(newSummaryCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	apiHandler := api.NewAPIHandler(a.accounts, a.ledger, a.mentor, a.chat)
	router := api.NewRouter(apiHandler)

	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // chat turns wait behind the user's queue
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exiting gracefully")
	return nil
}
