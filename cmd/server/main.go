package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"quiz-lab/api"
	"quiz-lab/auth"
	"quiz-lab/domain"
	"quiz-lab/internal"
	"quiz-lab/observability"
	"quiz-lab/repositories"
	"quiz-lab/runtime"
	"quiz-lab/runtime/workers"
	"quiz-lab/services"
	"quiz-lab/ws"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// Deferred cleanup (database close, index flush) is guaranteed to execute before the
// process exits, which os.Exit in main would skip.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := observability.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Storage (BadgerDB + Bluge index)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Realtime core: registry, router, coordinator behind the websocket
	monitoring := observability.NewMonitoring(logger)
	registry := runtime.NewRegistry()
	router := runtime.NewRouter(registry, monitoring, logger)

	moderator, err := runtime.BuildModerator(logger, charReplacement)
	if err != nil {
		return exitRuntime, fmt.Errorf("moderator init failed: %w", err)
	}

	roomRepository := repositories.NewRoomRepository(db, logger)
	coordinator := runtime.NewCoordinator(logger, registry, roomRepository, router, moderator, monitoring)
	wsServer := ws.NewServer(logger, coordinator, monitoring)

	// 4. Game & account services behind the HTTP API
	userRepository := repositories.NewUserRepository(db)
	scoreRepository := repositories.NewScoreRepository(db)
	questionRepository := repositories.NewQuestionRepository(db, blugeWriter, logger)

	tokens := auth.NewTokenManager(config.JWTSecret, config.AuthTokenDuration)
	authService := services.NewAuthService(userRepository, tokens)
	triviaClient := services.NewTriviaClient(config.TriviaAPIURL, questionRepository, logger,
		config.TriviaMaxRetries, config.TriviaBackoff)
	gameService := services.NewGameService(triviaClient, scoreRepository, domain.BotProfile{
		Name:     config.BotName,
		Accuracy: config.BotAccuracy,
		MaxDelay: config.BotMaxDelay,
	}, logger)

	handlers := api.New(logger, authService, gameService, roomRepository,
		questionRepository, scoreRepository, tokens, monitoring)
	httpRouter := handlers.Router()
	httpRouter.HandleFunc("/ws", wsServer.ServeWS)

	if logger.Enabled(ctx, slog.LevelDebug) && config.DebugPort > 0 {
		url := fmt.Sprintf("http://localhost:%d/inspect", config.DebugPort)
		logger.Info("Debug Badger inspector available", "url", url)
		internal.StartDebugServer(db, config.DebugPort, "/inspect", internal.DefaultMapper, monitoring.StatsMap)
	}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Background workers under supervision
	sup := workers.NewSupervisor(logger)
	sup.Add(workers.NewHeartbeatWorker(logger, monitoring))
	if logger.Enabled(ctx, slog.LevelDebug) {
		sup.Add(workers.NewReporterWorker(monitoring, config.ReportInterval))
	}

	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	// 7. HTTP server (REST API + websocket endpoint)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: httpRouter}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 9. Final Cleanup (Graceful Shutdown)
	// In-flight HTTP requests get a grace period; websocket read loops end
	// when their connections close and run their own disconnect cleanup.
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}

	sup.Stop()
	<-supDone
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}

	return options
}
