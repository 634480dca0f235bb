package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/hoavote/ballotbot/internal/adapters/handler/http"
	"github.com/hoavote/ballotbot/internal/adapters/notifier"
	"github.com/hoavote/ballotbot/internal/adapters/repository/memory"
	"github.com/hoavote/ballotbot/internal/adapters/repository/postgres"
	"github.com/hoavote/ballotbot/internal/config"
	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/ports"
	"github.com/hoavote/ballotbot/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	deadline, err := cfg.Deadline()
	if err != nil {
		slog.Error("failed to parse voting deadline", "error", err)
		os.Exit(1)
	}

	var ballotRepo ports.BallotRepository
	var eligibilityRepo ports.EligibilityRepository
	switch cfg.StoreBackend {
	case "memory":
		ballotRepo = memory.NewBallotRepository()
		eligibilityRepo = memory.NewEligibilityRepository()
	case "postgres":
		db, err := sql.Open("postgres", cfg.ConnString())
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			slog.Error("database ping failed", "error", err)
			os.Exit(1)
		}
		ballotRepo = postgres.NewBallotRepository(db)
		eligibilityRepo = postgres.NewEligibilityRepository(db)
	default:
		slog.Error("unknown store backend", "backend", cfg.StoreBackend)
		os.Exit(1)
	}

	admins := make([]domain.VoterID, 0, len(cfg.AdminIDs))
	for _, id := range cfg.AdminIDs {
		admins = append(admins, domain.VoterID(id))
	}
	window := services.NewVotingWindow(admins, cfg.VotingOpen, deadline)

	ballotService := services.NewBallotService(ballotRepo, eligibilityRepo, window, services.BallotConfig{
		RequireRegistration: cfg.RequireRegistration,
		SessionTTL:          cfg.SessionTTL,
	})
	eligibilityService := services.NewEligibilityService(eligibilityRepo, window, cfg.SessionTTL)
	tallyService := services.NewTallyService(ballotRepo)
	dispatcher := services.NewDispatcher(ballotService, eligibilityService, tallyService, ballotRepo, window, slog.Default())

	handler := http.NewHandler(http.NewInteractionHandler(dispatcher))
	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var send ports.Notifier
	if cfg.TransportURL != "" {
		send = notifier.NewWebhook(cfg.TransportURL)
	} else {
		send = notifier.NewLog(slog.Default())
	}
	reminder := services.NewReminder(send, window, cfg.ReminderInterval, cfg.RemindWhenClosed, slog.Default())
	go reminder.Run(ctx)

	go func() {
		slog.Info("Listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
