package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/thea/internal/auth"
	"github.com/alexanderramin/thea/internal/cli"
	"github.com/alexanderramin/thea/internal/config"
	"github.com/alexanderramin/thea/internal/db"
	"github.com/alexanderramin/thea/internal/device"
	"github.com/alexanderramin/thea/internal/httpapi"
	"github.com/alexanderramin/thea/internal/intelligence"
	"github.com/alexanderramin/thea/internal/llm"
	"github.com/alexanderramin/thea/internal/notify"
	"github.com/alexanderramin/thea/internal/planner"
	"github.com/alexanderramin/thea/internal/repository"
	"github.com/alexanderramin/thea/internal/scheduler"
	"github.com/alexanderramin/thea/internal/service"
	"github.com/alexanderramin/thea/internal/transcribe"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.LogUseCases {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	database, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	conn := db.ForDialect(database, cfg.DBDriver)
	sessionRepo := repository.NewSQLSessionRepo(conn)
	dayRepo := repository.NewSQLDayRecordRepo(conn)
	itemRepo := repository.NewSQLPlanItemRepo(conn)
	incidentRepo := repository.NewSQLIncidentRepo(conn)
	uow := db.NewUnitOfWork(database, cfg.DBDriver)

	var synthOpts []scheduler.Option
	if cfg.Seed != 0 {
		synthOpts = append(synthOpts, scheduler.WithRandSeed(cfg.Seed))
	}
	orchOpts := []planner.OrchestratorOption{planner.WithLogger(logger)}

	// Wire the assisting model (only when LLM is enabled)
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		client, err := llm.NewClient(ctx, llmCfg, observer)
		if err != nil {
			return fmt.Errorf("configuring llm: %w", err)
		}
		orchOpts = append(orchOpts,
			planner.WithStrategy(intelligence.NewPlanAdjustService(client, scheduler.NewID)),
			planner.WithTimeout(time.Duration(llmCfg.TaskTimeout(llm.TaskPlanAdjust))*time.Millisecond),
		)
	}
	orchestrator := planner.NewOrchestrator(scheduler.NewSynthesizer(synthOpts...), orchOpts...)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	// Wire services
	profiles := service.NewProfileService(sessionRepo, observers...)
	plans := service.NewPlanService(sessionRepo, dayRepo, itemRepo, uow, orchestrator, observers...)
	status := service.NewStatusService(uow, observers...)
	history := service.NewHistoryService(dayRepo, itemRepo, incidentRepo)

	deviceID := cfg.DeviceID
	if deviceID == "" {
		deviceID, err = device.LoadOrCreate(cfg.Home)
		if err != nil {
			return fmt.Errorf("loading device id: %w", err)
		}
	}

	app := &cli.App{
		Profiles: profiles,
		Plans:    plans,
		Status:   status,
		History:  history,
		DeviceID: deviceID,
		HTTPAddr: cfg.HTTPAddr,
		Logger:   logger,
		Now:      time.Now,
	}

	// Detect interactive terminal for the wizard and checklist.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if cfg.TranscribeAPIKey != "" {
		tr, err := transcribe.NewWhisperTranscriber(transcribe.Config{
			APIKey:  cfg.TranscribeAPIKey,
			BaseURL: cfg.TranscribeBaseURL,
			Model:   cfg.TranscribeModel,
		})
		if err != nil {
			return fmt.Errorf("configuring transcription: %w", err)
		}
		app.Transcriber = tr
	}

	if cfg.TelegramEnabled() {
		n, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return fmt.Errorf("configuring telegram: %w", err)
		}
		app.Notifier = n
	}

	if cfg.JWTSecret != "" {
		tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			return err
		}
		app.Tokens = tokens
		app.Handler = httpapi.NewServer(httpapi.Deps{
			Profiles:    profiles,
			Plans:       plans,
			Status:      status,
			History:     history,
			Tokens:      tokens,
			Transcriber: app.Transcriber,
			Logger:      logger,
			Now:         time.Now,
		})
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
