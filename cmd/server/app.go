package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/seedling-labs/gratitude-api/internal/config"
	"github.com/seedling-labs/gratitude-api/internal/domain/surfacing"
	"github.com/seedling-labs/gratitude-api/internal/platform/anthropic"
	"github.com/seedling-labs/gratitude-api/internal/platform/elevenlabs"
	"github.com/seedling-labs/gratitude-api/internal/platform/postgres"
	"github.com/seedling-labs/gratitude-api/internal/service"
	"github.com/seedling-labs/gratitude-api/internal/service/auth"
	"github.com/seedling-labs/gratitude-api/internal/store"
	"github.com/seedling-labs/gratitude-api/internal/task"
)

// application holds the shared application dependencies so lifecycle and
// cleanup stay in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore       store.UserStore
	memoryStore     store.MemoryStore
	entryStore      store.EntryStore
	surfaceStore    store.SurfaceStore
	reflectionStore store.ReflectionStore
	voiceStore      store.VoiceStore
	taskStore       *postgres.PostgresTaskStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	memoryService    service.MemoryService
	surfacingService service.SurfacingService
	voiceService     service.VoiceService
	speechService    service.SpeechService

	// Platform clients
	llmClient    *anthropic.Client
	speechClient *elevenlabs.Client

	// Task handling
	taskRunner *task.TaskRunner
}

// newApplication creates an application instance with all dependencies
// initialized. Core dependencies (config, logger, database) must already be
// established.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, hasher, logger)
	app.memoryStore = postgres.NewPostgresMemoryStore(db, logger)
	app.entryStore = postgres.NewPostgresEntryStore(db, logger)
	app.surfaceStore = postgres.NewPostgresSurfaceStore(db, logger)
	app.reflectionStore = postgres.NewPostgresReflectionStore(db, logger)
	app.voiceStore = postgres.NewPostgresVoiceStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db)

	// LLM client for extraction and image transcription
	app.llmClient, err = anthropic.NewClient(cfg.LLM, logger.With("component", "llm_client"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	logger.Info("LLM client initialized")

	// Speech synthesis client; an empty key leaves it unconfigured
	app.speechClient = elevenlabs.NewClient(cfg.Speech.ElevenLabsAPIKey, logger)

	// Task runner
	app.taskRunner = task.NewTaskRunner(app.taskStore, task.TaskRunnerConfig{
		WorkerCount:  cfg.Task.WorkerCount,
		QueueSize:    cfg.Task.QueueSize,
		StuckTaskAge: time.Duration(cfg.Task.StuckTaskAgeMinutes) * time.Minute,
	}, logger)

	// Services
	app.memoryService, err = service.NewMemoryService(
		db,
		app.memoryStore,
		app.entryStore,
		app.llmClient,
		app.taskRunner,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory service: %w", err)
	}

	// Crash-recovered extraction tasks need the processor to rebuild their
	// execute step, so attach it before the runner starts recovering.
	if processor, ok := app.memoryService.(task.MemoryProcessor); ok {
		app.taskStore.SetProcessor(processor)
	}

	app.surfacingService, err = service.NewSurfacingService(
		db,
		app.surfaceStore,
		app.entryStore,
		app.reflectionStore,
		surfacing.DefaultParams(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create surfacing service: %w", err)
	}

	app.voiceService, err = service.NewVoiceService(db, app.voiceStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create voice service: %w", err)
	}

	app.speechService, err = service.NewSpeechService(app.speechClient, app.voiceService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech service: %w", err)
	}

	if err := app.taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
