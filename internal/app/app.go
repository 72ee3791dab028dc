package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/Babyaovo/Yaouo-sub000/internal/api"
	"github.com/Babyaovo/Yaouo-sub000/internal/config"
	"github.com/Babyaovo/Yaouo-sub000/internal/database"
	"github.com/Babyaovo/Yaouo-sub000/internal/llm"
	"github.com/Babyaovo/Yaouo-sub000/internal/metrics"
	"github.com/Babyaovo/Yaouo-sub000/internal/repository"
	"github.com/Babyaovo/Yaouo-sub000/internal/service"
)

// App is the wired application. Close releases the database and, when used,
// the Redis client.
type App struct {
	DB            *sql.DB
	Server        *http.Server
	Conversations *service.ConversationService

	redis *redis.Client
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer app.Close()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		errCh <- app.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

// NewApp connects storage, loads the persisted state and wires the services
// and router into an http.Server. The server is not started.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.")

	app := &App{DB: db}

	var store repository.StateStore
	switch cfg.StateBackend {
	case config.BackendRedis:
		app.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("Successfully connected to Redis.", "addr", cfg.RedisAddr)
		store = repository.NewRedisStateStore(app.redis, "phone")
	default:
		store = repository.NewSQLiteStateStore(db)
	}

	state, err := store.Load(ctx)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load application state: %w", err)
	}
	slog.Info("Loaded application state", "backend", cfg.StateBackend, "conversations", len(state.Conversations), "characters", len(state.Characters))

	settingsService := service.NewSettingsService(db)
	appSettings, err := settingsService.InitAndGet(ctx, &service.Settings{
		APIURL:       cfg.InitialAPIURL,
		APIKey:       cfg.InitialAPIKey,
		Model:        cfg.InitialModel,
		BaseLanguage: cfg.BaseLanguage,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize application settings: %w", err)
	}
	slog.Info("Loaded application settings", "model", appSettings.Model, "credentials_set", !appSettings.Credentials().Missing())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	provider := llm.NewOpenAIProvider(nil)
	memoryService := service.NewMemoryService(provider, settingsService, m)
	app.Conversations = service.NewConversationService(store, provider, settingsService, memoryService, state,
		service.WithMetrics(m),
		service.WithBubbleDelay(cfg.BubbleDelay),
	)
	modelService := service.NewModelService(provider, settingsService)

	conversationHandler := api.NewConversationHandler(app.Conversations, settingsService)
	modelHandler := api.NewModelHandler(modelService)
	router := api.NewRouter(conversationHandler, modelHandler, reg, cfg.FrontendDir)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}
	return app, nil
}

// Close releases every connection the app opened.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err)
		}
	}
	if err := a.DB.Close(); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
