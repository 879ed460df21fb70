package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"tenantchat/backend/internal/api"
	"tenantchat/backend/internal/config"
	"tenantchat/backend/internal/database"
	"tenantchat/backend/internal/llm"
	"tenantchat/backend/internal/mail"
	"tenantchat/backend/internal/registry"
	"tenantchat/backend/internal/repository"
	"tenantchat/backend/internal/retrieval"
	"tenantchat/backend/internal/service"
)

// App holds the assembled application: the open database handle and the
// configured HTTP server.
type App struct {
	DB     *sql.DB
	Server *http.Server
}

// NewApp wires every layer together from the given configuration.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("could not initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.")

	repo := repository.NewSQLiteRepository(db)

	clients := buildProviderClients(context.Background(), cfg)
	reg := registry.New(clients)

	retriever, err := buildRetriever(cfg)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database after wiring error", "error", closeErr)
		}
		return nil, fmt.Errorf("could not initialize retriever: %w", err)
	}

	renderer := mail.NewRenderer(cfg.AppName)
	sender := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)

	generationService := service.NewGenerationService(repo, reg, cfg.GenerationTimeout)
	conversationService := service.NewConversationService(repo, retriever, generationService, reg)
	tenantService := service.NewTenantService(repo, reg, renderer, sender, cfg.BaseURL)

	// Only the embedded index accepts writes; in remote mode the ingest
	// endpoint rejects requests and documents go through the hosted service.
	indexer, _ := retriever.(retrieval.Indexer)
	documentService := service.NewDocumentService(repo, indexer)

	tenantHandler := api.NewTenantHandler(tenantService)
	chatHandler := api.NewChatHandler(conversationService)
	modelHandler := api.NewModelHandler(reg)
	documentHandler := api.NewDocumentHandler(documentService)
	router := api.NewRouter(tenantHandler, chatHandler, modelHandler, documentHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	return &App{DB: db, Server: server}, nil
}

// Run loads configuration, assembles the app and serves until the listener
// fails. The return value is the process exit code.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger here.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	application, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to assemble application", "error", err)
		return 1
	}
	defer func() {
		if err := application.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	slog.Info("Starting server", "addr", application.Server.Addr)
	if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

// buildProviderClients constructs a client per configured provider. A missing
// key or failed constructor skips that provider; its models stay listed in
// the registry but cannot be dispatched to.
func buildProviderClients(ctx context.Context, cfg *config.Config) map[string]llm.Provider {
	clients := make(map[string]llm.Provider)

	if cfg.OpenAIAPIKey != "" {
		client, err := llm.NewOpenAIProvider(ctx, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, "gpt-4o")
		if err != nil {
			slog.Warn("Could not initialize OpenAI client", "error", err)
		} else {
			clients[llm.ProviderOpenAI] = client
		}
	}
	if cfg.GoogleAPIKey != "" {
		client, err := llm.NewGoogleProvider(ctx, cfg.GoogleAPIKey, "gemini-2.0-flash")
		if err != nil {
			slog.Warn("Could not initialize Google client", "error", err)
		} else {
			clients[llm.ProviderGoogle] = client
		}
	}
	if cfg.AnthropicAPIKey != "" {
		client, err := llm.NewAnthropicProvider(ctx, cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, "claude-3-7-sonnet-latest")
		if err != nil {
			slog.Warn("Could not initialize Anthropic client", "error", err)
		} else {
			clients[llm.ProviderAnthropic] = client
		}
	}

	if len(clients) == 0 {
		slog.Warn("No inference provider configured; generation requests will fail")
	}
	return clients
}

func buildRetriever(cfg *config.Config) (retrieval.Retriever, error) {
	switch cfg.RetrievalMode {
	case "local":
		embed, err := retrieval.NewOpenAIEmbeddingFunc(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		return retrieval.NewLocalRetriever(cfg.LocalIndexPath, embed)
	case "remote":
		return retrieval.NewHTTPRetriever(cfg.RetrievalURL, cfg.RetrievalAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown retrieval mode %q", cfg.RetrievalMode)
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
