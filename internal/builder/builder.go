package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/matterai/timesheet-backend/internal/api"
	authapi "github.com/matterai/timesheet-backend/internal/api/auth"
	chatbotapi "github.com/matterai/timesheet-backend/internal/api/chatbot"
	fileapi "github.com/matterai/timesheet-backend/internal/api/file"
	orgapi "github.com/matterai/timesheet-backend/internal/api/organization"
	timesheetapi "github.com/matterai/timesheet-backend/internal/api/timesheet"
	"github.com/matterai/timesheet-backend/internal/chatbot"
	"github.com/matterai/timesheet-backend/internal/config"
	"github.com/matterai/timesheet-backend/internal/integration/webhook"
	"github.com/matterai/timesheet-backend/internal/pkg/formatter"
	"github.com/matterai/timesheet-backend/internal/pkg/logger"
	"github.com/matterai/timesheet-backend/internal/pkg/validator"
	"github.com/matterai/timesheet-backend/internal/repository"
	"github.com/matterai/timesheet-backend/internal/telegram"
	authuc "github.com/matterai/timesheet-backend/internal/usecase/auth"
	chatuc "github.com/matterai/timesheet-backend/internal/usecase/chat"
	fileuc "github.com/matterai/timesheet-backend/internal/usecase/file"
	orguc "github.com/matterai/timesheet-backend/internal/usecase/organization"
	timesheetuc "github.com/matterai/timesheet-backend/internal/usecase/timesheet"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := setupLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	log.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	entryRepo := repository.NewTimesheetPostgres(db)
	userRepo := repository.NewUserPostgres(db)
	orgRepo := repository.NewOrganizationPostgres(db)
	fileRepo := repository.NewFilePostgres(db)
	telegramRepo := repository.NewTelegramPostgres(db)
	log.Info("Repositories initialized")

	// Initialize outbound notifier (with mock support)
	var notifier timesheetuc.WebhookNotifier
	if cfg.EnableMocks {
		log.Info("Using mock webhook connector")
		notifier = webhook.NewMockConnector(log)
	} else {
		log.Info("Using real webhook connector")
		notifier = webhook.NewConnector(cfg.WebhookConnectorCfg, log)
	}

	// Initialize validators and formatters
	requestValidator := validator.NewValidator(cfg.FileUploadCfg)
	formatterFactory := formatter.NewFactory()
	log.Info("Validators initialized")

	// Initialize use cases
	timesheetUC := timesheetuc.NewUsecase(entryRepo, requestValidator, formatterFactory, notifier, log)
	authUC := authuc.NewUsecase(userRepo, requestValidator, cfg.AuthCfg, log)
	orgUC := orguc.NewUsecase(orgRepo, userRepo, requestValidator, authUC, log)
	fileUC := fileuc.NewUsecase(fileRepo, requestValidator, cfg.FileUploadCfg, log)

	// Initialize conversation engine
	sessionStore := chatbot.NewStore(cfg.ChatbotCfg.SessionTTL)
	engine := chatbot.NewEngine(sessionStore, timesheetUC, log)
	chatUC := chatuc.NewUsecase(engine, telegramRepo)
	log.Info("Use cases initialized")

	// Setup API handlers
	handlers := api.Handlers{
		Auth:         authapi.NewHandler(authUC),
		Chatbot:      chatbotapi.NewHandler(chatUC),
		Timesheet:    timesheetapi.NewHandler(timesheetUC),
		Organization: orgapi.NewHandler(orgUC),
		File:         fileapi.NewHandler(fileUC, cfg.FileUploadCfg.MaxUploadSize),
	}
	log.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(handlers, authUC, log)
	log.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: log,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (*telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := setupLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	log.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	entryRepo := repository.NewTimesheetPostgres(db)
	telegramRepo := repository.NewTelegramPostgres(db)
	log.Info("Repositories initialized")

	// Initialize outbound notifier (with mock support)
	var notifier timesheetuc.WebhookNotifier
	if cfg.EnableMocks {
		log.Info("Using mock webhook connector")
		notifier = webhook.NewMockConnector(log)
	} else {
		log.Info("Using real webhook connector")
		notifier = webhook.NewConnector(cfg.WebhookConnectorCfg, log)
	}

	// Initialize validators and formatters
	requestValidator := validator.NewValidator(cfg.FileUploadCfg)
	formatterFactory := formatter.NewFactory()

	// Initialize conversation engine
	timesheetUC := timesheetuc.NewUsecase(entryRepo, requestValidator, formatterFactory, notifier, log)
	sessionStore := chatbot.NewStore(cfg.ChatbotCfg.SessionTTL)
	engine := chatbot.NewEngine(sessionStore, timesheetUC, log)
	chatUC := chatuc.NewUsecase(engine, telegramRepo)
	log.Info("Use cases initialized")

	// Initialize Telegram bot
	bot, err := telegram.New(&cfg.TelegramCfg, chatUC, log)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	log.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, log, nil
}

func setupLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.Environment == "local")
}
