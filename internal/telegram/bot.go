package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/matterai/timesheet-backend/internal/config"
	"github.com/matterai/timesheet-backend/internal/entity"
	"github.com/matterai/timesheet-backend/internal/telegram/middleware"
	"go.uber.org/zap"
)

const welcomeText = `🤖 I'll help you record a timesheet entry.

Just answer my questions one by one. Commands:

/start - Start over
/cancel - Drop the current entry
/help - Show this message

Send any message to begin.`

// ChatUsecase is the conversation engine surface the bot relays into.
// Messages carry the Telegram identity; the use case resolves it to a
// user account before the engine sees it.
type ChatUsecase interface {
	HandleTelegramMessage(ctx context.Context, telegramID int64, profileName string, req *entity.ChatRequest) (*entity.ChatResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Bot relays Telegram messages into the timesheet conversation engine.
// Each chat maps to at most one active conversation session.
type Bot struct {
	api    *tgbotapi.BotAPI
	cfg    *config.TelegramConfig
	chatUC ChatUsecase
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[int64]string // chat ID -> conversation session ID

	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware

	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(cfg *config.TelegramConfig, chatUC ChatUsecase, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:      api,
		cfg:      cfg,
		chatUC:   chatUC,
		logger:   logger,
		sessions: make(map[int64]string),
		stopChan: make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)
	b.updatesChan = updates

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	// Wait for all active handlers to complete
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes update to the command or relay path
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	ctx := ctxzap.ToContext(context.Background(), b.logger)
	message := update.Message

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	if message.Text == "" {
		b.sendMessage(message.Chat.ID, "I can only work with text messages for now.")
		return
	}

	b.relayMessage(ctx, message)
}

// relayMessage forwards one text message into the conversation engine
func (b *Bot) relayMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	b.mu.Lock()
	sessionID := b.sessions[chatID]
	b.mu.Unlock()

	resp, err := b.chatUC.HandleTelegramMessage(ctx, message.From.ID, profileName(message.From), &entity.ChatRequest{
		Message:   message.Text,
		SessionID: sessionID,
	})
	if err != nil {
		ctxzap.Error(ctx, "conversation engine error",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.sendMessage(chatID, "❌ Something went wrong. Please try again or send /start")
		return
	}

	b.mu.Lock()
	if resp.Completed {
		delete(b.sessions, chatID)
	} else {
		b.sessions[chatID] = resp.SessionID
	}
	b.mu.Unlock()

	b.sendMessage(chatID, resp.Response)
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.dropSession(ctx, message.Chat.ID)
		b.sendMessage(message.Chat.ID, welcomeText)
	case "help":
		b.sendMessage(message.Chat.ID, welcomeText)
	case "cancel":
		if b.dropSession(ctx, message.Chat.ID) {
			b.sendMessage(message.Chat.ID, "Entry dropped. Send any message to start a new one.")
		} else {
			b.sendMessage(message.Chat.ID, "No entry in progress. Send any message to start one.")
		}
	default:
		b.sendMessage(message.Chat.ID, "❌ Unknown command. Send /help for the command list.")
	}
}

// dropSession forgets the chat's conversation, if any, and reports
// whether one existed.
func (b *Bot) dropSession(ctx context.Context, chatID int64) bool {
	b.mu.Lock()
	sessionID, ok := b.sessions[chatID]
	delete(b.sessions, chatID)
	b.mu.Unlock()

	if !ok || sessionID == "" {
		return false
	}

	if err := b.chatUC.DeleteSession(ctx, sessionID); err != nil {
		ctxzap.Warn(ctx, "failed to delete conversation session",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
	}
	return true
}

// sendMessage sends a message to chat
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		// Markdown in user-echoed text can break parsing; retry as plain text
		msg.ParseMode = ""
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error("failed to send message",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
		}
	}
}

// profileName builds a display name from the Telegram profile, falling
// back to the handle when no name is set.
func profileName(from *tgbotapi.User) string {
	if from == nil {
		return ""
	}
	name := strings.TrimSpace(strings.TrimSpace(from.FirstName) + " " + strings.TrimSpace(from.LastName))
	if name == "" {
		name = from.UserName
	}
	return name
}
