package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/matterai/timesheet-backend/internal/chatbot"
	"github.com/matterai/timesheet-backend/internal/entity"
)

// TelegramAccounts resolves Telegram identities to user accounts.
type TelegramAccounts interface {
	GetUserID(ctx context.Context, telegramID int64) (string, error)
	CreateLinkedUser(ctx context.Context, telegramID int64, user *entity.User) (*entity.User, error)
}

// ChatUsecase fronts the conversation engine and its session store
type ChatUsecase struct {
	engine   *chatbot.Engine
	accounts TelegramAccounts
}

// NewUsecase creates a new chat use case
func NewUsecase(engine *chatbot.Engine, accounts TelegramAccounts) *ChatUsecase {
	return &ChatUsecase{
		engine:   engine,
		accounts: accounts,
	}
}

// HandleMessage forwards one user message into the conversation engine
func (uc *ChatUsecase) HandleMessage(ctx context.Context, userID string, req *entity.ChatRequest) (*entity.ChatResponse, error) {
	resp, err := uc.engine.HandleMessage(ctx, userID, req.SessionID, req.Message)
	if err != nil {
		return nil, fmt.Errorf("handle message: %w", err)
	}
	return resp, nil
}

// HandleTelegramMessage resolves the Telegram identity to a user account,
// provisioning a linked member account on first contact, and forwards the
// message under that account's ID so submitted entries satisfy the user
// foreign key.
func (uc *ChatUsecase) HandleTelegramMessage(ctx context.Context, telegramID int64, profileName string, req *entity.ChatRequest) (*entity.ChatResponse, error) {
	userID, err := uc.accounts.GetUserID(ctx, telegramID)
	if errors.Is(err, entity.ErrUserNotFound) {
		created, createErr := uc.accounts.CreateLinkedUser(ctx, telegramID, telegramUser(telegramID, profileName))
		switch {
		case createErr == nil:
			userID = created.ID
		case errors.Is(createErr, entity.ErrUserExists):
			// A concurrent message won the link; use its account.
			userID, err = uc.accounts.GetUserID(ctx, telegramID)
			if err != nil {
				return nil, fmt.Errorf("resolve telegram account: %w", err)
			}
		default:
			return nil, fmt.Errorf("provision telegram account: %w", createErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("resolve telegram account: %w", err)
	}

	return uc.HandleMessage(ctx, userID, req)
}

// ListSessions returns the identifiers of live conversations
func (uc *ChatUsecase) ListSessions(ctx context.Context) *entity.ChatSessionListResponse {
	ids := uc.engine.Store().List()
	return &entity.ChatSessionListResponse{
		Sessions: ids,
		Count:    len(ids),
	}
}

// DeleteSession discards one conversation
func (uc *ChatUsecase) DeleteSession(ctx context.Context, sessionID string) error {
	if !uc.engine.Store().Delete(sessionID) {
		return entity.ErrChatSessionNotFound
	}
	return nil
}

// telegramUser is the account template for a first-contact Telegram user.
// The empty password hash means the account cannot log in over HTTP.
func telegramUser(telegramID int64, profileName string) *entity.User {
	if profileName == "" {
		profileName = fmt.Sprintf("Telegram user %d", telegramID)
	}
	return &entity.User{
		Username: fmt.Sprintf("tg_%d", telegramID),
		Email:    fmt.Sprintf("tg_%d@telegram.local", telegramID),
		Name:     profileName,
		Role:     entity.RoleMember,
		IsActive: true,
	}
}
