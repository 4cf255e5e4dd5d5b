package chatbot

import (
	"context"

	"github.com/matterai/timesheet-backend/internal/entity"
)

type ChatUsecase interface {
	HandleMessage(ctx context.Context, userID string, req *entity.ChatRequest) (*entity.ChatResponse, error)
	ListSessions(ctx context.Context) *entity.ChatSessionListResponse
	DeleteSession(ctx context.Context, sessionID string) error
}
