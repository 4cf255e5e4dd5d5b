package webhook

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/matterai/timesheet-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector logs events instead of delivering them; used when no
// webhook receiver is configured.
type MockConnector struct {
	logger *zap.Logger
}

var _ Notifier = &MockConnector{}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) NotifyEntryCreated(ctx context.Context, data *entity.WebhookEntryData) {
	ctxzap.Info(ctx, "[MOCK] webhook entry.created",
		zap.String("entry_id", data.EntryID), zap.String("source", data.Source))
}

func (m *MockConnector) NotifyEntrySubmitted(ctx context.Context, data *entity.WebhookEntryData) {
	ctxzap.Info(ctx, "[MOCK] webhook entry.submitted",
		zap.String("entry_id", data.EntryID), zap.String("source", data.Source))
}

func (m *MockConnector) NotifyEntryDeleted(ctx context.Context, data *entity.WebhookEntryData) {
	ctxzap.Info(ctx, "[MOCK] webhook entry.deleted",
		zap.String("entry_id", data.EntryID), zap.String("source", data.Source))
}
