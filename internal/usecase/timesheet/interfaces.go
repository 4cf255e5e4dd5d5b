package timesheet

import (
	"context"

	"github.com/matterai/timesheet-backend/internal/entity"
)

// WebhookNotifier publishes entry lifecycle events. Implementations must be
// best effort and never block entry processing on delivery errors.
type WebhookNotifier interface {
	NotifyEntryCreated(ctx context.Context, data *entity.WebhookEntryData)
	NotifyEntrySubmitted(ctx context.Context, data *entity.WebhookEntryData)
	NotifyEntryDeleted(ctx context.Context, data *entity.WebhookEntryData)
}
