package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/matterai/timesheet-backend/internal/config"
	"github.com/matterai/timesheet-backend/internal/entity"
	"github.com/matterai/timesheet-backend/internal/integration/common"
	pkghttp "github.com/matterai/timesheet-backend/pkg/http"
	"go.uber.org/zap"
)

// Notifier delivers entry lifecycle events to the configured receiver.
type Notifier interface {
	NotifyEntryCreated(ctx context.Context, data *entity.WebhookEntryData)
	NotifyEntrySubmitted(ctx context.Context, data *entity.WebhookEntryData)
	NotifyEntryDeleted(ctx context.Context, data *entity.WebhookEntryData)
}

var _ Notifier = &Connector{}

type Connector struct {
	config    config.WebhookConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.WebhookConnectorConfig, logger *zap.Logger) *Connector {
	var extraOpts []pkghttp.HttpOpts
	if cfg.Secret != "" {
		extraOpts = append(extraOpts, pkghttp.WithSignatureHeader("X-Webhook-Secret", cfg.Secret))
	}

	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger, extraOpts...),
		config:    cfg,
		logger:    logger,
	}
}

func (c *Connector) NotifyEntryCreated(ctx context.Context, data *entity.WebhookEntryData) {
	c.send(ctx, entity.WebhookEventEntryCreated, data)
}

func (c *Connector) NotifyEntrySubmitted(ctx context.Context, data *entity.WebhookEntryData) {
	c.send(ctx, entity.WebhookEventEntrySubmitted, data)
}

func (c *Connector) NotifyEntryDeleted(ctx context.Context, data *entity.WebhookEntryData) {
	c.send(ctx, entity.WebhookEventEntryDeleted, data)
}

// send delivers one event with retries. Delivery is best effort: failures
// are logged and never surfaced to the caller.
func (c *Connector) send(ctx context.Context, eventType entity.WebhookEventType, data *entity.WebhookEntryData) {
	event := &entity.WebhookEvent{
		Event:     eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	}

	retryOpts := append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))

	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.EventsEndpoint, event, nil)
	}, retryOpts...)

	if err != nil {
		ctxzap.Error(ctx, "failed to deliver webhook event",
			zap.Error(fmt.Errorf("event %s: %w", eventType, err)),
		)
		return
	}

	ctxzap.Info(ctx, "webhook event delivered",
		zap.String("event_type", string(eventType)),
		zap.String("entry_id", data.EntryID),
	)
}
