package entity

type WebhookEventType string

const (
	WebhookEventEntryCreated   WebhookEventType = "entry.created"
	WebhookEventEntrySubmitted WebhookEventType = "entry.submitted"
	WebhookEventEntryDeleted   WebhookEventType = "entry.deleted"
)

// WebhookEvent is the envelope posted to the configured webhook URL after
// entry mutations. Delivery is best effort; failures are logged, not surfaced.
type WebhookEvent struct {
	Event     WebhookEventType `json:"event"`
	Timestamp string           `json:"timestamp,omitempty"`
	Data      any              `json:"data,omitempty"`
}

type WebhookEntryData struct {
	EntryID string  `json:"entry_id"`
	UserID  string  `json:"user_id"`
	Client  string  `json:"client"`
	Type    string  `json:"type"`
	Total   float64 `json:"total"`
	Source  string  `json:"source"` // "api" or "chatbot"
}
