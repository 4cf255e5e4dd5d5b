package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/matterai/timesheet-backend/internal/entity"
	"go.uber.org/zap"
)

const confirmationPrompt = "Is everything OK? Reply 'yes' to submit or 'no' to start over."

// EntrySubmitter persists a completed entry record for the given user.
// The engine calls it exactly once per session, at confirmation.
type EntrySubmitter interface {
	SubmitEntry(ctx context.Context, userID string, req *entity.CreateEntryRequest) (*entity.TimesheetEntry, error)
}

// Engine drives the guided timesheet conversation: one incoming message,
// one response. All session mutation happens here, under the session lock.
type Engine struct {
	store     *Store
	submitter EntrySubmitter
	logger    *zap.Logger
}

func NewEngine(store *Store, submitter EntrySubmitter, logger *zap.Logger) *Engine {
	return &Engine{
		store:     store,
		submitter: submitter,
		logger:    logger,
	}
}

// Store exposes the session store for administrative listing and deletion.
func (e *Engine) Store() *Store {
	return e.store
}

// HandleMessage processes one message in the context of its session and
// produces exactly one response. An absent or unknown session identifier
// starts a fresh conversation; the triggering message text is not treated
// as an answer.
func (e *Engine) HandleMessage(ctx context.Context, userID, sessionID, message string) (*entity.ChatResponse, error) {
	message = strings.TrimSpace(message)

	session, err := e.store.Get(sessionID)
	if sessionID == "" || err != nil {
		return e.startSession(ctx), nil
	}

	session.Lock()
	defer session.Unlock()

	// A terminal session that has not been evicted yet behaves like an
	// unknown one: never continue, never double-submit.
	if session.Completed {
		e.store.Delete(session.ID)
		return e.startSession(ctx), nil
	}

	if session.PendingConfirmation {
		return e.handleConfirmation(ctx, userID, session, message)
	}

	return e.handleAnswer(ctx, session, message), nil
}

func (e *Engine) startSession(ctx context.Context) *entity.ChatResponse {
	session := e.store.Create()

	ctxzap.Info(ctx, "chat session started", zap.String("session_id", session.ID))

	first := Catalog[0]
	return &entity.ChatResponse{
		Response:     "Let's create a new timesheet entry. " + first.Prompt,
		SessionID:    session.ID,
		NextQuestion: first.Prompt,
	}
}

func (e *Engine) handleAnswer(ctx context.Context, session *Session, message string) *entity.ChatResponse {
	question := Catalog[session.QuestionIndex]

	if !Validate(question.Kind, question.Allowed, message) {
		ctxzap.Debug(ctx, "answer rejected",
			zap.String("session_id", session.ID),
			zap.String("field", question.Field),
		)
		return &entity.ChatResponse{
			Response:     question.ErrMsg + "\n\n" + question.Prompt,
			SessionID:    session.ID,
			NextQuestion: question.Prompt,
		}
	}

	if err := session.Draft.Set(question.Field, message); err != nil {
		// Unreachable after validation; kept as a guard so a catalog bug
		// re-prompts instead of corrupting the draft.
		ctxzap.Error(ctx, "failed to store validated answer",
			zap.Error(err),
			zap.String("field", question.Field),
		)
		return &entity.ChatResponse{
			Response:     question.ErrMsg + "\n\n" + question.Prompt,
			SessionID:    session.ID,
			NextQuestion: question.Prompt,
		}
	}

	session.QuestionIndex++
	e.store.Touch(session)

	if session.QuestionIndex == len(Catalog) {
		session.PendingConfirmation = true
		return &entity.ChatResponse{
			Response:  e.renderSummary(session),
			SessionID: session.ID,
		}
	}

	next := Catalog[session.QuestionIndex]
	return &entity.ChatResponse{
		Response:     "Got it! " + next.Prompt,
		SessionID:    session.ID,
		NextQuestion: next.Prompt,
	}
}

func (e *Engine) handleConfirmation(ctx context.Context, userID string, session *Session, message string) (*entity.ChatResponse, error) {
	if strings.ToLower(message) != "yes" {
		// Anything but "yes" abandons the collected data. The old session
		// stays in the store until eviction but is unreachable through the
		// response, which only carries the fresh identifier.
		ctxzap.Info(ctx, "chat session abandoned at confirmation",
			zap.String("session_id", session.ID),
		)
		return e.startSession(ctx), nil
	}

	session.PendingConfirmation = false
	session.Completed = true

	entry, err := e.submit(ctx, userID, session)

	// Terminal either way: no retry against this session.
	e.store.Delete(session.ID)

	if err != nil {
		ctxzap.Error(ctx, "entry submission failed",
			zap.Error(err),
			zap.String("session_id", session.ID),
		)
		return &entity.ChatResponse{
			Response:  fmt.Sprintf("❌ Sorry, I couldn't save the entry: %v. Please start a new entry and try again.", err),
			SessionID: session.ID,
			Completed: true,
		}, nil
	}

	ctxzap.Info(ctx, "entry submitted from chat",
		zap.String("session_id", session.ID),
		zap.String("entry_id", entry.ID),
	)

	return &entity.ChatResponse{
		Response: fmt.Sprintf("✅ Timesheet entry created for **%s** (%s). Total: %.2f %s.",
			entry.Client, entry.EntryType, entry.Total, entry.Currency),
		SessionID:     session.ID,
		Completed:     true,
		TimesheetData: entry,
	}, nil
}

// submit invokes the external persistence call. Panics are converted into
// errors so nothing escapes the engine.
func (e *Engine) submit(ctx context.Context, userID string, session *Session) (entry *entity.TimesheetEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("submission panic: %v", r)
		}
	}()

	return e.submitter.SubmitEntry(ctx, userID, draftToRequest(&session.Draft))
}

func draftToRequest(d *EntryDraft) *entity.CreateEntryRequest {
	total := d.Total()

	req := &entity.CreateEntryRequest{
		HoursWorked: d.HoursWorked,
		HoursBilled: d.HoursBilled,
		Quantity:    d.Quantity,
		Activity:    d.Activity,
		Expense:     d.Expense,
		Total:       &total,
	}

	if d.Client != nil {
		req.Client = *d.Client
	}
	if d.Matter != nil {
		req.Matter = *d.Matter
	}
	if d.Timekeeper != nil {
		req.Timekeeper = *d.Timekeeper
	}
	if d.Date != nil {
		req.EntryDate = *d.Date
	}
	if d.Type != nil {
		req.EntryType = *d.Type
	}
	if d.Rate != nil {
		req.Rate = *d.Rate
	}
	if d.Currency != nil {
		req.Currency = *d.Currency
	}
	if d.PhaseTask != nil {
		req.PhaseTask = *d.PhaseTask
	}
	if d.BillCode != nil {
		req.BillCode = *d.BillCode
	}
	if d.Status != nil {
		req.EntryStatus = *d.Status
	}
	if d.Narrative != nil {
		req.Narrative = *d.Narrative
	}

	return req
}

func (e *Engine) renderSummary(session *Session) string {
	var b strings.Builder

	b.WriteString("Here's everything I collected:\n\n")
	for _, question := range Catalog {
		value, ok := session.Draft.Get(question.Field)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "**%s**: %s\n", fieldLabel(question.Field), value)
	}
	fmt.Fprintf(&b, "**total**: %.2f\n\n", session.Draft.Total())
	b.WriteString(confirmationPrompt)

	return b.String()
}

func fieldLabel(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
