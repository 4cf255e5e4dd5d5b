package chatbot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matterai/timesheet-backend/internal/entity"
	"go.uber.org/zap"
)

type fakeSubmitter struct {
	calls int
	last  *entity.CreateEntryRequest
	err   error
	panic bool
}

func (f *fakeSubmitter) SubmitEntry(_ context.Context, userID string, req *entity.CreateEntryRequest) (*entity.TimesheetEntry, error) {
	f.calls++
	f.last = req
	if f.panic {
		panic("adapter exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &entity.TimesheetEntry{
		ID:          "entry-1",
		UserID:      userID,
		Client:      req.Client,
		EntryType:   entity.EntryType(req.EntryType),
		Currency:    entity.Currency(req.Currency),
		Rate:        req.Rate,
		Total:       *req.Total,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Narrative:   req.Narrative,
		EntryStatus: entity.EntryStatus(req.EntryStatus),
	}, nil
}

func newTestEngine(submitter EntrySubmitter) *Engine {
	return NewEngine(NewStore(time.Minute), submitter, zap.NewNop())
}

// feeAnswers walks the full catalog for a routine fee entry.
var feeAnswers = []string{
	"Acme Corp",          // client
	"Contract review",    // matter
	"Jane Smith",         // timekeeper
	"2024-03-15",         // date
	"fee",                // type
	"3.0",                // hours worked
	"2.5",                // hours billed
	"Drafting",           // activity
	"0",                  // quantity
	"None",               // expense
	"450",                // rate
	"US dollars",         // currency
	"P100",               // phase task
	"billable",           // bill code
	"invoice",            // status
	"Reviewed agreement", // narrative
}

func TestEngineStartsFreshSession(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&fakeSubmitter{})

	resp, err := e.HandleMessage(context.Background(), "u1", "", "hello")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatalf("expected a new session identifier")
	}
	if resp.Completed {
		t.Fatalf("fresh session must not be completed")
	}
	if !strings.Contains(resp.Response, Catalog[0].Prompt) {
		t.Fatalf("expected the first question, got %q", resp.Response)
	}
}

func TestEngineUnknownSessionRestarts(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&fakeSubmitter{})

	resp, err := e.HandleMessage(context.Background(), "u1", "deadbeef", "Acme Corp")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if resp.SessionID == "deadbeef" {
		t.Fatalf("unknown identifier must not be resurrected")
	}
	// The triggering text is not consumed as an answer.
	session, err := e.store.Get(resp.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if session.QuestionIndex != 0 {
		t.Fatalf("index = %d, want 0", session.QuestionIndex)
	}
}

func TestEngineInvalidAnswerDoesNotAdvance(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&fakeSubmitter{})
	ctx := context.Background()

	start, _ := e.HandleMessage(ctx, "u1", "", "")
	id := start.SessionID

	// Advance to the date question, then answer it badly three times.
	for _, answer := range feeAnswers[:3] {
		if _, err := e.HandleMessage(ctx, "u1", id, answer); err != nil {
			t.Fatalf("HandleMessage: %v", err)
		}
	}

	for _, bad := range []string{"tomorrow", "15/03/2024", ""} {
		resp, err := e.HandleMessage(ctx, "u1", id, bad)
		if err != nil {
			t.Fatalf("HandleMessage: %v", err)
		}
		if !strings.Contains(resp.Response, Catalog[3].ErrMsg) {
			t.Fatalf("expected the date error message, got %q", resp.Response)
		}
		if resp.NextQuestion != Catalog[3].Prompt {
			t.Fatalf("expected the same question again, got %q", resp.NextQuestion)
		}
	}

	session, _ := e.store.Get(id)
	if session.QuestionIndex != 3 {
		t.Fatalf("index = %d, want 3 after invalid answers", session.QuestionIndex)
	}
}

func TestEngineFullFeeFlow(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	e := newTestEngine(submitter)
	ctx := context.Background()

	start, _ := e.HandleMessage(ctx, "u1", "", "")
	id := start.SessionID

	var resp *entity.ChatResponse
	var err error
	for _, answer := range feeAnswers {
		resp, err = e.HandleMessage(ctx, "u1", id, answer)
		if err != nil {
			t.Fatalf("HandleMessage(%q): %v", answer, err)
		}
	}

	// After the 16th answer the engine asks for confirmation.
	if !strings.Contains(resp.Response, confirmationPrompt) {
		t.Fatalf("expected confirmation prompt, got %q", resp.Response)
	}
	if !strings.Contains(resp.Response, "1125.00") {
		t.Fatalf("expected fee total 1125.00 in summary, got %q", resp.Response)
	}
	if submitter.calls != 0 {
		t.Fatalf("nothing may be submitted before confirmation")
	}

	resp, err = e.HandleMessage(ctx, "u1", id, "yes")
	if err != nil {
		t.Fatalf("HandleMessage(yes): %v", err)
	}
	if !resp.Completed {
		t.Fatalf("expected completed response")
	}
	if resp.TimesheetData == nil || resp.TimesheetData.ID != "entry-1" {
		t.Fatalf("expected the created entry in the response")
	}
	if submitter.calls != 1 {
		t.Fatalf("submit calls = %d, want 1", submitter.calls)
	}
	if submitter.last.Currency != "USD" {
		t.Fatalf("currency = %q, want normalized USD", submitter.last.Currency)
	}
	if submitter.last.EntryType != "Fee" {
		t.Fatalf("type = %q, want Fee", submitter.last.EntryType)
	}
	if submitter.last.Total == nil || *submitter.last.Total != 1125.0 {
		t.Fatalf("total = %v, want 1125.0", submitter.last.Total)
	}

	// The session is gone; the same identifier now restarts.
	resp2, _ := e.HandleMessage(ctx, "u1", id, "yes")
	if resp2.SessionID == id {
		t.Fatalf("finished session must not be reusable")
	}
	if submitter.calls != 1 {
		t.Fatalf("submit calls = %d after replay, want 1", submitter.calls)
	}
}

func TestEngineCostTotal(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	e := newTestEngine(submitter)
	ctx := context.Background()

	answers := append([]string(nil), feeAnswers...)
	answers[4] = "cost" // type
	answers[8] = "3"    // quantity
	answers[10] = "25.50"

	start, _ := e.HandleMessage(ctx, "u1", "", "")
	for _, answer := range answers {
		if _, err := e.HandleMessage(ctx, "u1", start.SessionID, answer); err != nil {
			t.Fatalf("HandleMessage(%q): %v", answer, err)
		}
	}
	if _, err := e.HandleMessage(ctx, "u1", start.SessionID, "YES"); err != nil {
		t.Fatalf("HandleMessage(yes): %v", err)
	}

	if submitter.last.Total == nil || *submitter.last.Total != 76.5 {
		t.Fatalf("cost total = %v, want 76.5", submitter.last.Total)
	}
}

func TestEngineDeclineStartsOver(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	e := newTestEngine(submitter)
	ctx := context.Background()

	start, _ := e.HandleMessage(ctx, "u1", "", "")
	for _, answer := range feeAnswers {
		if _, err := e.HandleMessage(ctx, "u1", start.SessionID, answer); err != nil {
			t.Fatalf("HandleMessage(%q): %v", answer, err)
		}
	}

	resp, err := e.HandleMessage(ctx, "u1", start.SessionID, "no")
	if err != nil {
		t.Fatalf("HandleMessage(no): %v", err)
	}
	if resp.SessionID == start.SessionID {
		t.Fatalf("decline must hand out a fresh session")
	}
	if !strings.Contains(resp.Response, Catalog[0].Prompt) {
		t.Fatalf("expected the flow to restart at the first question")
	}
	if submitter.calls != 0 {
		t.Fatalf("decline must not submit")
	}
}

func TestEngineSubmitterErrorIsTerminal(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{err: errors.New("db down")}
	e := newTestEngine(submitter)
	ctx := context.Background()

	start, _ := e.HandleMessage(ctx, "u1", "", "")
	for _, answer := range feeAnswers {
		if _, err := e.HandleMessage(ctx, "u1", start.SessionID, answer); err != nil {
			t.Fatalf("HandleMessage: %v", err)
		}
	}

	resp, err := e.HandleMessage(ctx, "u1", start.SessionID, "yes")
	if err != nil {
		t.Fatalf("adapter errors must not propagate, got %v", err)
	}
	if !resp.Completed {
		t.Fatalf("failed submission still terminates the session")
	}
	if resp.TimesheetData != nil {
		t.Fatalf("no entry on failure")
	}

	// Retrying the same identifier restarts rather than re-submitting.
	resp2, _ := e.HandleMessage(ctx, "u1", start.SessionID, "yes")
	if resp2.SessionID == start.SessionID {
		t.Fatalf("failed session must not be reusable")
	}
	if submitter.calls != 1 {
		t.Fatalf("submit calls = %d, want 1", submitter.calls)
	}
}

func TestEngineSubmitterPanicIsContained(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{panic: true}
	e := newTestEngine(submitter)
	ctx := context.Background()

	start, _ := e.HandleMessage(ctx, "u1", "", "")
	for _, answer := range feeAnswers {
		if _, err := e.HandleMessage(ctx, "u1", start.SessionID, answer); err != nil {
			t.Fatalf("HandleMessage: %v", err)
		}
	}

	resp, err := e.HandleMessage(ctx, "u1", start.SessionID, "yes")
	if err != nil {
		t.Fatalf("panics must be contained, got %v", err)
	}
	if !resp.Completed {
		t.Fatalf("panicking submission still terminates the session")
	}
}
