package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/matterai/timesheet-backend/internal/chatbot"
	"github.com/matterai/timesheet-backend/internal/entity"
	"go.uber.org/zap"
)

type fakeSubmitter struct {
	calls   int
	userIDs []string
}

func (f *fakeSubmitter) SubmitEntry(_ context.Context, userID string, req *entity.CreateEntryRequest) (*entity.TimesheetEntry, error) {
	f.calls++
	f.userIDs = append(f.userIDs, userID)
	return &entity.TimesheetEntry{
		ID:        "entry-1",
		UserID:    userID,
		Client:    req.Client,
		EntryType: entity.EntryType(req.EntryType),
		Currency:  entity.Currency(req.Currency),
		Total:     *req.Total,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// fakeAccounts links Telegram identities to generated account IDs.
type fakeAccounts struct {
	links       map[int64]string
	created     []*entity.User
	getCalls    int
	createErr   error
	nextUserSeq int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{links: map[int64]string{}}
}

func (f *fakeAccounts) GetUserID(_ context.Context, telegramID int64) (string, error) {
	f.getCalls++
	if id, ok := f.links[telegramID]; ok {
		return id, nil
	}
	return "", entity.ErrUserNotFound
}

func (f *fakeAccounts) CreateLinkedUser(_ context.Context, telegramID int64, user *entity.User) (*entity.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextUserSeq++
	created := *user
	created.ID = fmt.Sprintf("user-uuid-%d", f.nextUserSeq)
	f.links[telegramID] = created.ID
	f.created = append(f.created, &created)
	return &created, nil
}

func newTestUsecase(accounts TelegramAccounts, submitter chatbot.EntrySubmitter) *ChatUsecase {
	engine := chatbot.NewEngine(chatbot.NewStore(time.Minute), submitter, zap.NewNop())
	return NewUsecase(engine, accounts)
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
	"P100",               // phase/task
	"billable",           // bill code
	"invoice",            // status
	"Reviewed agreement", // narrative
}

func TestTelegramMessageProvisionsLinkedAccount(t *testing.T) {
	t.Parallel()

	accounts := newFakeAccounts()
	uc := newTestUsecase(accounts, &fakeSubmitter{})

	resp, err := uc.HandleTelegramMessage(context.Background(), 99, "Jane Smith", &entity.ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("HandleTelegramMessage: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("expected a session identifier")
	}

	if len(accounts.created) != 1 {
		t.Fatalf("created %d accounts, want 1", len(accounts.created))
	}
	user := accounts.created[0]
	if user.Username != "tg_99" {
		t.Errorf("username = %q, want tg_99", user.Username)
	}
	if user.Email != "tg_99@telegram.local" {
		t.Errorf("email = %q", user.Email)
	}
	if user.Name != "Jane Smith" {
		t.Errorf("name = %q, want Jane Smith", user.Name)
	}
	if user.Role != entity.RoleMember {
		t.Errorf("role = %q, want Member", user.Role)
	}
	if user.PasswordHash != "" {
		t.Errorf("password hash = %q, want empty (no HTTP login)", user.PasswordHash)
	}
}

func TestTelegramFullFlowSubmitsUnderLinkedAccount(t *testing.T) {
	t.Parallel()

	accounts := newFakeAccounts()
	submitter := &fakeSubmitter{}
	uc := newTestUsecase(accounts, submitter)
	ctx := context.Background()

	resp, err := uc.HandleTelegramMessage(ctx, 42, "Jane Smith", &entity.ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	sessionID := resp.SessionID
	for _, answer := range feeAnswers {
		resp, err = uc.HandleTelegramMessage(ctx, 42, "Jane Smith", &entity.ChatRequest{Message: answer, SessionID: sessionID})
		if err != nil {
			t.Fatalf("answer %q: %v", answer, err)
		}
		sessionID = resp.SessionID
	}

	resp, err = uc.HandleTelegramMessage(ctx, 42, "Jane Smith", &entity.ChatRequest{Message: "yes", SessionID: sessionID})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !resp.Completed {
		t.Fatalf("expected completed response, got %q", resp.Response)
	}
	if !strings.Contains(resp.Response, "created") {
		t.Fatalf("unexpected confirmation response %q", resp.Response)
	}

	if submitter.calls != 1 {
		t.Fatalf("submit calls = %d, want 1", submitter.calls)
	}
	if submitter.userIDs[0] != "user-uuid-1" {
		t.Errorf("submitted as %q, want the linked account user-uuid-1", submitter.userIDs[0])
	}
	if len(accounts.created) != 1 {
		t.Errorf("created %d accounts over the flow, want 1", len(accounts.created))
	}
}

func TestTelegramLinkRaceFallsBackToWinner(t *testing.T) {
	t.Parallel()

	// The re-read after the conflict must find the winning link.
	proxy := &racingAccounts{winnerID: "user-uuid-winner"}
	uc := newTestUsecase(proxy, &fakeSubmitter{})

	resp, err := uc.HandleTelegramMessage(context.Background(), 7, "", &entity.ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("HandleTelegramMessage: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("expected a session identifier")
	}
	if proxy.getCalls != 2 {
		t.Fatalf("GetUserID calls = %d, want miss then re-read", proxy.getCalls)
	}
}

// racingAccounts misses on the first read and links the winner afterwards,
// simulating a concurrent first message that created the account.
type racingAccounts struct {
	winnerID string
	getCalls int
}

func (r *racingAccounts) GetUserID(_ context.Context, telegramID int64) (string, error) {
	r.getCalls++
	if r.getCalls == 1 {
		return "", entity.ErrUserNotFound
	}
	return r.winnerID, nil
}

func (r *racingAccounts) CreateLinkedUser(ctx context.Context, telegramID int64, user *entity.User) (*entity.User, error) {
	return nil, entity.ErrUserExists
}
