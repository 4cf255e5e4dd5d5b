package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matterai/timesheet-backend/internal/api/middleware"
	"github.com/matterai/timesheet-backend/internal/entity"
)

type mockChatUsecase struct {
	handleFunc func(ctx context.Context, userID string, req *entity.ChatRequest) (*entity.ChatResponse, error)
	listFunc   func(ctx context.Context) *entity.ChatSessionListResponse
	deleteFunc func(ctx context.Context, sessionID string) error
}

func (m *mockChatUsecase) HandleMessage(ctx context.Context, userID string, req *entity.ChatRequest) (*entity.ChatResponse, error) {
	if m.handleFunc != nil {
		return m.handleFunc(ctx, userID, req)
	}
	return &entity.ChatResponse{SessionID: "s1", Response: "ok"}, nil
}

func (m *mockChatUsecase) ListSessions(ctx context.Context) *entity.ChatSessionListResponse {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return &entity.ChatSessionListResponse{Sessions: []string{}, Count: 0}
}

func (m *mockChatUsecase) DeleteSession(ctx context.Context, sessionID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, sessionID)
	}
	return nil
}

func newTestRouter(uc ChatUsecase, user *entity.UserDTO) http.Handler {
	r := chi.NewRouter()
	if user != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middleware.ContextWithUser(req.Context(), user)))
			})
		})
	}
	RegisterRoutes(r, NewHandler(uc))
	return r
}

func memberUser() *entity.UserDTO {
	return &entity.UserDTO{ID: "u1", Username: "jane", Role: entity.RoleMember, IsActive: true}
}

func adminUser() *entity.UserDTO {
	return &entity.UserDTO{ID: "a1", Username: "root", Role: entity.RoleSuperAdmin, IsActive: true}
}

func TestChatRelaysUserAndMessage(t *testing.T) {
	t.Parallel()

	var gotUserID string
	var gotMessage string
	uc := &mockChatUsecase{
		handleFunc: func(ctx context.Context, userID string, req *entity.ChatRequest) (*entity.ChatResponse, error) {
			gotUserID = userID
			gotMessage = req.Message
			return &entity.ChatResponse{SessionID: "s42", Response: "Got it!"}, nil
		},
	}
	router := newTestRouter(uc, memberUser())

	body, _ := json.Marshal(entity.ChatRequest{Message: "Acme Corp"})
	req := httptest.NewRequest(http.MethodPost, "/chatbot/chat", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotUserID != "u1" {
		t.Errorf("user id = %q, want u1", gotUserID)
	}
	if gotMessage != "Acme Corp" {
		t.Errorf("message = %q, want Acme Corp", gotMessage)
	}

	var resp entity.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID != "s42" {
		t.Errorf("session id = %q, want s42", resp.SessionID)
	}
}

func TestChatRejectsInvalidBody(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&mockChatUsecase{}, memberUser())

	req := httptest.NewRequest(http.MethodPost, "/chatbot/chat", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSessionAdminRequiresElevatedRole(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&mockChatUsecase{}, memberUser())

	req := httptest.NewRequest(http.MethodGet, "/chatbot/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestListSessionsAsAdmin(t *testing.T) {
	t.Parallel()

	uc := &mockChatUsecase{
		listFunc: func(ctx context.Context) *entity.ChatSessionListResponse {
			return &entity.ChatSessionListResponse{Sessions: []string{"s1", "s2"}, Count: 2}
		},
	}
	router := newTestRouter(uc, adminUser())

	req := httptest.NewRequest(http.MethodGet, "/chatbot/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp entity.ChatSessionListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
}

func TestDeleteUnknownSessionReturns404(t *testing.T) {
	t.Parallel()

	uc := &mockChatUsecase{
		deleteFunc: func(ctx context.Context, sessionID string) error {
			return entity.ErrChatSessionNotFound
		},
	}
	router := newTestRouter(uc, adminUser())

	req := httptest.NewRequest(http.MethodDelete, "/chatbot/sessions/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
