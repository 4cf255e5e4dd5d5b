package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matterai/timesheet-backend/internal/config"
	"github.com/matterai/timesheet-backend/internal/entity"
	pkgvalidator "github.com/matterai/timesheet-backend/internal/pkg/validator"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byUsername map[string]*entity.User
	byID       map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{
		byUsername: map[string]*entity.User{},
		byID:       map[string]*entity.User{},
	}
	for _, u := range users {
		r.byUsername[u.Username] = u
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	if _, ok := r.byUsername[user.Username]; ok {
		return nil, entity.ErrUserExists
	}
	r.byUsername[user.Username] = user
	r.byID[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Get(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	if u, ok := r.byUsername[username]; ok {
		return u, nil
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _ *string) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.byID[id]
	if !ok {
		return entity.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return entity.ErrUserNotFound
	}
	delete(r.byID, id)
	delete(r.byUsername, u.Username)
	return nil
}

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:   "0123456789abcdef0123456789abcdef",
		TokenTTL:    time.Hour,
		BcryptCost:  bcrypt.MinCost,
		TokenIssuer: "timesheet-backend",
	}
}

func testUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &entity.User{
		ID:           "u1",
		Username:     "jsmith",
		Email:        "jsmith@example.com",
		Name:         "Jane Smith",
		PasswordHash: string(hash),
		Role:         entity.RoleMember,
		IsActive:     true,
	}
}

func newTestUsecase(t *testing.T, users ...*entity.User) *AuthUsecase {
	t.Helper()
	return NewUsecase(
		newFakeUserRepo(users...),
		pkgvalidator.NewValidator(config.FileUploadConfig{MaxFileSize: 1}),
		testConfig(),
		zap.NewNop(),
	)
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(t, testUser(t, "s3cret-pass"))

	resp, err := uc.Login(context.Background(), &entity.LoginRequest{
		Username: "jsmith",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("expected a token, got %+v", resp)
	}
	if resp.User == nil || resp.User.Username != "jsmith" {
		t.Fatalf("expected the user profile in the response")
	}

	claims, err := uc.VerifyToken(resp.Token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Subject != "u1" {
		t.Errorf("subject = %q, want u1", claims.Subject)
	}
	if claims.Role != entity.RoleMember {
		t.Errorf("role = %q, want Member", claims.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(t, testUser(t, "s3cret-pass"))

	_, err := uc.Login(context.Background(), &entity.LoginRequest{
		Username: "jsmith",
		Password: "wrong",
	})
	if !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(t)

	_, err := uc.Login(context.Background(), &entity.LoginRequest{
		Username: "ghost",
		Password: "whatever",
	})
	if !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	t.Parallel()

	user := testUser(t, "s3cret-pass")
	user.IsActive = false
	uc := newTestUsecase(t, user)

	_, err := uc.Login(context.Background(), &entity.LoginRequest{
		Username: "jsmith",
		Password: "s3cret-pass",
	})
	if !errors.Is(err, entity.ErrUserInactive) {
		t.Fatalf("err = %v, want ErrUserInactive", err)
	}
}

func TestVerifyTokenRejectsTampered(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(t, testUser(t, "s3cret-pass"))

	resp, err := uc.Login(context.Background(), &entity.LoginRequest{
		Username: "jsmith",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := uc.VerifyToken(resp.Token + "x"); !errors.Is(err, entity.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}

	other := NewUsecase(
		newFakeUserRepo(),
		pkgvalidator.NewValidator(config.FileUploadConfig{MaxFileSize: 1}),
		config.AuthConfig{
			JWTSecret:   "another-secret-another-secret!!!",
			TokenTTL:    time.Hour,
			BcryptCost:  bcrypt.MinCost,
			TokenIssuer: "timesheet-backend",
		},
		zap.NewNop(),
	)
	if _, err := other.VerifyToken(resp.Token); !errors.Is(err, entity.ErrInvalidToken) {
		t.Fatalf("foreign-key verification err = %v, want ErrInvalidToken", err)
	}
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(t, testUser(t, "s3cret-pass"))

	dto, err := uc.CurrentUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if dto.Email != "jsmith@example.com" {
		t.Errorf("email = %q", dto.Email)
	}

	if _, err := uc.CurrentUser(context.Background(), "nope"); !errors.Is(err, entity.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
