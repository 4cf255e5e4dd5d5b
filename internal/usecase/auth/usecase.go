package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/matterai/timesheet-backend/internal/config"
	"github.com/matterai/timesheet-backend/internal/entity"
	"github.com/matterai/timesheet-backend/internal/pkg/validator"
	"github.com/matterai/timesheet-backend/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	Role  entity.RoleName `json:"role"`
	OrgID *string         `json:"org_id,omitempty"`
	jwt.RegisteredClaims
}

// AuthUsecase implements login and token verification
type AuthUsecase struct {
	userRepo  repository.UserRepository
	validator *validator.Validator
	cfg       config.AuthConfig
	logger    *zap.Logger
}

// NewUsecase creates a new auth use case
func NewUsecase(
	userRepo repository.UserRepository,
	validator *validator.Validator,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:  userRepo,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}

// Login checks the credentials and issues a signed token
func (uc *AuthUsecase) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	if err := uc.validator.ValidateLogin(req); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			// Same error for unknown user and bad password
			return nil, entity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.IsActive {
		return nil, entity.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	ctxzap.Info(ctx, "user logged in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return &entity.LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    toUserDTO(user),
	}, nil
}

// CurrentUser returns the profile behind a verified token subject
func (uc *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*entity.UserDTO, error) {
	user, err := uc.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !user.IsActive {
		return nil, entity.ErrUserInactive
	}
	return toUserDTO(user), nil
}

// HashPassword produces a bcrypt hash for storage
func (uc *AuthUsecase) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (uc *AuthUsecase) issueToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role:  user.Role,
		OrgID: user.OrgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    uc.cfg.TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.cfg.JWTSecret))
}

// VerifyToken parses and validates a signed token and returns its claims
func (uc *AuthUsecase) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(uc.cfg.JWTSecret), nil
	}, jwt.WithIssuer(uc.cfg.TokenIssuer))

	if err != nil || !token.Valid {
		return nil, entity.ErrInvalidToken
	}

	return claims, nil
}

func toUserDTO(user *entity.User) *entity.UserDTO {
	return &entity.UserDTO{
		ID:       user.ID,
		OrgID:    user.OrgID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		IsActive: user.IsActive,
	}
}
