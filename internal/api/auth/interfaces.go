package auth

import (
	"context"

	"github.com/matterai/timesheet-backend/internal/entity"
)

type AuthUsecase interface {
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error)
	CurrentUser(ctx context.Context, userID string) (*entity.UserDTO, error)
}
