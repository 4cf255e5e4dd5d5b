package organization

import (
	"context"

	"github.com/matterai/timesheet-backend/internal/entity"
)

type OrganizationUsecase interface {
	CreateOrganization(ctx context.Context, actor *entity.UserDTO, req *entity.CreateOrgRequest) (*entity.Organization, *entity.UserDTO, error)
	GetOrganization(ctx context.Context, actor *entity.UserDTO, id string) (*entity.Organization, error)
	ListOrganizations(ctx context.Context, actor *entity.UserDTO) ([]*entity.Organization, error)
	DeleteOrganization(ctx context.Context, actor *entity.UserDTO, id string) error
	CreateUser(ctx context.Context, actor *entity.UserDTO, req *entity.CreateUserRequest) (*entity.UserDTO, error)
	ListUsers(ctx context.Context, actor *entity.UserDTO) ([]*entity.UserDTO, error)
	SetUserActive(ctx context.Context, actor *entity.UserDTO, userID string, active bool) error
	DeleteUser(ctx context.Context, actor *entity.UserDTO, userID string) error
}
