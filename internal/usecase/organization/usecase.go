package organization

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/matterai/timesheet-backend/internal/entity"
	"github.com/matterai/timesheet-backend/internal/pkg/validator"
	"github.com/matterai/timesheet-backend/internal/repository"
	"go.uber.org/zap"
)

// PasswordHasher hashes plaintext passwords for storage.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// OrganizationUsecase implements tenant and user administration
type OrganizationUsecase struct {
	orgRepo   repository.OrganizationRepository
	userRepo  repository.UserRepository
	validator *validator.Validator
	hasher    PasswordHasher
	logger    *zap.Logger
}

// NewUsecase creates a new organization use case
func NewUsecase(
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	validator *validator.Validator,
	hasher PasswordHasher,
	logger *zap.Logger,
) *OrganizationUsecase {
	return &OrganizationUsecase{
		orgRepo:   orgRepo,
		userRepo:  userRepo,
		validator: validator,
		hasher:    hasher,
		logger:    logger,
	}
}

// CreateOrganization provisions a new tenant together with its first
// administrator account. Only super administrators may call it.
func (uc *OrganizationUsecase) CreateOrganization(ctx context.Context, actor *entity.UserDTO, req *entity.CreateOrgRequest) (*entity.Organization, *entity.UserDTO, error) {
	if actor.Role != entity.RoleSuperAdmin {
		return nil, nil, entity.ErrForbidden
	}

	if err := uc.validator.ValidateCreateOrg(req); err != nil {
		return nil, nil, err
	}

	org, err := uc.orgRepo.Create(ctx, &entity.Organization{
		Name:        req.OrgName,
		Description: req.Description,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create organization: %w", err)
	}

	hash, err := uc.hasher.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("hash admin password: %w", err)
	}

	admin, err := uc.userRepo.Create(ctx, &entity.User{
		OrgID:        &org.ID,
		Username:     req.AdminUsername,
		Email:        req.AdminEmail,
		Name:         req.AdminName,
		PasswordHash: hash,
		Role:         entity.RoleOrgAdmin,
		IsActive:     true,
	})
	if err != nil {
		// Roll the tenant back so a retry with a free username succeeds
		if derr := uc.orgRepo.Delete(ctx, org.ID); derr != nil {
			ctxzap.Error(ctx, "failed to roll back organization", zap.Error(derr))
		}
		return nil, nil, fmt.Errorf("create admin user: %w", err)
	}

	ctxzap.Info(ctx, "organization created",
		zap.String("org_id", org.ID),
		zap.String("admin_id", admin.ID),
	)

	return org, toUserDTO(admin), nil
}

// GetOrganization returns one tenant
func (uc *OrganizationUsecase) GetOrganization(ctx context.Context, actor *entity.UserDTO, id string) (*entity.Organization, error) {
	if !canManageOrg(actor, id) {
		return nil, entity.ErrForbidden
	}
	org, err := uc.orgRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return org, nil
}

// ListOrganizations returns all tenants; super administrators only
func (uc *OrganizationUsecase) ListOrganizations(ctx context.Context, actor *entity.UserDTO) ([]*entity.Organization, error) {
	if actor.Role != entity.RoleSuperAdmin {
		return nil, entity.ErrForbidden
	}
	orgs, err := uc.orgRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}

// DeleteOrganization removes a tenant and, via cascade, its users
func (uc *OrganizationUsecase) DeleteOrganization(ctx context.Context, actor *entity.UserDTO, id string) error {
	if actor.Role != entity.RoleSuperAdmin {
		return entity.ErrForbidden
	}
	if err := uc.orgRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	ctxzap.Info(ctx, "organization deleted", zap.String("org_id", id))
	return nil
}

// CreateUser adds a user to a tenant. Organization administrators may only
// create members inside their own tenant.
func (uc *OrganizationUsecase) CreateUser(ctx context.Context, actor *entity.UserDTO, req *entity.CreateUserRequest) (*entity.UserDTO, error) {
	if err := uc.validator.ValidateCreateUser(req); err != nil {
		return nil, err
	}

	role := entity.RoleName(req.Role)
	switch actor.Role {
	case entity.RoleSuperAdmin:
	case entity.RoleOrgAdmin:
		if role == entity.RoleSuperAdmin {
			return nil, entity.ErrForbidden
		}
		if req.OrgID == nil || actor.OrgID == nil || *req.OrgID != *actor.OrgID {
			return nil, entity.ErrForbidden
		}
	default:
		return nil, entity.ErrForbidden
	}

	hash, err := uc.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := uc.userRepo.Create(ctx, &entity.User{
		OrgID:        req.OrgID,
		Username:     req.Username,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	ctxzap.Info(ctx, "user created",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return toUserDTO(user), nil
}

// ListUsers returns the users visible to the actor
func (uc *OrganizationUsecase) ListUsers(ctx context.Context, actor *entity.UserDTO) ([]*entity.UserDTO, error) {
	var orgID *string
	switch actor.Role {
	case entity.RoleSuperAdmin:
	case entity.RoleOrgAdmin:
		if actor.OrgID == nil {
			return nil, entity.ErrForbidden
		}
		orgID = actor.OrgID
	default:
		return nil, entity.ErrForbidden
	}

	users, err := uc.userRepo.List(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	dtos := make([]*entity.UserDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, toUserDTO(user))
	}
	return dtos, nil
}

// SetUserActive enables or disables an account
func (uc *OrganizationUsecase) SetUserActive(ctx context.Context, actor *entity.UserDTO, userID string, active bool) error {
	target, err := uc.userRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if !canManageUser(actor, target) {
		return entity.ErrForbidden
	}

	if err := uc.userRepo.SetActive(ctx, userID, active); err != nil {
		return fmt.Errorf("set user active: %w", err)
	}

	ctxzap.Info(ctx, "user active flag changed",
		zap.String("user_id", userID), zap.Bool("active", active))
	return nil
}

// DeleteUser removes an account
func (uc *OrganizationUsecase) DeleteUser(ctx context.Context, actor *entity.UserDTO, userID string) error {
	target, err := uc.userRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if !canManageUser(actor, target) {
		return entity.ErrForbidden
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	ctxzap.Info(ctx, "user deleted", zap.String("user_id", userID))
	return nil
}

func canManageOrg(actor *entity.UserDTO, orgID string) bool {
	if actor.Role == entity.RoleSuperAdmin {
		return true
	}
	return actor.Role == entity.RoleOrgAdmin && actor.OrgID != nil && *actor.OrgID == orgID
}

func canManageUser(actor *entity.UserDTO, target *entity.User) bool {
	switch actor.Role {
	case entity.RoleSuperAdmin:
		return true
	case entity.RoleOrgAdmin:
		return target.Role != entity.RoleSuperAdmin &&
			actor.OrgID != nil && target.OrgID != nil && *actor.OrgID == *target.OrgID
	default:
		return false
	}
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
