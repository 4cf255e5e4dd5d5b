package validator

import (
	"fmt"
	"net/mail"

	"github.com/matterai/timesheet-backend/internal/entity"
)

const minPasswordLength = 8

// ValidateLogin validates LoginRequest
func (v *Validator) ValidateLogin(req *entity.LoginRequest) error {
	if req.Username == "" {
		return fmt.Errorf("%w: username", entity.ErrMissingField)
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password", entity.ErrMissingField)
	}
	return nil
}

// ValidateCreateUser validates user creation by an administrator
func (v *Validator) ValidateCreateUser(req *entity.CreateUserRequest) error {
	if req.Username == "" {
		return fmt.Errorf("%w: username", entity.ErrMissingField)
	}
	if req.Email == "" {
		return fmt.Errorf("%w: email", entity.ErrMissingField)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: email %q", entity.ErrInvalidFormat, req.Email)
	}
	if req.Name == "" {
		return fmt.Errorf("%w: name", entity.ErrMissingField)
	}
	if len(req.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", entity.ErrInvalidParameter, minPasswordLength)
	}
	switch entity.RoleName(req.Role) {
	case entity.RoleSuperAdmin, entity.RoleOrgAdmin, entity.RoleMember:
	default:
		return fmt.Errorf("%w: role %q", entity.ErrInvalidParameter, req.Role)
	}
	return nil
}

// ValidateCreateOrg validates organization creation
func (v *Validator) ValidateCreateOrg(req *entity.CreateOrgRequest) error {
	if req.OrgName == "" {
		return fmt.Errorf("%w: org_name", entity.ErrMissingField)
	}
	if req.AdminUsername == "" {
		return fmt.Errorf("%w: admin_username", entity.ErrMissingField)
	}
	if req.AdminEmail == "" {
		return fmt.Errorf("%w: admin_email", entity.ErrMissingField)
	}
	if _, err := mail.ParseAddress(req.AdminEmail); err != nil {
		return fmt.Errorf("%w: admin_email %q", entity.ErrInvalidFormat, req.AdminEmail)
	}
	if req.AdminName == "" {
		return fmt.Errorf("%w: admin_name", entity.ErrMissingField)
	}
	if len(req.AdminPassword) < minPasswordLength {
		return fmt.Errorf("%w: admin_password must be at least %d characters", entity.ErrInvalidParameter, minPasswordLength)
	}
	return nil
}
