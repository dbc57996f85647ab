package booking

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinashk/crickstand/internal/models"
)

// RoleChecker answers whether a user holds the admin role. The production
// implementation reads the role assignment tables; no identity is special-
// cased in code.
type RoleChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// ApprovalGateway is the operator-facing surface for confirm and reject. It
// holds no state of its own: it checks the caller's role and delegates to
// the lifecycle. An unauthorized call touches neither bookings nor
// inventory.
type ApprovalGateway struct {
	roles     RoleChecker
	lifecycle *Lifecycle
}

func NewApprovalGateway(roles RoleChecker, lifecycle *Lifecycle) *ApprovalGateway {
	return &ApprovalGateway{roles: roles, lifecycle: lifecycle}
}

func (g *ApprovalGateway) Confirm(ctx context.Context, operatorID, bookingID uuid.UUID, utr string) (*models.Booking, error) {
	if err := g.authorize(ctx, operatorID); err != nil {
		return nil, err
	}
	return g.lifecycle.Confirm(ctx, bookingID, utr)
}

func (g *ApprovalGateway) Reject(ctx context.Context, operatorID, bookingID uuid.UUID, reason *string) (*models.Booking, error) {
	if err := g.authorize(ctx, operatorID); err != nil {
		return nil, err
	}
	return g.lifecycle.Reject(ctx, bookingID, reason)
}

func (g *ApprovalGateway) authorize(ctx context.Context, operatorID uuid.UUID) error {
	isAdmin, err := g.roles.IsAdmin(ctx, operatorID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrUnauthorized
	}
	return nil
}

// GormRoleChecker resolves roles through the users and roles tables.
type GormRoleChecker struct {
	db *gorm.DB
}

func NewGormRoleChecker(db *gorm.DB) *GormRoleChecker {
	return &GormRoleChecker{db: db}
}

func (c *GormRoleChecker) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var user models.User
	err := c.db.WithContext(ctx).Preload("Role").First(&user, "id = ?", userID).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Role.Name == models.RoleAdmin, nil
}
