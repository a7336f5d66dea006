package admin

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pawhub/models"
	"pawhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newSanction(adminID, userID, sanctionType, reason string) *models.UserSanction {
	return &models.UserSanction{
		ID:       uuid.New().String(),
		UserID:   userID,
		Type:     sanctionType,
		Reason:   reason,
		IssuedBy: adminID,
		IssuedAt: time.Now(),
	}
}

// Warn appends a warning to the user's record. Warnings carry no account
// state, only the audit row.
func (s *DefaultAdminService) Warn(adminID, userID, reason string) (*models.UserSanction, error) {
	if reason == "" {
		return nil, utils.NewServiceError(utils.ErrValidation, "a reason is required")
	}
	if _, err := s.getUser(userID); err != nil {
		return nil, err
	}

	sanction := newSanction(adminID, userID, models.SanctionWarning, reason)
	if err := s.SanctionRepo.Create(sanction); err != nil {
		return nil, err
	}
	return sanction, nil
}

// Suspend blocks the user for a number of days.
func (s *DefaultAdminService) Suspend(adminID, userID, reason string, days int) (*models.UserSanction, error) {
	if reason == "" {
		return nil, utils.NewServiceError(utils.ErrValidation, "a reason is required")
	}
	if days <= 0 {
		return nil, utils.NewServiceError(utils.ErrValidation, "suspension length must be positive")
	}
	usr, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	if usr.IsBanned {
		return nil, utils.NewServiceError(utils.ErrInvalidState, "user is banned; a suspension would be meaningless")
	}

	until := time.Now().AddDate(0, 0, days)
	sanction := newSanction(adminID, userID, models.SanctionSuspension, reason)
	sanction.DurationDays = days
	sanction.ExpiresAt = &until
	sanction.Metadata = map[string]string{"days": strconv.Itoa(days)}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = s.SanctionRepo.ApplyWithUserUpdate(ctx, sanction, bson.M{"suspended_until": until})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("User suspended",
		zap.String("userID", userID), zap.Int("days", days), zap.String("by", adminID))
	return sanction, nil
}

// Ban permanently blocks the user. Admin accounts cannot be banned, a second
// ban is rejected, and any active suspension is cleared: a banned user's
// record never carries both states.
func (s *DefaultAdminService) Ban(adminID, userID, reason string) (*models.UserSanction, error) {
	if reason == "" {
		return nil, utils.NewServiceError(utils.ErrValidation, "a reason is required")
	}
	usr, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	if usr.Role == models.RoleAdmin {
		return nil, utils.NewServiceError(utils.ErrForbidden, "admin accounts cannot be banned")
	}
	if usr.IsBanned {
		return nil, utils.NewServiceError(utils.ErrInvalidState, "user is already banned")
	}

	now := time.Now()
	sanction := newSanction(adminID, userID, models.SanctionBan, reason)
	update := bson.M{
		"is_banned":       true,
		"banned_at":       now,
		"banned_reason":   reason,
		"banned_by":       adminID,
		"suspended_until": nil,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.SanctionRepo.ApplyWithUserUpdate(ctx, sanction, update); err != nil {
		return nil, err
	}

	utils.GetLogger().Warn("User banned",
		zap.String("userID", userID), zap.String("by", adminID), zap.String("reason", reason))
	return sanction, nil
}

// Unban reverses a ban.
func (s *DefaultAdminService) Unban(adminID, userID, reason string) (*models.UserSanction, error) {
	usr, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	if !usr.IsBanned {
		return nil, utils.NewServiceError(utils.ErrInvalidState, "user is not banned")
	}

	sanction := newSanction(adminID, userID, models.SanctionUnban, reason)
	update := bson.M{
		"is_banned":     false,
		"banned_at":     nil,
		"banned_reason": "",
		"banned_by":     "",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.SanctionRepo.ApplyWithUserUpdate(ctx, sanction, update); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("User unbanned", zap.String("userID", userID), zap.String("by", adminID))
	return sanction, nil
}

// LiftSuspension ends an active suspension early.
func (s *DefaultAdminService) LiftSuspension(adminID, userID, reason string) (*models.UserSanction, error) {
	usr, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	if usr.SuspendedUntil == nil || !usr.SuspendedUntil.After(time.Now()) {
		return nil, utils.NewServiceError(utils.ErrInvalidState, "user has no active suspension")
	}

	sanction := newSanction(adminID, userID, models.SanctionLift, reason)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.SanctionRepo.ApplyWithUserUpdate(ctx, sanction, bson.M{"suspended_until": nil}); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Suspension lifted", zap.String("userID", userID), zap.String("by", adminID))
	return sanction, nil
}

// SanctionHistory lists a user's sanctions decorated with the issuing admin's
// identity. An admin account deleted since keeps the bare row.
func (s *DefaultAdminService) SanctionHistory(userID string) ([]models.SanctionWithAdmin, error) {
	sanctions, err := s.SanctionRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	admins := map[string]*models.User{}
	out := make([]models.SanctionWithAdmin, 0, len(sanctions))
	for _, sc := range sanctions {
		entry := models.SanctionWithAdmin{UserSanction: sc}
		if sc.IssuedBy != "" {
			adminUser, ok := admins[sc.IssuedBy]
			if !ok {
				adminUser, err = s.UserRepo.GetByID(sc.IssuedBy)
				if err != nil {
					return nil, fmt.Errorf("failed to resolve issuing admin: %w", err)
				}
				admins[sc.IssuedBy] = adminUser
			}
			entry.IssuedByAdmin = adminUser
		}
		out = append(out, entry)
	}
	return out, nil
}
