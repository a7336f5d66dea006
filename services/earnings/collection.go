package earnings

import (
	"context"
	"fmt"
	"time"

	"pawhub/models"
	"pawhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// applyCollection recomputes the month row, derives the new collected amount
// through compute, and persists record plus audit event in one transaction.
func (s *DefaultEarningsService) applyCollection(
	adminID, providerID, rawMonth, note, op string,
	requestedDa int,
	compute func(current, total int) (int, error),
) (*models.MonthlyEarnings, error) {
	if err := s.ensureProvider(providerID); err != nil {
		return nil, err
	}

	month := models.CanonMonth(rawMonth)
	row, err := s.MonthRow(providerID, month)
	if err != nil {
		return nil, err
	}

	newAmount, err := compute(row.CollectedDa, row.TotalCommissionDa)
	if err != nil {
		return nil, err
	}

	record := &models.CollectionRecord{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		Month:      month,
		AmountDa:   newAmount,
		Note:       note,
		UpdatedBy:  adminID,
	}
	adj := &models.CollectionAdjustment{
		ID:          uuid.New().String(),
		ProviderID:  providerID,
		Month:       month,
		Op:          op,
		AmountDa:    requestedDa,
		ResultingDa: newAmount,
		Note:        note,
		AdminID:     adminID,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.LedgerRepo.ApplyAdjustment(ctx, record, adj); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Collection adjusted",
		zap.String("providerID", providerID),
		zap.String("month", month),
		zap.String("op", op),
		zap.Int("resultingDa", newAmount))

	row.CollectedDa = newAmount
	applyRecord(row, &models.CollectionRecord{AmountDa: newAmount})
	return row, nil
}

// CollectAll marks the month's full commission collected.
func (s *DefaultEarningsService) CollectAll(adminID, providerID, rawMonth, note string) (*models.MonthlyEarnings, error) {
	return s.applyCollection(adminID, providerID, rawMonth, note, models.AdjustCollectAll, 0,
		func(current, total int) (int, error) {
			return total, nil
		})
}

// Uncollect resets the month's collected amount to zero.
func (s *DefaultEarningsService) Uncollect(adminID, providerID, rawMonth, note string) (*models.MonthlyEarnings, error) {
	return s.applyCollection(adminID, providerID, rawMonth, note, models.AdjustUncollect, 0,
		func(current, total int) (int, error) {
			return 0, nil
		})
}

// SetCollected sets the collected amount outright. Values outside
// [0, total commission] are a bookkeeping error and fail without mutation.
func (s *DefaultEarningsService) SetCollected(adminID, providerID, rawMonth string, amountDa int, note string) (*models.MonthlyEarnings, error) {
	if amountDa < 0 {
		return nil, utils.NewServiceError(utils.ErrValidation, "collected amount cannot be negative")
	}
	return s.applyCollection(adminID, providerID, rawMonth, note, models.AdjustSet, amountDa,
		func(current, total int) (int, error) {
			if amountDa > total {
				return 0, utils.NewServiceError(utils.ErrInvalidState,
					fmt.Sprintf("cannot set %d DA collected, only %d DA due", amountDa, total))
			}
			return amountDa, nil
		})
}

// AddCollected records a partial payment, clamped at the total due.
func (s *DefaultEarningsService) AddCollected(adminID, providerID, rawMonth string, amountDa int, note string) (*models.MonthlyEarnings, error) {
	if amountDa <= 0 {
		return nil, utils.NewServiceError(utils.ErrValidation, "payment amount must be positive")
	}
	return s.applyCollection(adminID, providerID, rawMonth, note, models.AdjustAdd, amountDa,
		func(current, total int) (int, error) {
			next := current + amountDa
			if next > total {
				next = total
			}
			return next, nil
		})
}

// SubtractCollected backs out part of a recorded payment. Subtracting more
// than was recorded is a bookkeeping error and fails without mutation.
func (s *DefaultEarningsService) SubtractCollected(adminID, providerID, rawMonth string, amountDa int, note string) (*models.MonthlyEarnings, error) {
	if amountDa <= 0 {
		return nil, utils.NewServiceError(utils.ErrValidation, "amount to subtract must be positive")
	}
	return s.applyCollection(adminID, providerID, rawMonth, note, models.AdjustSubtract, amountDa,
		func(current, total int) (int, error) {
			if amountDa > current {
				return 0, utils.NewServiceError(utils.ErrInvalidState,
					fmt.Sprintf("cannot subtract %d DA, only %d DA recorded", amountDa, current))
			}
			return current - amountDa, nil
		})
}
