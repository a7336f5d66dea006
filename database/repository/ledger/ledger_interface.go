package ledgerRepo

import (
	"context"

	"pawhub/models"
)

// LedgerRepository defines data access for collection records and their
// append-only adjustment log.
type LedgerRepository interface {
	// GetRecord retrieves the collection record for one provider-month; nil
	// when no collection has happened yet.
	GetRecord(providerID, month string) (*models.CollectionRecord, error)
	// ListRecordsForProvider retrieves all collection records of one provider.
	ListRecordsForProvider(providerID string) ([]models.CollectionRecord, error)
	// ListRecordsForMonth retrieves all collection records of one month.
	ListRecordsForMonth(month string) ([]models.CollectionRecord, error)
	// ApplyAdjustment upserts the collection record and appends the
	// adjustment event in a single transaction, so the log never disagrees
	// with the current amount.
	ApplyAdjustment(ctx context.Context, record *models.CollectionRecord, adj *models.CollectionAdjustment) error
	// ListAdjustments retrieves the adjustment log for one provider-month,
	// oldest first.
	ListAdjustments(providerID, month string) ([]models.CollectionAdjustment, error)
}
