package flagRepo

import "pawhub/models"

// FlagRepository defines data access for admin flags.
type FlagRepository interface {
	// GetByID retrieves a flag by its unique ID; nil when absent.
	GetByID(id string) (*models.AdminFlag, error)
	// Create inserts a new flag.
	Create(f *models.AdminFlag) error
	// List retrieves flags matching the filter, newest first.
	List(filter models.FlagListFilter) ([]models.AdminFlag, error)
	// ListByUser retrieves all flags attached to one account, newest first.
	ListByUser(userID string) ([]models.AdminFlag, error)
	// ExistsUnresolved reports whether the account already carries an open
	// flag of the given type. The heuristic analysis uses this to avoid
	// stacking duplicates on every run.
	ExistsUnresolved(userID, flagType string) (bool, error)
	// Resolve marks a flag resolved, optionally replacing its note.
	Resolve(id, note string) error
	// Unresolve reopens a resolved flag.
	Unresolve(id string) error
	// Delete removes a flag outright.
	Delete(id string) error
	// Stats aggregates flag counts by state and type.
	Stats() (*models.FlagStats, error)
}
