package recordsRepo

import "pawhub/models"

// RecordsRepository defines data access for petshop orders and adoption
// posts. Both mostly feed the admin dashboard's full-profile view.
type RecordsRepository interface {
	// CreateOrder inserts a new order.
	CreateOrder(o *models.Order) error
	// ListOrdersByUser retrieves a user's orders, newest first.
	ListOrdersByUser(userID string) ([]models.Order, error)
	// UpdateOrderStatus moves an order to a new status.
	UpdateOrderStatus(id, status string) error

	// CreateAdoptPost inserts a new adoption listing.
	CreateAdoptPost(p *models.AdoptPost) error
	// ListAdoptPostsByUser retrieves a user's adoption listings, newest first.
	ListAdoptPostsByUser(userID string) ([]models.AdoptPost, error)
	// UpdateAdoptPostStatus moves a listing to a new status.
	UpdateAdoptPostStatus(id, status string) error
}
