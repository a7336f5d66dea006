package supportRepo

import "pawhub/models"

// SupportRepository defines data access for support tickets and their threads.
type SupportRepository interface {
	// GetTicket retrieves a ticket by its unique ID; nil when absent.
	GetTicket(id string) (*models.SupportTicket, error)
	// CreateTicket inserts a new ticket.
	CreateTicket(t *models.SupportTicket) error
	// UpdateTicket modifies an existing ticket.
	UpdateTicket(t *models.SupportTicket) error
	// ListTickets retrieves tickets matching the filter, most recently
	// updated first.
	ListTickets(filter models.TicketListFilter) ([]models.SupportTicket, error)
	// AddMessage appends a message to a ticket thread and bumps the ticket's
	// updated time.
	AddMessage(m *models.TicketMessage) error
	// ListMessages retrieves a ticket's thread, oldest first.
	ListMessages(ticketID string) ([]models.TicketMessage, error)
}
