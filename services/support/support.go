package support

import (
	"fmt"

	supportRepo "pawhub/database/repository/support"
	"pawhub/models"
	"pawhub/utils"

	"github.com/google/uuid"
)

// SupportService defines business logic for the help desk.
type SupportService interface {
	// OpenTicket creates a ticket with its first message.
	OpenTicket(userID, subject, category, body string) (*models.SupportTicket, error)
	// GetTicket retrieves the ticket thread; non-admin callers only see
	// their own tickets.
	GetTicket(requesterID string, isAdmin bool, ticketID string) (*models.TicketWithMessages, error)
	// ListMine retrieves the requester's tickets.
	ListMine(userID string) ([]models.SupportTicket, error)
	// ListAll retrieves tickets for the admin inbox.
	ListAll(filter models.TicketListFilter) ([]models.SupportTicket, error)
	// Reply appends a message; replying reopens a resolved ticket when the
	// client writes back.
	Reply(requesterID string, isAdmin bool, ticketID, body string) (*models.TicketMessage, error)
	// SetStatus moves the ticket through its workflow.
	SetStatus(ticketID, status string) (*models.SupportTicket, error)
	// SetPriority reprioritises the ticket.
	SetPriority(ticketID, priority string) (*models.SupportTicket, error)
}

// DefaultSupportService is the production implementation.
type DefaultSupportService struct {
	Repo supportRepo.SupportRepository
}

func validCategory(category string) bool {
	switch category {
	case models.TicketCategoryBooking, models.TicketCategoryPayment,
		models.TicketCategoryAccount, models.TicketCategoryAdoption, models.TicketCategoryOther:
		return true
	}
	return false
}

// OpenTicket creates a ticket with its first message.
func (s *DefaultSupportService) OpenTicket(userID, subject, category, body string) (*models.SupportTicket, error) {
	if subject == "" || body == "" {
		return nil, utils.NewServiceError(utils.ErrValidation, "subject and message are required")
	}
	if category == "" {
		category = models.TicketCategoryOther
	}
	if !validCategory(category) {
		return nil, utils.NewServiceError(utils.ErrValidation, fmt.Sprintf("unknown category %q", category))
	}

	t := &models.SupportTicket{
		ID:       uuid.New().String(),
		UserID:   userID,
		Subject:  subject,
		Category: category,
		Status:   models.TicketOpen,
		Priority: models.TicketNormal,
	}
	if err := s.Repo.CreateTicket(t); err != nil {
		return nil, err
	}

	msg := &models.TicketMessage{
		ID:       uuid.New().String(),
		TicketID: t.ID,
		AuthorID: userID,
		Body:     body,
	}
	if err := s.Repo.AddMessage(msg); err != nil {
		return nil, err
	}
	return t, nil
}

// getTicket loads a ticket or returns a not-found service error.
func (s *DefaultSupportService) getTicket(ticketID string) (*models.SupportTicket, error) {
	t, err := s.Repo.GetTicket(ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("ticket %s not found", ticketID))
	}
	return t, nil
}

// GetTicket retrieves the ticket thread.
func (s *DefaultSupportService) GetTicket(requesterID string, isAdmin bool, ticketID string) (*models.TicketWithMessages, error) {
	t, err := s.getTicket(ticketID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && t.UserID != requesterID {
		return nil, utils.NewServiceError(utils.ErrForbidden, "ticket belongs to another account")
	}

	messages, err := s.Repo.ListMessages(ticketID)
	if err != nil {
		return nil, err
	}
	return &models.TicketWithMessages{SupportTicket: *t, Messages: messages}, nil
}

// ListMine retrieves the requester's tickets.
func (s *DefaultSupportService) ListMine(userID string) ([]models.SupportTicket, error) {
	return s.Repo.ListTickets(models.TicketListFilter{UserID: userID})
}

// ListAll retrieves tickets for the admin inbox.
func (s *DefaultSupportService) ListAll(filter models.TicketListFilter) ([]models.SupportTicket, error) {
	return s.Repo.ListTickets(filter)
}

// Reply appends a message to the thread.
func (s *DefaultSupportService) Reply(requesterID string, isAdmin bool, ticketID, body string) (*models.TicketMessage, error) {
	if body == "" {
		return nil, utils.NewServiceError(utils.ErrValidation, "message body is required")
	}
	t, err := s.getTicket(ticketID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && t.UserID != requesterID {
		return nil, utils.NewServiceError(utils.ErrForbidden, "ticket belongs to another account")
	}
	if t.Status == models.TicketClosed {
		return nil, utils.NewServiceError(utils.ErrInvalidState, "ticket is closed")
	}

	msg := &models.TicketMessage{
		ID:          uuid.New().String(),
		TicketID:    ticketID,
		AuthorID:    requesterID,
		IsFromAdmin: isAdmin,
		Body:        body,
	}
	if err := s.Repo.AddMessage(msg); err != nil {
		return nil, err
	}

	// A client writing back to a resolved ticket reopens it; an admin reply
	// moves a fresh ticket into progress.
	switch {
	case !isAdmin && t.Status == models.TicketResolved:
		t.Status = models.TicketOpen
	case isAdmin && t.Status == models.TicketOpen:
		t.Status = models.TicketInProgress
	default:
		return msg, nil
	}
	if err := s.Repo.UpdateTicket(t); err != nil {
		return nil, err
	}
	return msg, nil
}

// SetStatus moves the ticket through its workflow.
func (s *DefaultSupportService) SetStatus(ticketID, status string) (*models.SupportTicket, error) {
	switch status {
	case models.TicketOpen, models.TicketInProgress, models.TicketResolved, models.TicketClosed:
	default:
		return nil, utils.NewServiceError(utils.ErrValidation, fmt.Sprintf("unknown status %q", status))
	}
	t, err := s.getTicket(ticketID)
	if err != nil {
		return nil, err
	}
	t.Status = status
	if err := s.Repo.UpdateTicket(t); err != nil {
		return nil, err
	}
	return t, nil
}

// SetPriority reprioritises the ticket.
func (s *DefaultSupportService) SetPriority(ticketID, priority string) (*models.SupportTicket, error) {
	switch priority {
	case models.TicketLow, models.TicketNormal, models.TicketHigh, models.TicketUrgent:
	default:
		return nil, utils.NewServiceError(utils.ErrValidation, fmt.Sprintf("unknown priority %q", priority))
	}
	t, err := s.getTicket(ticketID)
	if err != nil {
		return nil, err
	}
	t.Priority = priority
	if err := s.Repo.UpdateTicket(t); err != nil {
		return nil, err
	}
	return t, nil
}
