package support

import (
	"testing"

	"pawhub/models"
	"pawhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSupportRepo struct {
	tickets  map[string]*models.SupportTicket
	messages []models.TicketMessage
}

func newMemSupportRepo() *memSupportRepo {
	return &memSupportRepo{tickets: map[string]*models.SupportTicket{}}
}

func (r *memSupportRepo) GetTicket(id string) (*models.SupportTicket, error) {
	if t, ok := r.tickets[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, nil
}

func (r *memSupportRepo) CreateTicket(t *models.SupportTicket) error {
	copied := *t
	r.tickets[t.ID] = &copied
	return nil
}

func (r *memSupportRepo) UpdateTicket(t *models.SupportTicket) error {
	copied := *t
	r.tickets[t.ID] = &copied
	return nil
}

func (r *memSupportRepo) ListTickets(filter models.TicketListFilter) ([]models.SupportTicket, error) {
	var out []models.SupportTicket
	for _, t := range r.tickets {
		if filter.UserID != "" && t.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *memSupportRepo) AddMessage(m *models.TicketMessage) error {
	r.messages = append(r.messages, *m)
	return nil
}

func (r *memSupportRepo) ListMessages(ticketID string) ([]models.TicketMessage, error) {
	var out []models.TicketMessage
	for _, m := range r.messages {
		if m.TicketID == ticketID {
			out = append(out, m)
		}
	}
	return out, nil
}

func supportFixture() (*DefaultSupportService, *memSupportRepo) {
	repo := newMemSupportRepo()
	return &DefaultSupportService{Repo: repo}, repo
}

func TestOpenTicket(t *testing.T) {
	svc, repo := supportFixture()

	ticket, err := svc.OpenTicket("u1", "Refund for cancelled visit", models.TicketCategoryPayment, "The vet cancelled but I was charged.")
	require.NoError(t, err)
	assert.Equal(t, models.TicketOpen, ticket.Status)
	assert.Equal(t, models.TicketNormal, ticket.Priority)
	assert.Equal(t, models.TicketCategoryPayment, ticket.Category)

	messages, _ := repo.ListMessages(ticket.ID)
	require.Len(t, messages, 1)
	assert.Equal(t, "u1", messages[0].AuthorID)
	assert.False(t, messages[0].IsFromAdmin)
}

func TestOpenTicket_DefaultsCategory(t *testing.T) {
	svc, _ := supportFixture()
	ticket, err := svc.OpenTicket("u1", "Hello", "", "General question")
	require.NoError(t, err)
	assert.Equal(t, models.TicketCategoryOther, ticket.Category)
}

func TestOpenTicket_Validation(t *testing.T) {
	svc, _ := supportFixture()

	_, err := svc.OpenTicket("u1", "", "", "body")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrValidation, svcErr.Kind)

	_, err = svc.OpenTicket("u1", "subject", "NONSENSE", "body")
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrValidation, svcErr.Kind)
}

func TestGetTicket_Visibility(t *testing.T) {
	svc, _ := supportFixture()
	ticket, err := svc.OpenTicket("u1", "subject", "", "body")
	require.NoError(t, err)

	_, err = svc.GetTicket("u1", false, ticket.ID)
	assert.NoError(t, err)

	_, err = svc.GetTicket("someone-else", false, ticket.ID)
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrForbidden, svcErr.Kind)

	// Admins read everything.
	_, err = svc.GetTicket("admin-1", true, ticket.ID)
	assert.NoError(t, err)
}

func TestReply_Workflow(t *testing.T) {
	svc, repo := supportFixture()
	ticket, err := svc.OpenTicket("u1", "subject", "", "body")
	require.NoError(t, err)

	// An admin reply moves a fresh ticket into progress.
	_, err = svc.Reply("admin-1", true, ticket.ID, "Looking into it.")
	require.NoError(t, err)
	stored, _ := repo.GetTicket(ticket.ID)
	assert.Equal(t, models.TicketInProgress, stored.Status)

	// The client writing back to a resolved ticket reopens it.
	_, err = svc.SetStatus(ticket.ID, models.TicketResolved)
	require.NoError(t, err)
	_, err = svc.Reply("u1", false, ticket.ID, "Still not fixed.")
	require.NoError(t, err)
	stored, _ = repo.GetTicket(ticket.ID)
	assert.Equal(t, models.TicketOpen, stored.Status)
}

func TestReply_ClosedTicket(t *testing.T) {
	svc, _ := supportFixture()
	ticket, err := svc.OpenTicket("u1", "subject", "", "body")
	require.NoError(t, err)
	_, err = svc.SetStatus(ticket.ID, models.TicketClosed)
	require.NoError(t, err)

	_, err = svc.Reply("u1", false, ticket.ID, "anyone there?")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
}

func TestSetStatusAndPriority_Validation(t *testing.T) {
	svc, _ := supportFixture()
	ticket, err := svc.OpenTicket("u1", "subject", "", "body")
	require.NoError(t, err)

	_, err = svc.SetStatus(ticket.ID, "LIMBO")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrValidation, svcErr.Kind)

	updated, err := svc.SetPriority(ticket.ID, models.TicketUrgent)
	require.NoError(t, err)
	assert.Equal(t, models.TicketUrgent, updated.Priority)

	_, err = svc.SetPriority(ticket.ID, "WHENEVER")
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrValidation, svcErr.Kind)
}
