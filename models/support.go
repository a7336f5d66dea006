package models

import "time"

// Support ticket categories.
const (
	TicketCategoryBooking  = "BOOKING"
	TicketCategoryPayment  = "PAYMENT"
	TicketCategoryAccount  = "ACCOUNT"
	TicketCategoryAdoption = "ADOPTION"
	TicketCategoryOther    = "OTHER"
)

// Support ticket statuses.
const (
	TicketOpen       = "OPEN"
	TicketInProgress = "IN_PROGRESS"
	TicketResolved   = "RESOLVED"
	TicketClosed     = "CLOSED"
)

// Support ticket priorities.
const (
	TicketLow    = "LOW"
	TicketNormal = "NORMAL"
	TicketHigh   = "HIGH"
	TicketUrgent = "URGENT"
)

// SupportTicket is a help-desk thread opened by a user.
type SupportTicket struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Subject   string    `bson:"subject" json:"subject"`
	Category  string    `bson:"category" json:"category"`
	Status    string    `bson:"status" json:"status"`
	Priority  string    `bson:"priority" json:"priority"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// TicketMessage is one entry in a ticket thread, ordered by creation time.
type TicketMessage struct {
	ID          string    `bson:"id" json:"id"`
	TicketID    string    `bson:"ticket_id" json:"ticketId"`
	AuthorID    string    `bson:"author_id" json:"authorId"`
	IsFromAdmin bool      `bson:"is_from_admin" json:"isFromAdmin"`
	Body        string    `bson:"body" json:"body"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// TicketWithMessages is the detail view.
type TicketWithMessages struct {
	SupportTicket
	Messages []TicketMessage `json:"messages"`
}

// TicketListFilter carries listing filters for the admin inbox.
type TicketListFilter struct {
	Status   string
	Category string
	UserID   string
	Limit    int64
	Offset   int64
}
