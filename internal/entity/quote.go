package entity

import (
	"strings"
	"time"
)

// QuoteStatus is the processing state of a quote request.
type QuoteStatus string

const (
	QuoteStatusNew        QuoteStatus = "new"
	QuoteStatusInProgress QuoteStatus = "in_progress"
	QuoteStatusQuoted     QuoteStatus = "quoted"
	QuoteStatusClosed     QuoteStatus = "closed"
)

var ValidQuoteStatuses = map[QuoteStatus]bool{
	QuoteStatusNew:        true,
	QuoteStatusInProgress: true,
	QuoteStatusQuoted:     true,
	QuoteStatusClosed:     true,
}

// QuoteRequestInsert is a lead as submitted by the public quote form.
type QuoteRequestInsert struct {
	FirstName      string     `db:"first_name" json:"first_name" valid:"required"`
	LastName       string     `db:"last_name" json:"last_name" valid:"required"`
	Email          string     `db:"email" json:"email" valid:"required,email"`
	Phone          *string    `db:"phone" json:"phone"`
	Message        *string    `db:"message" json:"message"`
	DestinationId  *int       `db:"destination_id" json:"destination_id"`
	ThemeId        *int       `db:"theme_id" json:"theme_id"`
	TypeId         *int       `db:"type_id" json:"type_id"`
	DepartureDate  *time.Time `db:"departure_date" json:"departure_date"`
	TravelersCount *int       `db:"travelers_count" json:"travelers_count"`
}

// QuoteRequest represents the quote_request table. Reference is the public
// identifier handed back to the requester; ids stay internal.
type QuoteRequest struct {
	Id        int         `db:"id" json:"id"`
	Reference string      `db:"reference" json:"reference"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
	Status    QuoteStatus `db:"status" json:"status"`
	QuoteRequestInsert
}

// QuoteRequestFilters narrows the admin quote listing.
type QuoteRequestFilters struct {
	Status *QuoteStatus
	Email  string
}

// Validate checks the required lead fields.
func (qi *QuoteRequestInsert) Validate() error {
	qi.FirstName = strings.TrimSpace(qi.FirstName)
	qi.LastName = strings.TrimSpace(qi.LastName)
	qi.Email = strings.TrimSpace(qi.Email)
	if qi.FirstName == "" || qi.LastName == "" {
		return &ValidationError{Message: "Le prénom et le nom sont requis"}
	}
	if qi.Email == "" {
		return &ValidationError{Message: "L'adresse e-mail est requise"}
	}
	if !IsValidEmail(qi.Email) {
		return &ValidationError{Message: "L'adresse e-mail est invalide"}
	}
	return nil
}
