package entity

import (
	"strings"
	"time"
)

// PartnerBody holds the scalar columns of the partner table.
type PartnerBody struct {
	Name      string  `db:"name" json:"name" valid:"required"`
	Agency    string  `db:"agency" json:"agency" valid:"required"`
	ImageURL  *string `db:"image_url" json:"image_url"`
	SortOrder int     `db:"sort_order" json:"sort_order"`
	IsActive  bool    `db:"is_active" json:"is_active"`
}

// Partner represents the partner table.
type Partner struct {
	Id        int       `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	PartnerBody
}

// Validate checks required partner fields.
func (pb *PartnerBody) Validate() error {
	pb.Name = strings.TrimSpace(pb.Name)
	pb.Agency = strings.TrimSpace(pb.Agency)
	if pb.Name == "" || pb.Agency == "" {
		return &ValidationError{Message: "Le nom et l'agence sont requis"}
	}
	return nil
}
