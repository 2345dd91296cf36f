package entity

import (
	"database/sql"
	"time"
)

// Subscription represents the newsletter_subscription table. Rows are never
// hard-deleted: unsubscribing flips is_active so a later resubscribe reuses
// the same row and id.
type Subscription struct {
	Id             int          `db:"id" json:"id"`
	Email          string       `db:"email" json:"email"`
	IsActive       bool         `db:"is_active" json:"is_active"`
	SubscribedAt   time.Time    `db:"subscribed_at" json:"subscribed_at"`
	UnsubscribedAt sql.NullTime `db:"unsubscribed_at" json:"unsubscribed_at"`
}
