package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Book represents one catalog title together with its physical copy counts.
// AvailableCopies is only ever mutated through the copy ledger
// (ReserveCopyWithTx/ReleaseCopyWithTx) or an explicit copy adjustment;
// the invariant 0 <= available <= total holds at all times.
type Book struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Author   string    `json:"author" db:"author"`
	ISBN     string    `json:"isbn" db:"isbn"`
	Category string    `json:"category" db:"category"`

	Tags     pq.StringArray `json:"tags" db:"tags"`
	CoverURL *string        `json:"cover_url,omitempty" db:"cover_url"`

	TotalCopies     int `json:"total_copies" db:"total_copies"`
	AvailableCopies int `json:"available_copies" db:"available_copies"`

	// Optimistic locking
	Version int `json:"version" db:"version"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsAvailable reports whether at least one copy can be issued.
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}
