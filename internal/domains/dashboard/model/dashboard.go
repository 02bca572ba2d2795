package model

import (
	"time"

	"github.com/google/uuid"
)

// Summary is the headline block of the dashboard.
// Overdue is derived from due dates at query time.
type Summary struct {
	TotalBooks      int `json:"total_books"`
	IssuedBooks     int `json:"issued_books"`
	AvailableCopies int `json:"available_copies"`
	TotalMembers    int `json:"total_members"`
	OverdueBooks    int `json:"overdue_books"`
}

// RecentBook is a catalog entry on the "recently added" panel.
type RecentBook struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// QuickStats is the secondary stats strip.
type QuickStats struct {
	DueToday            int    `json:"due_today"`
	NewMembersThisMonth int    `json:"new_members_this_month"`
	MostPopularCategory string `json:"most_popular_category"`
}
