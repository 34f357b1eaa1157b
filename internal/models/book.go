package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reading statuses for a book. Transitions normally run
// WantToRead -> CurrentlyReading -> Completed, driven by session logging
// or explicit edits. Edits may also regress a status; that path is not
// guarded.
const (
	StatusWantToRead       = "Want to Read"
	StatusCurrentlyReading = "Currently Reading"
	StatusCompleted        = "Completed"
)

type Book struct {
	ID            string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID        string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string     `gorm:"not null" json:"title"`
	Author        string     `gorm:"not null" json:"author"`
	TotalPages    int        `gorm:"not null" json:"total_pages"`
	CurrentPage   int        `gorm:"default:0" json:"current_page"`
	Status        string     `gorm:"default:'Want to Read'" json:"status"`
	CoverURL      *string    `json:"cover_url,omitempty"`
	Rating        *int       `json:"rating,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	StreakDays    int        `gorm:"default:0" json:"streak_days"` // reserved, never computed
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Progress returns the completion percentage for the book.
func (b *Book) Progress() int {
	if b.TotalPages <= 0 {
		return 0
	}
	return int(math.Round(float64(b.CurrentPage) / float64(b.TotalPages) * 100))
}

// BeforeCreate hook to set UUID before creating a Book
func (book *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	return
}

func (Book) TableName() string {
	return "books"
}
