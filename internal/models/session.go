package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is one logged reading interval (start page -> end page) for a
// book. PagesRead is always recomputed server-side from the page range;
// client-supplied values are ignored.
type Session struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	BookID    string    `gorm:"type:uuid;not null;index" json:"book_id"`
	Date      time.Time `json:"date"`
	StartPage int       `gorm:"not null" json:"start_page"`
	EndPage   int       `gorm:"not null" json:"end_page"`
	PagesRead int       `gorm:"not null" json:"pages_read"`
	Notes     string    `gorm:"size:1000;default:''" json:"notes"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

// BeforeCreate hook to set UUID and default date before creating a Session
func (session *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.Date.IsZero() {
		session.Date = time.Now()
	}
	return
}

// BeforeSave recalculates PagesRead so the stored value can never drift
// from the page range.
func (session *Session) BeforeSave(tx *gorm.DB) (err error) {
	session.PagesRead = session.EndPage - session.StartPage
	return
}

func (Session) TableName() string {
	return "sessions"
}
