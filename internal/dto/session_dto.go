package dto

import (
	"time"

	"booklog/internal/models"
)

// CreateSessionRequest: payload to log a reading session. Page fields are
// pointers so that page 0 survives required-field binding.
type CreateSessionRequest struct {
	BookID    string     `json:"book_id" binding:"required,uuid"`
	Date      *time.Time `json:"date"`
	StartPage *int       `json:"start_page" binding:"required,gte=0"`
	EndPage   *int       `json:"end_page" binding:"required,gte=0"`
	Notes     string     `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateSessionRequest: enumerated patch for a session. The book
// reference is not reassignable; pages_read is recomputed on save.
type UpdateSessionRequest struct {
	Date      *time.Time `json:"date"`
	StartPage *int       `json:"start_page" binding:"omitempty,gte=0"`
	EndPage   *int       `json:"end_page" binding:"omitempty,gte=0"`
	Notes     *string    `json:"notes" binding:"omitempty,max=1000"`
}

// ApplyTo overwrites the provided fields on the session.
func (r *UpdateSessionRequest) ApplyTo(session *models.Session) {
	if r.Date != nil {
		session.Date = *r.Date
	}
	if r.StartPage != nil {
		session.StartPage = *r.StartPage
	}
	if r.EndPage != nil {
		session.EndPage = *r.EndPage
	}
	if r.Notes != nil {
		session.Notes = *r.Notes
	}
}

// SessionBook: the book fields embedded in a session response
type SessionBook struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// SessionResponse: response for a single session
type SessionResponse struct {
	ID        string       `json:"id"`
	BookID    string       `json:"book_id"`
	Book      *SessionBook `json:"book,omitempty"`
	Date      time.Time    `json:"date"`
	StartPage int          `json:"start_page"`
	EndPage   int          `json:"end_page"`
	PagesRead int          `json:"pages_read"`
	Notes     string       `json:"notes"`
	CreatedAt time.Time    `json:"created_at"`
}

func FromSessionToResponse(s models.Session) SessionResponse {
	resp := SessionResponse{
		ID:        s.ID,
		BookID:    s.BookID,
		Date:      s.Date,
		StartPage: s.StartPage,
		EndPage:   s.EndPage,
		PagesRead: s.PagesRead,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
	}
	if s.Book != nil {
		resp.Book = &SessionBook{
			ID:     s.Book.ID,
			Title:  s.Book.Title,
			Author: s.Book.Author,
		}
	}
	return resp
}
