package dto

import (
	"time"

	"booklog/internal/models"
)

// CreateBookRequest: payload to add a book to the catalog
type CreateBookRequest struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	TotalPages  int     `json:"total_pages" binding:"required,gt=0"`
	CurrentPage *int    `json:"current_page" binding:"omitempty,gte=0"`
	Status      string  `json:"status" binding:"omitempty,oneof='Want to Read' 'Currently Reading' 'Completed'"`
	CoverURL    *string `json:"cover_url"`
	Rating      *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// ToModel builds a Book from the create payload. Status defaults to
// Want to Read; derived dates are the service's job.
func (r *CreateBookRequest) ToModel(userID string) models.Book {
	book := models.Book{
		UserID:     userID,
		Title:      r.Title,
		Author:     r.Author,
		TotalPages: r.TotalPages,
		Status:     models.StatusWantToRead,
		CoverURL:   r.CoverURL,
		Rating:     r.Rating,
	}
	if r.CurrentPage != nil {
		book.CurrentPage = *r.CurrentPage
	}
	if r.Status != "" {
		book.Status = r.Status
	}
	return book
}

// UpdateBookRequest: enumerated patch for a book. Only these fields are
// legal to mutate; the handler rejects unknown JSON keys. Derived fields
// (start/completed dates, streak counter) are never patched directly.
type UpdateBookRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Author      *string `json:"author" binding:"omitempty,min=1"`
	TotalPages  *int    `json:"total_pages" binding:"omitempty,gt=0"`
	CurrentPage *int    `json:"current_page" binding:"omitempty,gte=0"`
	Status      *string `json:"status" binding:"omitempty,oneof='Want to Read' 'Currently Reading' 'Completed'"`
	CoverURL    *string `json:"cover_url"`
	Rating      *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// ApplyTo overwrites the provided fields on the book. Status bookkeeping
// (start/completed dates) happens in the service before this runs.
func (r *UpdateBookRequest) ApplyTo(book *models.Book) {
	if r.Title != nil {
		book.Title = *r.Title
	}
	if r.Author != nil {
		book.Author = *r.Author
	}
	if r.TotalPages != nil {
		book.TotalPages = *r.TotalPages
	}
	if r.CurrentPage != nil {
		book.CurrentPage = *r.CurrentPage
	}
	if r.Status != nil {
		book.Status = *r.Status
	}
	if r.CoverURL != nil {
		book.CoverURL = r.CoverURL
	}
	if r.Rating != nil {
		book.Rating = r.Rating
	}
}

// BookResponse: response for a single book
type BookResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	TotalPages    int        `json:"total_pages"`
	CurrentPage   int        `json:"current_page"`
	Progress      int        `json:"progress"`
	Status        string     `json:"status"`
	CoverURL      *string    `json:"cover_url,omitempty"`
	Rating        *int       `json:"rating,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	StreakDays    int        `json:"streak_days"`
	CreatedAt     time.Time  `json:"created_at"`
}

func FromBookToResponse(b models.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		TotalPages:    b.TotalPages,
		CurrentPage:   b.CurrentPage,
		Progress:      b.Progress(),
		Status:        b.Status,
		CoverURL:      b.CoverURL,
		Rating:        b.Rating,
		StartDate:     b.StartDate,
		CompletedDate: b.CompletedDate,
		StreakDays:    b.StreakDays,
		CreatedAt:     b.CreatedAt,
	}
}

// Pagination: page metadata for list responses
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}
