package service

import (
	"time"

	"booklog/internal/models"
)

// Derived-state rules for a book's status and date fields. These are the
// only places that move a book between statuses; everything else is a
// plain field overwrite.

// applyReadingProgress mutates the book fields that follow from a logged
// session ending at endPage. The current page is overwritten, not
// incremented, so a session with a lower end page regresses progress.
func applyReadingProgress(book *models.Book, endPage int, now time.Time) {
	book.CurrentPage = endPage

	if book.Status == models.StatusWantToRead {
		book.Status = models.StatusCurrentlyReading
		if book.StartDate == nil {
			startDate := now
			book.StartDate = &startDate
		}
	}

	// Evaluated after the branch above: a single session can take a book
	// straight from Want to Read to Completed.
	if book.CurrentPage >= book.TotalPages {
		book.Status = models.StatusCompleted
		completedDate := now
		book.CompletedDate = &completedDate
	}
}

// applyStatusChange sets the date fields that follow from an explicit
// status edit. Regressions (Completed back to an earlier status) are not
// blocked; a later re-completion refreshes the completed date.
func applyStatusChange(book *models.Book, newStatus string, now time.Time) {
	if newStatus == models.StatusCompleted && book.Status != models.StatusCompleted {
		completedDate := now
		book.CompletedDate = &completedDate
		if book.StartDate == nil {
			startDate := now
			book.StartDate = &startDate
		}
	}

	if newStatus == models.StatusCurrentlyReading && book.Status == models.StatusWantToRead {
		startDate := now
		book.StartDate = &startDate
	}
}

// applyInitialStatus sets the date fields implied by the status a book is
// created with.
func applyInitialStatus(book *models.Book, now time.Time) {
	if book.Status == models.StatusCurrentlyReading || book.Status == models.StatusCompleted {
		startDate := now
		book.StartDate = &startDate
	}
	if book.Status == models.StatusCompleted {
		completedDate := now
		book.CompletedDate = &completedDate
	}
}
