package service

import (
	"math"
	"time"

	"booklog/internal/dto"
	"booklog/internal/models"
)

// Pure aggregation over a user's sessions and books. Nothing here
// touches storage; the wall clock arrives as an argument.

// ComputeActivityStats builds the activity snapshot for the given
// moment. Window membership uses a strict comparison: a session dated
// exactly N days before now falls outside the N-day window.
func ComputeActivityStats(sessions []models.Session, books []models.Book, now time.Time) dto.StatsSnapshot {
	last7Days := now.Add(-7 * 24 * time.Hour)
	last30Days := now.Add(-30 * 24 * time.Hour)
	monthStart := startOfMonth(now)

	var pages7, pages30, pagesAll int
	days7 := make(map[string]struct{})
	days30 := make(map[string]struct{})

	for _, s := range sessions {
		pagesAll += s.PagesRead
		day := s.Date.UTC().Format("2006-01-02")
		if s.Date.After(last7Days) {
			pages7 += s.PagesRead
			days7[day] = struct{}{}
		}
		if s.Date.After(last30Days) {
			pages30 += s.PagesRead
			days30[day] = struct{}{}
		}
	}

	var counts dto.BookCounts
	counts.Total = len(books)
	for _, b := range books {
		switch b.Status {
		case models.StatusCompleted:
			counts.Completed++
			if b.CompletedDate != nil && !b.CompletedDate.Before(monthStart) {
				counts.CompletedThisMonth++
			}
		case models.StatusCurrentlyReading:
			counts.CurrentlyReading++
		}
	}

	return dto.StatsSnapshot{
		Averages: dto.WindowAverages{
			Last7Days:  averagePerDay(pages7, len(days7)),
			Last30Days: averagePerDay(pages30, len(days30)),
		},
		ActiveDays: dto.WindowActiveDays{
			Last7Days:  len(days7),
			Last30Days: len(days30),
		},
		TotalPages: dto.WindowTotals{
			Last7Days:  pages7,
			Last30Days: pages30,
			AllTime:    pagesAll,
		},
		Books: counts,
	}
}

// ComputeGoalsProgress counts the current calendar month's pages and
// completed books. Goals themselves are thresholds for the caller, not
// inputs here.
func ComputeGoalsProgress(sessions []models.Session, books []models.Book, now time.Time) (pagesRead, booksCompleted int) {
	monthStart := startOfMonth(now)

	for _, s := range sessions {
		if !s.Date.Before(monthStart) {
			pagesRead += s.PagesRead
		}
	}

	for _, b := range books {
		if b.Status == models.StatusCompleted && b.CompletedDate != nil && !b.CompletedDate.Before(monthStart) {
			booksCompleted++
		}
	}

	return pagesRead, booksCompleted
}

// averagePerDay rounds half away from zero; zero active days means zero,
// never a division.
func averagePerDay(totalPages, activeDays int) int {
	if activeDays == 0 {
		return 0
	}
	return int(math.Round(float64(totalPages) / float64(activeDays)))
}

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
