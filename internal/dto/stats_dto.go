package dto

// Read-only aggregates for a user's reading activity. Produced by the
// stats service, never persisted.

// WindowAverages: average pages per active day in rolling windows
type WindowAverages struct {
	Last7Days  int `json:"last_7_days"`
	Last30Days int `json:"last_30_days"`
}

// WindowActiveDays: distinct calendar days with at least one session
type WindowActiveDays struct {
	Last7Days  int `json:"last_7_days"`
	Last30Days int `json:"last_30_days"`
}

// WindowTotals: pages read per window and over all time
type WindowTotals struct {
	Last7Days  int `json:"last_7_days"`
	Last30Days int `json:"last_30_days"`
	AllTime    int `json:"all_time"`
}

// BookCounts: catalog aggregates by status
type BookCounts struct {
	Total              int `json:"total"`
	Completed          int `json:"completed"`
	CompletedThisMonth int `json:"completed_this_month"`
	CurrentlyReading   int `json:"currently_reading"`
}

// StatsSnapshot: the full activity readout for GET /api/stats
type StatsSnapshot struct {
	Averages   WindowAverages   `json:"averages"`
	ActiveDays WindowActiveDays `json:"active_days"`
	TotalPages WindowTotals     `json:"total_pages"`
	Books      BookCounts       `json:"books"`
}

// GoalsProgress: current-month counters for GET /api/stats/goals.
// The goal fields are the user's targets, echoed for the client; the
// progress math never filters by them.
type GoalsProgress struct {
	PagesRead      int `json:"pages_read"`
	BooksCompleted int `json:"books_completed"`
	BooksGoal      int `json:"books_goal"`
	PagesGoal      int `json:"pages_goal"`
}
