package service

import (
	"context"
	"errors"
	"time"

	"booklog/internal/cache"
	"booklog/internal/dto"
	"booklog/internal/repository"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type StatsService interface {
	ActivityStats(ctx context.Context, userID string) (dto.StatsSnapshot, error)
	GoalsProgress(ctx context.Context, userID string) (dto.GoalsProgress, error)
}

type statsService struct {
	sessionRepo repository.SessionRepository
	bookRepo    repository.BookRepository
	userRepo    repository.UserRepository
	statsCache  *cache.StatsCache
	now         func() time.Time
}

func NewStatsService(sessionRepo repository.SessionRepository, bookRepo repository.BookRepository, userRepo repository.UserRepository, statsCache *cache.StatsCache) StatsService {
	return NewStatsServiceWithClock(sessionRepo, bookRepo, userRepo, statsCache, time.Now)
}

func NewStatsServiceWithClock(sessionRepo repository.SessionRepository, bookRepo repository.BookRepository, userRepo repository.UserRepository, statsCache *cache.StatsCache, now func() time.Time) StatsService {
	return &statsService{
		sessionRepo: sessionRepo,
		bookRepo:    bookRepo,
		userRepo:    userRepo,
		statsCache:  statsCache,
		now:         now,
	}
}

// ActivityStats serves the cached snapshot when present, otherwise
// recomputes from every session and book the user owns.
func (s *statsService) ActivityStats(ctx context.Context, userID string) (dto.StatsSnapshot, error) {
	if cached, err := s.statsCache.Get(ctx, userID); err == nil && cached != nil {
		return *cached, nil
	}

	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return dto.StatsSnapshot{}, err
	}
	books, err := s.bookRepo.ListAllByUser(ctx, userID)
	if err != nil {
		return dto.StatsSnapshot{}, err
	}

	snapshot := ComputeActivityStats(sessions, books, s.now())

	// Cache failures are not worth failing the request over.
	s.statsCache.Set(ctx, userID, snapshot)

	return snapshot, nil
}

func (s *statsService) GoalsProgress(ctx context.Context, userID string) (dto.GoalsProgress, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GoalsProgress{}, ErrUserNotFound
		}
		return dto.GoalsProgress{}, err
	}

	monthStart := startOfMonth(s.now())
	sessions, err := s.sessionRepo.ListByUserSince(ctx, userID, monthStart)
	if err != nil {
		return dto.GoalsProgress{}, err
	}
	books, err := s.bookRepo.ListAllByUser(ctx, userID)
	if err != nil {
		return dto.GoalsProgress{}, err
	}

	pagesRead, booksCompleted := ComputeGoalsProgress(sessions, books, s.now())

	return dto.GoalsProgress{
		PagesRead:      pagesRead,
		BooksCompleted: booksCompleted,
		BooksGoal:      user.BooksGoal,
		PagesGoal:      user.PagesGoal,
	}, nil
}
