package service

import (
	"context"
	"errors"
	"time"

	"booklog/internal/cache"
	"booklog/internal/dto"
	"booklog/internal/models"
	"booklog/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidPageRange = errors.New("end page cannot be less than start page")
)

type SessionService interface {
	List(ctx context.Context, userID string) ([]models.Session, error)
	ListByBook(ctx context.Context, userID, bookID string) ([]models.Session, error)
	Create(ctx context.Context, userID string, req dto.CreateSessionRequest) (*models.Session, error)
	Update(ctx context.Context, userID, sessionID string, patch dto.UpdateSessionRequest) (*models.Session, error)
	Delete(ctx context.Context, userID, sessionID string) error
}

type sessionService struct {
	repo       repository.SessionRepository
	bookRepo   repository.BookRepository
	statsCache *cache.StatsCache
	now        func() time.Time
}

func NewSessionService(repo repository.SessionRepository, bookRepo repository.BookRepository, statsCache *cache.StatsCache) SessionService {
	return NewSessionServiceWithClock(repo, bookRepo, statsCache, time.Now)
}

func NewSessionServiceWithClock(repo repository.SessionRepository, bookRepo repository.BookRepository, statsCache *cache.StatsCache, now func() time.Time) SessionService {
	return &sessionService{repo: repo, bookRepo: bookRepo, statsCache: statsCache, now: now}
}

func (s *sessionService) List(ctx context.Context, userID string) ([]models.Session, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *sessionService) ListByBook(ctx context.Context, userID, bookID string) ([]models.Session, error) {
	return s.repo.ListByBook(ctx, userID, bookID)
}

// Create logs a reading session and applies its side effects to the
// book. Session and book are written in one transaction.
func (s *sessionService) Create(ctx context.Context, userID string, req dto.CreateSessionRequest) (*models.Session, error) {
	startPage := *req.StartPage
	endPage := *req.EndPage
	if endPage < startPage {
		return nil, ErrInvalidPageRange
	}

	book, err := s.bookRepo.GetByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	if book.UserID != userID {
		return nil, ErrNotOwner
	}

	session := models.Session{
		UserID:    userID,
		BookID:    book.ID,
		StartPage: startPage,
		EndPage:   endPage,
		PagesRead: endPage - startPage,
		Notes:     req.Notes,
	}
	if req.Date != nil {
		session.Date = *req.Date
	} else {
		session.Date = s.now()
	}

	applyReadingProgress(book, endPage, s.now())

	if err := s.repo.CreateWithBook(ctx, &session, book); err != nil {
		return nil, err
	}

	s.statsCache.Invalidate(ctx, userID)
	return &session, nil
}

func (s *sessionService) Update(ctx context.Context, userID, sessionID string, patch dto.UpdateSessionRequest) (*models.Session, error) {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(session)
	if session.EndPage < session.StartPage {
		return nil, ErrInvalidPageRange
	}
	// PagesRead is recomputed by the model's save hook.

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.statsCache.Invalidate(ctx, userID)
	return session, nil
}

func (s *sessionService) Delete(ctx context.Context, userID, sessionID string) error {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, session); err != nil {
		return err
	}

	s.statsCache.Invalidate(ctx, userID)
	return nil
}

func (s *sessionService) getOwned(ctx context.Context, userID, sessionID string) (*models.Session, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotOwner
	}
	return session, nil
}
