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
	ErrBookNotFound = errors.New("book not found")
	ErrNotOwner     = errors.New("not authorized")
)

type BookService interface {
	List(ctx context.Context, userID string, page, limit int) ([]models.Book, int64, error)
	Get(ctx context.Context, userID, bookID string) (*models.Book, error)
	Create(ctx context.Context, userID string, req dto.CreateBookRequest) (*models.Book, error)
	Update(ctx context.Context, userID, bookID string, patch dto.UpdateBookRequest) (*models.Book, error)
	Delete(ctx context.Context, userID, bookID string) error
}

type bookService struct {
	repo       repository.BookRepository
	statsCache *cache.StatsCache
	now        func() time.Time
}

// NewBookService wires the book catalog logic. The clock defaults to
// time.Now; tests override it through NewBookServiceWithClock.
func NewBookService(repo repository.BookRepository, statsCache *cache.StatsCache) BookService {
	return NewBookServiceWithClock(repo, statsCache, time.Now)
}

func NewBookServiceWithClock(repo repository.BookRepository, statsCache *cache.StatsCache, now func() time.Time) BookService {
	return &bookService{repo: repo, statsCache: statsCache, now: now}
}

func (s *bookService) List(ctx context.Context, userID string, page, limit int) ([]models.Book, int64, error) {
	return s.repo.ListByUser(ctx, userID, page, limit)
}

// Get loads a book, distinguishing a missing book from one owned by
// someone else.
func (s *bookService) Get(ctx context.Context, userID, bookID string) (*models.Book, error) {
	book, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	if book.UserID != userID {
		return nil, ErrNotOwner
	}
	return book, nil
}

func (s *bookService) Create(ctx context.Context, userID string, req dto.CreateBookRequest) (*models.Book, error) {
	book := req.ToModel(userID)
	applyInitialStatus(&book, s.now())

	if err := s.repo.Create(ctx, &book); err != nil {
		return nil, err
	}

	s.statsCache.Invalidate(ctx, userID)
	return &book, nil
}

func (s *bookService) Update(ctx context.Context, userID, bookID string, patch dto.UpdateBookRequest) (*models.Book, error) {
	book, err := s.Get(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	// Date bookkeeping depends on the pre-patch status, so it runs
	// before the overwrites.
	if patch.Status != nil {
		applyStatusChange(book, *patch.Status, s.now())
	}
	patch.ApplyTo(book)

	if err := s.repo.Save(ctx, book); err != nil {
		return nil, err
	}

	s.statsCache.Invalidate(ctx, userID)
	return book, nil
}

func (s *bookService) Delete(ctx context.Context, userID, bookID string) error {
	book, err := s.Get(ctx, userID, bookID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteWithSessions(ctx, book); err != nil {
		return err
	}

	s.statsCache.Invalidate(ctx, userID)
	return nil
}
