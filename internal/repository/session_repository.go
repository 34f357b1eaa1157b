package repository

import (
	"context"
	"fmt"
	"time"

	"booklog/internal/models"

	"gorm.io/gorm"
)

// SessionRepository defines the interface for reading-session data
// operations.
type SessionRepository interface {
	// CreateWithBook persists the new session and the book it mutated in
	// one transaction, so a partial write can never leave the two out of
	// step.
	CreateWithBook(ctx context.Context, session *models.Session, book *models.Book) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	ListByUser(ctx context.Context, userID string) ([]models.Session, error)
	ListByBook(ctx context.Context, userID, bookID string) ([]models.Session, error)
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, session *models.Session) error
}

// sessionRepository is the GORM implementation of SessionRepository.
type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateWithBook(ctx context.Context, session *models.Session, book *models.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		if err := tx.Save(book).Error; err != nil {
			return fmt.Errorf("save book: %w", err)
		}
		return nil
	})
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ListByUser(ctx context.Context, userID string) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepository) ListByBook(ctx context.Context, userID, bookID string) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Order("date DESC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list book sessions: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepository) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions since: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Delete(session).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
