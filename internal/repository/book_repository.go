package repository

import (
	"context"
	"fmt"

	"booklog/internal/models"

	"gorm.io/gorm"
)

// BookRepository defines the interface for book data operations.
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id string) (*models.Book, error)
	ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Book, int64, error)
	ListAllByUser(ctx context.Context, userID string) ([]models.Book, error)
	Save(ctx context.Context, book *models.Book) error
	// DeleteWithSessions removes the book and every session logged
	// against it inside one transaction.
	DeleteWithSessions(ctx context.Context, book *models.Book) error
}

// bookRepository is the GORM implementation of BookRepository.
type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Book, int64, error) {
	var books []models.Book
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error; err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}

	return books, total, nil
}

func (r *bookRepository) ListAllByUser(ctx context.Context, userID string) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) Save(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return fmt.Errorf("save book: %w", err)
	}
	return nil
}

func (r *bookRepository) DeleteWithSessions(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", book.ID).Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("delete book sessions: %w", err)
		}
		if err := tx.Delete(book).Error; err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		return nil
	})
}
