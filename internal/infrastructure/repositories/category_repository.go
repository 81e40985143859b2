package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"gorm.io/gorm"
)

// CategoryRepositoryImpl implements domain.CategoryRepository using GORM
type CategoryRepositoryImpl struct {
	db *gorm.DB
}

// DBCategory represents the database model for Category
type DBCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:128"`
	Description string
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBCategory) TableName() string {
	return "categories"
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

// Create implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *domain.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	row := &DBCategory{ID: category.ID, Name: category.Name, Description: category.Description}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCategoryExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	category.CreatedAt = row.CreatedAt
	return nil
}

// FindByID implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByName implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findOne(ctx, "LOWER(name) = LOWER(?)", name)
}

func (r *CategoryRepositoryImpl) findOne(ctx context.Context, query string, args ...interface{}) (*domain.Category, error) {
	var row DBCategory
	if err := r.db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return categoryToDomain(&row), nil
}

// List implements domain.CategoryRepository
func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]domain.Category, error) {
	var rows []DBCategory
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	categories := make([]domain.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, *categoryToDomain(&rows[i]))
	}
	return categories, nil
}

func categoryToDomain(row *DBCategory) *domain.Category {
	return &domain.Category{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}
}
