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

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"uniqueIndex;size:255"`
	Phone          string    `gorm:"index:idx_users_phone,unique,where:phone <> '';size:32"`
	Name           string    `gorm:"size:255"`
	PasswordHash   string    `gorm:"column:password"`
	Role           string    `gorm:"size:32"`
	IsActive       bool
	PhoneVerified  bool
	LastLoginAt    *time.Time
	LoginAttempts  int
	LockedUntil    *time.Time
	MFAEnabled     bool    `gorm:"column:mfa_enabled"`
	MFASecret      *string `gorm:"column:mfa_secret"`
	SocialID       *string `gorm:"size:255"`
	SocialProvider *string `gorm:"size:32"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindBySocial implements domain.UserRepository
func (r *UserRepositoryImpl) FindBySocial(ctx context.Context, provider, socialID string) (*domain.User, error) {
	return r.findOne(ctx, "social_provider = ? AND social_id = ?", provider, socialID)
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, args...).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Save(dbUser).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// ActivatePhone implements domain.UserRepository
func (r *UserRepositoryImpl) ActivatePhone(ctx context.Context, userID uuid.UUID) error {
	return r.updateColumns(ctx, userID, map[string]interface{}{"phone_verified": true})
}

// IncrementLoginAttempts implements domain.UserRepository
func (r *UserRepositoryImpl) IncrementLoginAttempts(ctx context.Context, userID uuid.UUID) (int, error) {
	var attempts int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&DBUser{}).Where("id = ?", userID).
			UpdateColumn("login_attempts", gorm.Expr("login_attempts + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return tx.Model(&DBUser{}).Where("id = ?", userID).Pluck("login_attempts", &attempts).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to increment login attempts: %w", err)
	}
	return attempts, nil
}

// Lock implements domain.UserRepository
func (r *UserRepositoryImpl) Lock(ctx context.Context, userID uuid.UUID, until time.Time) error {
	return r.updateColumns(ctx, userID, map[string]interface{}{
		"locked_until":   until,
		"login_attempts": 0,
	})
}

// RecordLogin implements domain.UserRepository
func (r *UserRepositoryImpl) RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.updateColumns(ctx, userID, map[string]interface{}{
		"last_login_at":  at,
		"login_attempts": 0,
		"locked_until":   nil,
	})
}

func (r *UserRepositoryImpl) updateColumns(ctx context.Context, userID uuid.UUID, cols map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(cols)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:             user.ID,
		Email:          user.Email,
		Phone:          user.Phone,
		Name:           user.Name,
		PasswordHash:   user.PasswordHash,
		Role:           user.Role,
		IsActive:       user.IsActive,
		PhoneVerified:  user.PhoneVerified,
		LastLoginAt:    user.LastLoginAt,
		LoginAttempts:  user.LoginAttempts,
		LockedUntil:    user.LockedUntil,
		MFAEnabled:     user.MFAEnabled,
		MFASecret:      nullable(user.MFASecret),
		SocialID:       nullable(user.SocialID),
		SocialProvider: nullable(user.SocialProvider),
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:             dbUser.ID,
		Email:          dbUser.Email,
		Phone:          dbUser.Phone,
		Name:           dbUser.Name,
		PasswordHash:   dbUser.PasswordHash,
		Role:           dbUser.Role,
		IsActive:       dbUser.IsActive,
		PhoneVerified:  dbUser.PhoneVerified,
		LastLoginAt:    dbUser.LastLoginAt,
		LoginAttempts:  dbUser.LoginAttempts,
		LockedUntil:    dbUser.LockedUntil,
		MFAEnabled:     dbUser.MFAEnabled,
		MFASecret:      deref(dbUser.MFASecret),
		SocialID:       deref(dbUser.SocialID),
		SocialProvider: deref(dbUser.SocialProvider),
		CreatedAt:      dbUser.CreatedAt,
		UpdatedAt:      dbUser.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
