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

// SessionRepositoryImpl implements domain.SessionRepository on the sessions table
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// DBSession represents the database model for Session
type DBSession struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index"`
	TokenHash  string    `gorm:"size:128"`
	IPAddress  string    `gorm:"size:64"`
	UserAgent  string
	DeviceName string `gorm:"size:255"`
	CreatedAt  time.Time
	ExpiresAt  time.Time `gorm:"index"`
	LastUsedAt *time.Time
	RevokedAt  *time.Time
}

// TableName returns the table name for GORM
func (DBSession) TableName() string {
	return "sessions"
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(sessionToDB(session)).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error) {
	var row DBSession
	if err := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return sessionToDomain(&row), nil
}

// ListActive implements domain.SessionRepository
func (r *SessionRepositoryImpl) ListActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Session, error) {
	var rows []DBSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	sessions := make([]domain.Session, 0, len(rows))
	for i := range rows {
		sessions = append(sessions, *sessionToDomain(&rows[i]))
	}
	return sessions, nil
}

// Rotate implements domain.SessionRepository
func (r *SessionRepositoryImpl) Rotate(ctx context.Context, sessionID uuid.UUID, oldHash, newHash string, usedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBSession{}).
		Where("id = ? AND token_hash = ? AND revoked_at IS NULL", sessionID, oldHash).
		Updates(map[string]interface{}{"token_hash": newHash, "last_used_at": usedAt})
	if res.Error != nil {
		return fmt.Errorf("failed to rotate session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrTokenReuse
	}
	return nil
}

// Revoke implements domain.SessionRepository
func (r *SessionRepositoryImpl) Revoke(ctx context.Context, sessionID uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBSession{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", at)
	if res.Error != nil {
		return fmt.Errorf("failed to revoke session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// RevokeAll implements domain.SessionRepository
func (r *SessionRepositoryImpl) RevokeAll(ctx context.Context, userID uuid.UUID, keep uuid.UUID, at time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&DBSession{}).Where("user_id = ? AND revoked_at IS NULL", userID)
	if keep != uuid.Nil {
		q = q.Where("id <> ?", keep)
	}
	res := q.Update("revoked_at", at)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to revoke sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteExpired implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at < ?", cutoff, cutoff).
		Delete(&DBSession{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func sessionToDB(s *domain.Session) *DBSession {
	return &DBSession{
		ID:         s.ID,
		UserID:     s.UserID,
		TokenHash:  s.TokenHash,
		IPAddress:  s.IPAddress,
		UserAgent:  s.UserAgent,
		DeviceName: s.DeviceName,
		CreatedAt:  s.CreatedAt,
		ExpiresAt:  s.ExpiresAt,
		LastUsedAt: s.LastUsedAt,
		RevokedAt:  s.RevokedAt,
	}
}

func sessionToDomain(row *DBSession) *domain.Session {
	return &domain.Session{
		ID:         row.ID,
		UserID:     row.UserID,
		TokenHash:  row.TokenHash,
		IPAddress:  row.IPAddress,
		UserAgent:  row.UserAgent,
		DeviceName: row.DeviceName,
		CreatedAt:  row.CreatedAt,
		ExpiresAt:  row.ExpiresAt,
		LastUsedAt: row.LastUsedAt,
		RevokedAt:  row.RevokedAt,
	}
}
