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

// OtpRepositoryImpl implements domain.OtpRepository on the otp table
type OtpRepositoryImpl struct {
	db *gorm.DB
}

// DBOtp represents the database model for Otp
type DBOtp struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone     string    `gorm:"uniqueIndex;size:32"`
	Otp       string    `gorm:"size:16"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBOtp) TableName() string {
	return "otp"
}

// NewOtpRepository creates a new OTP repository
func NewOtpRepository(db *gorm.DB) domain.OtpRepository {
	return &OtpRepositoryImpl{db: db}
}

// Replace implements domain.OtpRepository
func (r *OtpRepositoryImpl) Replace(ctx context.Context, otp *domain.Otp) error {
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	row := &DBOtp{ID: otp.ID, Phone: otp.Phone, Otp: otp.Otp, CreatedAt: otp.CreatedAt}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone = ?", otp.Phone).Delete(&DBOtp{}).Error; err != nil {
			return err
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	otp.CreatedAt = row.CreatedAt
	return nil
}

// FindByPhone implements domain.OtpRepository
func (r *OtpRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.Otp, error) {
	var row DBOtp
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, fmt.Errorf("failed to find otp: %w", err)
	}
	return &domain.Otp{ID: row.ID, Phone: row.Phone, Otp: row.Otp, CreatedAt: row.CreatedAt}, nil
}

// DeleteByPhone implements domain.OtpRepository
func (r *OtpRepositoryImpl) DeleteByPhone(ctx context.Context, phone string) error {
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).Delete(&DBOtp{}).Error; err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}

// DeleteOlderThan implements domain.OtpRepository
func (r *OtpRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&DBOtp{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge otp codes: %w", res.Error)
	}
	return res.RowsAffected, nil
}
