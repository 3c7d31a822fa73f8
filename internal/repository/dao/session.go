package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID uint `gorm:"primaryKey"`

	Name      string    `gorm:"not null"`
	Address   string    `gorm:"not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`

	FixedFee    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PercentFee  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TotalCharge decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

func (d *SessionDAO) Insert(ctx context.Context, session Session) (Session, error) {
	if err := d.db.WithContext(ctx).Create(&session).Error; err != nil {
		return Session{}, err
	}

	return session, nil
}

func (d *SessionDAO) FindByID(ctx context.Context, id uint) (Session, error) {
	var session Session

	result := d.db.WithContext(ctx).First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Session{}, ErrSessionNotFound
		}

		return Session{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindAll(ctx context.Context) ([]Session, error) {
	var sessions []Session

	result := d.db.WithContext(ctx).Order("start_date DESC").Order("id DESC").Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *SessionDAO) Update(ctx context.Context, session Session) (Session, error) {
	if err := d.db.WithContext(ctx).Save(&session).Error; err != nil {
		return Session{}, err
	}

	return session, nil
}

// UpdateMany saves every session or none of them.
func (d *SessionDAO) UpdateMany(ctx context.Context, sessions []Session) ([]Session, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range sessions {
			var count int64
			if err := tx.Model(&Session{}).Where("id = ?", sessions[i].ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrSessionNotFound
			}

			if err := tx.Save(&sessions[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sessions, nil
}
