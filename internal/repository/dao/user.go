package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"size:255;unique;not null"`
	Password string `gorm:"not null"`

	Name    string `gorm:"not null"`
	Phone   string
	Address string
	Role    string `gorm:"size:16;not null;default:guest"` // "guest", "seller", "manager" or "admin"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Preregistration struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Role      string `gorm:"size:16;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Preregistration) TableName() string {
	return "role_preregistrations"
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// Insert creates the user. A preregistration for the same email, if any,
// decides the role and is consumed in the same transaction.
func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pre Preregistration
		result := tx.Where("email = ?", user.Email).Limit(1).Find(&pre)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			user.Role = pre.Role
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if result.RowsAffected > 0 {
			return tx.Delete(&pre).Error
		}

		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return User{}, ErrUserEmailExists
		}

		return User{}, err
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindAll(ctx context.Context) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Order("id ASC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) UpdateRole(ctx context.Context, id uint, role string) (User, error) {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return User{}, result.Error
	}

	return d.FindByID(ctx, id)
}

// UpsertPreregistration stores the role for email, replacing any earlier one.
func (d *UserDAO) UpsertPreregistration(ctx context.Context, pre Preregistration) (Preregistration, error) {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&pre)
	if result.Error != nil {
		return Preregistration{}, result.Error
	}

	return pre, nil
}
