package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrStockNotFound        = errors.New("stock item not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrQuantityExceedsStock = errors.New("quantity exceeds stock")
)

type StockItem struct {
	ID uint `gorm:"primaryKey"`

	SellerEmail string          `gorm:"size:255;index;not null"`
	GameName    string          `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Publisher   *string
	Description *string
	PhotoPath   string

	SessionID uint    `gorm:"index;not null"`
	Session   Session `gorm:"foreignKey:SessionID"`

	CurrentQuantity int  `gorm:"not null"`
	OnSale          bool `gorm:"index;not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type DepositRecord struct {
	ID uint `gorm:"primaryKey"`

	SellerEmail       string `gorm:"size:255;index;not null"`
	SessionID         uint   `gorm:"index;not null"`
	StockItemID       uint   `gorm:"not null"`
	QuantityDeposited int    `gorm:"not null"`

	CreatedAt time.Time
}

type StockDAO struct {
	db *gorm.DB
}

func NewStockDAO(db *gorm.DB) *StockDAO {
	return &StockDAO{
		db: db,
	}
}

// Deposit creates the stock item and its deposit record together.
func (d *StockDAO) Deposit(ctx context.Context, item StockItem) (StockItem, DepositRecord, error) {
	var record DepositRecord

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item.Session, item.SessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}

			return err
		}

		if err := tx.Omit("Session").Create(&item).Error; err != nil {
			return err
		}

		record = DepositRecord{
			SellerEmail:       item.SellerEmail,
			SessionID:         item.SessionID,
			StockItemID:       item.ID,
			QuantityDeposited: item.CurrentQuantity,
		}

		return tx.Create(&record).Error
	})
	if err != nil {
		return StockItem{}, DepositRecord{}, err
	}

	return item, record, nil
}

func (d *StockDAO) FindByID(ctx context.Context, id uint) (StockItem, error) {
	var item StockItem

	result := d.db.WithContext(ctx).Preload("Session").First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return StockItem{}, ErrStockNotFound
		}

		return StockItem{}, result.Error
	}

	return item, nil
}

func (d *StockDAO) FindAll(ctx context.Context) ([]StockItem, error) {
	return d.find(ctx, d.db)
}

func (d *StockDAO) FindOnSale(ctx context.Context) ([]StockItem, error) {
	return d.find(ctx, d.db.Where("on_sale = ?", true))
}

func (d *StockDAO) FindBySeller(ctx context.Context, sellerEmail string) ([]StockItem, error) {
	return d.find(ctx, d.db.Where("seller_email = ?", sellerEmail))
}

func (d *StockDAO) find(ctx context.Context, query *gorm.DB) ([]StockItem, error) {
	var items []StockItem

	result := query.WithContext(ctx).Preload("Session").Order("id ASC").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

// RecordSale decrements the item under a row lock and appends a sale record
// priced at the item's unit price. A sold-out item is deleted.
func (d *StockDAO) RecordSale(ctx context.Context, id uint, quantity int) (SaleRecord, int, error) {
	var (
		sale      SaleRecord
		remaining int
	)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := lockItem(tx, id)
		if err != nil {
			return err
		}

		if quantity > item.CurrentQuantity {
			return ErrInsufficientStock
		}

		remaining = item.CurrentQuantity - quantity
		if remaining == 0 {
			err = tx.Delete(&item).Error
		} else {
			err = tx.Model(&item).Update("current_quantity", remaining).Error
		}
		if err != nil {
			return err
		}

		sale = SaleRecord{
			SellerEmail:  item.SellerEmail,
			GameName:     item.GameName,
			UnitPrice:    item.UnitPrice,
			PhotoPath:    item.PhotoPath,
			SessionID:    item.SessionID,
			QuantitySold: quantity,
		}

		return tx.Create(&sale).Error
	})
	if err != nil {
		return SaleRecord{}, 0, err
	}

	return sale, remaining, nil
}

// Withdraw takes quantity units back to the seller. The item row is removed
// when nothing is left.
func (d *StockDAO) Withdraw(ctx context.Context, id uint, quantity int) (StockItem, int, bool, error) {
	var (
		item      StockItem
		remaining int
		deleted   bool
	)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		item, err = lockItem(tx, id)
		if err != nil {
			return err
		}

		if quantity > item.CurrentQuantity {
			return ErrQuantityExceedsStock
		}

		remaining = item.CurrentQuantity - quantity
		if remaining == 0 {
			deleted = true
			return tx.Delete(&item).Error
		}

		return tx.Model(&item).Update("current_quantity", remaining).Error
	})
	if err != nil {
		return StockItem{}, 0, false, err
	}

	return item, remaining, deleted, nil
}

func (d *StockDAO) SetOnSale(ctx context.Context, id uint, onSale bool) (StockItem, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := lockItem(tx, id)
		if err != nil {
			return err
		}

		return tx.Model(&item).Update("on_sale", onSale).Error
	})
	if err != nil {
		return StockItem{}, err
	}

	return d.FindByID(ctx, id)
}

func lockItem(tx *gorm.DB, id uint) (StockItem, error) {
	var item StockItem

	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return StockItem{}, ErrStockNotFound
		}

		return StockItem{}, result.Error
	}

	return item, nil
}
