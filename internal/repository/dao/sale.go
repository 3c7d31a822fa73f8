package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRecord struct {
	ID uint `gorm:"primaryKey"`

	SellerEmail  string          `gorm:"size:255;index;not null"`
	GameName     string          `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PhotoPath    string
	SessionID    uint `gorm:"index;not null"`
	QuantitySold int  `gorm:"not null"`

	SellerPaid bool `gorm:"index;not null;default:false"`
	PaidAt     *time.Time

	CreatedAt time.Time
}

// SaleWithFees is a sale joined with the fee configuration of its session.
type SaleWithFees struct {
	SaleRecord
	FixedFee   decimal.Decimal
	PercentFee decimal.Decimal
}

// HistoryFilter narrows sales and deposits. Nil fields match everything.
type HistoryFilter struct {
	SellerEmail *string
	SessionID   *uint
}

func (f HistoryFilter) scope(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.SellerEmail != nil {
			db = db.Where(table+".seller_email = ?", *f.SellerEmail)
		}
		if f.SessionID != nil {
			db = db.Where(table+".session_id = ?", *f.SessionID)
		}

		return db
	}
}

type HistoryDAO struct {
	db *gorm.DB
}

func NewHistoryDAO(db *gorm.DB) *HistoryDAO {
	return &HistoryDAO{
		db: db,
	}
}

func (d *HistoryDAO) FindSales(ctx context.Context, filter HistoryFilter) ([]SaleRecord, error) {
	var sales []SaleRecord

	result := d.db.WithContext(ctx).
		Scopes(filter.scope("sale_records")).
		Order("sale_records.id ASC").
		Find(&sales)
	if result.Error != nil {
		return nil, result.Error
	}

	return sales, nil
}

// FindSalesWithFees returns matching sales in insertion order.
func (d *HistoryDAO) FindSalesWithFees(ctx context.Context, filter HistoryFilter) ([]SaleWithFees, error) {
	var rows []SaleWithFees

	result := d.db.WithContext(ctx).
		Table("sale_records").
		Select("sale_records.*, sessions.fixed_fee, sessions.percent_fee").
		Joins("JOIN sessions ON sessions.id = sale_records.session_id").
		Scopes(filter.scope("sale_records")).
		Order("sale_records.id ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *HistoryDAO) SumDeposited(ctx context.Context, filter HistoryFilter) (int64, error) {
	var total int64

	result := d.db.WithContext(ctx).
		Model(&DepositRecord{}).
		Select("COALESCE(SUM(deposit_records.quantity_deposited), 0)").
		Scopes(filter.scope("deposit_records")).
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

// MarkSellerPaid flags every unpaid sale of the seller as paid at paidAt.
func (d *HistoryDAO) MarkSellerPaid(ctx context.Context, sellerEmail string, paidAt time.Time) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&SaleRecord{}).
		Where("seller_email = ? AND seller_paid = ?", sellerEmail, false).
		Updates(map[string]any{
			"seller_paid": true,
			"paid_at":     paidAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
