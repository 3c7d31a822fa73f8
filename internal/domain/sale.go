package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is appended when stock is sold. SellerPaid only ever goes from
// false to true, through PaySellerInFull.
type SaleRecord struct {
	ID           uint            `json:"id"`
	SellerEmail  string          `json:"seller_email"`
	GameName     string          `json:"game_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	PhotoPath    string          `json:"photo_path,omitempty"`
	SessionID    uint            `json:"session_id"`
	QuantitySold int             `json:"quantity_sold"`
	SellerPaid   bool            `json:"seller_paid"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (r SaleRecord) Amount() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.QuantitySold)))
}

type PaymentResult struct {
	SellerEmail    string `json:"seller_email"`
	RecordsUpdated int64  `json:"records_updated"`
}

type SellerBalance struct {
	SellerEmail string          `json:"seller_email"`
	UnpaidSales int             `json:"unpaid_sales"`
	UnpaidTotal decimal.Decimal `json:"unpaid_total"`
	PaidSales   int             `json:"paid_sales"`
	PaidTotal   decimal.Decimal `json:"paid_total"`
}

func NewSellerBalance(email string, records []SaleRecord) SellerBalance {
	balance := SellerBalance{
		SellerEmail: email,
		UnpaidTotal: decimal.Zero,
		PaidTotal:   decimal.Zero,
	}

	for _, r := range records {
		if r.SellerPaid {
			balance.PaidSales++
			balance.PaidTotal = balance.PaidTotal.Add(r.Amount())
		} else {
			balance.UnpaidSales++
			balance.UnpaidTotal = balance.UnpaidTotal.Add(r.Amount())
		}
	}

	return balance
}
