package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockItem struct {
	ID              uint            `json:"id"`
	SellerEmail     string          `json:"seller_email"`
	GameName        string          `json:"game_name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	SessionID       uint            `json:"session_id"`
	CurrentQuantity int             `json:"current_quantity"`
	OnSale          bool            `json:"on_sale"`
	PhotoPath       string          `json:"photo_path,omitempty"`
	Publisher       *string         `json:"publisher,omitempty"`
	Description     *string         `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// StockItemWithFees is a stock item joined with the fees of its session.
type StockItemWithFees struct {
	StockItem
	SessionName string          `json:"session_name"`
	FixedFee    decimal.Decimal `json:"fixed_fee"`
	PercentFee  decimal.Decimal `json:"percent_fee"`
	FinalPrice  decimal.Decimal `json:"final_price"`
}

type DepositInput struct {
	SellerEmail string
	GameName    string
	UnitPrice   decimal.Decimal
	SessionID   uint
	Quantity    int
	OnSale      bool
	PhotoPath   string
	Publisher   *string
	Description *string
}

// DepositRecord is the write-once log line written for each deposit.
type DepositRecord struct {
	ID                uint      `json:"id"`
	SellerEmail       string    `json:"seller_email"`
	SessionID         uint      `json:"session_id"`
	StockItemID       uint      `json:"stock_item_id"`
	QuantityDeposited int       `json:"quantity_deposited"`
	CreatedAt         time.Time `json:"created_at"`
}

type WithdrawResult struct {
	StockItemID       uint `json:"stock_item_id"`
	Deleted           bool `json:"deleted"`
	RemainingQuantity int  `json:"remaining_quantity"`
}

type StockEventType string

const (
	StockDeposited   StockEventType = "deposited"
	StockSold        StockEventType = "sold"
	StockWithdrawn   StockEventType = "withdrawn"
	StockSaleToggled StockEventType = "on_sale_toggled"
)

// StockEvent is published after every successful stock mutation.
type StockEvent struct {
	Type              StockEventType `json:"action"`
	StockItemID       uint           `json:"stock_item_id"`
	GameName          string         `json:"game_name,omitempty"`
	SellerEmail       string         `json:"seller_email,omitempty"`
	Quantity          int            `json:"quantity,omitempty"`
	RemainingQuantity int            `json:"remaining_quantity"`
	OnSale            *bool          `json:"on_sale,omitempty"`
	OccurredAt        time.Time      `json:"occurred_at"`
}
