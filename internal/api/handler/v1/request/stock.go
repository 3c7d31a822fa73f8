package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"

	"github.com/festijeux/market-api/internal/domain"
)

var errOnSaleRequired = errors.New("on_sale is required")

// DepositRequest binds from JSON or from a multipart form carrying an
// optional "image" file.
type DepositRequest struct {
	SellerEmail string          `json:"seller_email" form:"seller_email"`
	GameName    string          `json:"game_name" form:"game_name"`
	UnitPrice   decimal.Decimal `json:"unit_price" form:"unit_price"`
	SessionID   uint            `json:"session_id" form:"session_id"`
	Quantity    int             `json:"quantity" form:"quantity"`
	OnSale      bool            `json:"on_sale" form:"on_sale"`
	Publisher   *string         `json:"publisher,omitempty" form:"publisher"`
	Description *string         `json:"description,omitempty" form:"description"`
}

func (req *DepositRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SellerEmail, validation.Required, is.Email),
		validation.Field(&req.GameName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.UnitPrice, validation.By(money(maxAmount))),
		validation.Field(&req.SessionID, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}

func (req *DepositRequest) ToDomain(photoPath string) domain.DepositInput {
	return domain.DepositInput{
		SellerEmail: req.SellerEmail,
		GameName:    req.GameName,
		UnitPrice:   req.UnitPrice,
		SessionID:   req.SessionID,
		Quantity:    req.Quantity,
		OnSale:      req.OnSale,
		PhotoPath:   photoPath,
		Publisher:   req.Publisher,
		Description: req.Description,
	}
}

type SaleRequest struct {
	StockID      uint `json:"stock_id"`
	QuantitySold int  `json:"quantity_sold"`
}

func (req *SaleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StockID, validation.Required),
		validation.Field(&req.QuantitySold, validation.Required, validation.Min(1)),
	)
}

type WithdrawRequest struct {
	StockID          uint `json:"stock_id"`
	QuantityToRemove int  `json:"quantity_to_remove"`
}

func (req *WithdrawRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StockID, validation.Required),
		validation.Field(&req.QuantityToRemove, validation.Required, validation.Min(1)),
	)
}

type ToggleOnSaleRequest struct {
	OnSale *bool `json:"on_sale"`
}

func (req *ToggleOnSaleRequest) Validate() error {
	if req.OnSale == nil {
		return errOnSaleRequired
	}

	return nil
}

type PaySellerRequest struct {
	SellerEmail string `json:"seller_email"`
}

func (req *PaySellerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SellerEmail, validation.Required, is.Email),
	)
}
