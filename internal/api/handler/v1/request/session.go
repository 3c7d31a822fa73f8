package request

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/festijeux/market-api/internal/domain"
)

var (
	errNegativeAmount  = errors.New("must not be negative")
	errTooManyDecimals = errors.New("must have at most 2 decimal places")
	errAmountTooLarge  = errors.New("is too large")
)

// Exclusive upper bounds of the decimal(12,2) amount and decimal(5,2)
// percentage columns.
var (
	maxAmount  = decimal.New(1, 10)
	maxPercent = decimal.NewFromInt(1000)
)

// money accepts a non-negative amount in cents below upper. Nil pointers pass
// so optional fields can use it.
func money(upper decimal.Decimal) validation.RuleFunc {
	return func(value any) error {
		var d decimal.Decimal
		switch v := value.(type) {
		case decimal.Decimal:
			d = v
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			d = *v
		default:
			return nil
		}

		switch {
		case d.IsNegative():
			return errNegativeAmount
		case !d.Equal(d.Truncate(2)):
			return errTooManyDecimals
		case d.GreaterThanOrEqual(upper):
			return fmt.Errorf("%w: must be below %s", errAmountTooLarge, upper)
		}

		return nil
	}
}

type CreateSessionRequest struct {
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	FixedFee    decimal.Decimal `json:"fixed_fee"`
	PercentFee  decimal.Decimal `json:"percent_fee"`
	TotalCharge decimal.Decimal `json:"total_charge"`
	Description string          `json:"description"`
}

func (req *CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Address, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.FixedFee, validation.By(money(maxAmount))),
		validation.Field(&req.PercentFee, validation.By(money(maxPercent))),
		validation.Field(&req.TotalCharge, validation.By(money(maxAmount))),
		validation.Field(&req.Description, validation.Length(0, 1000)),
	)
}

func (req *CreateSessionRequest) ToDomain() domain.Session {
	return domain.Session{
		Name:        req.Name,
		Address:     req.Address,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		FixedFee:    req.FixedFee,
		PercentFee:  req.PercentFee,
		TotalCharge: req.TotalCharge,
		Description: req.Description,
	}
}

type UpdateSessionRequest struct {
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	FixedFee    *decimal.Decimal `json:"fixed_fee,omitempty"`
	PercentFee  *decimal.Decimal `json:"percent_fee,omitempty"`
	TotalCharge *decimal.Decimal `json:"total_charge,omitempty"`
	Description *string          `json:"description,omitempty"`
}

func (req *UpdateSessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FixedFee, validation.By(money(maxAmount))),
		validation.Field(&req.PercentFee, validation.By(money(maxPercent))),
		validation.Field(&req.TotalCharge, validation.By(money(maxAmount))),
	)
}

func (req *UpdateSessionRequest) ToDomain(id uint) domain.SessionUpdate {
	return domain.SessionUpdate{
		ID:          id,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		FixedFee:    req.FixedFee,
		PercentFee:  req.PercentFee,
		TotalCharge: req.TotalCharge,
		Description: req.Description,
	}
}

type BulkSessionUpdate struct {
	ID uint `json:"id"`
	UpdateSessionRequest
}

type BulkUpdateSessionsRequest struct {
	Sessions []BulkSessionUpdate `json:"sessions"`
}

func (req *BulkUpdateSessionsRequest) Validate() error {
	if err := validation.ValidateStruct(req, validation.Field(&req.Sessions, validation.Required)); err != nil {
		return err
	}

	errs := validation.Errors{}
	for i := range req.Sessions {
		s := &req.Sessions[i]
		if s.ID == 0 {
			errs[indexKey(i)] = errors.New("id is required")
			continue
		}
		if err := s.UpdateSessionRequest.Validate(); err != nil {
			errs[indexKey(i)] = err
		}
	}

	return errs.Filter()
}

func indexKey(i int) string {
	return "sessions[" + strconv.Itoa(i) + "]"
}

func (req *BulkUpdateSessionsRequest) ToDomain() []domain.SessionUpdate {
	updates := make([]domain.SessionUpdate, 0, len(req.Sessions))
	for i := range req.Sessions {
		updates = append(updates, req.Sessions[i].ToDomain(req.Sessions[i].ID))
	}

	return updates
}
