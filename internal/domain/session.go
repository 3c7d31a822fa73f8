package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrSessionDates = errors.New("session end date is before its start date")

// Session is one edition of the festival. Its fees apply to every game sold
// during it.
type Session struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	FixedFee    decimal.Decimal `json:"fixed_fee"`
	PercentFee  decimal.Decimal `json:"percent_fee"`
	TotalCharge decimal.Decimal `json:"total_charge"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SessionUpdate carries the mutable fields of a session. Nil fields are left
// untouched.
type SessionUpdate struct {
	ID          uint
	StartDate   *time.Time
	EndDate     *time.Time
	FixedFee    *decimal.Decimal
	PercentFee  *decimal.Decimal
	TotalCharge *decimal.Decimal
	Description *string
}

func (u SessionUpdate) Apply(s Session) Session {
	if u.StartDate != nil {
		s.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		s.EndDate = *u.EndDate
	}
	if u.FixedFee != nil {
		s.FixedFee = *u.FixedFee
	}
	if u.PercentFee != nil {
		s.PercentFee = *u.PercentFee
	}
	if u.TotalCharge != nil {
		s.TotalCharge = *u.TotalCharge
	}
	if u.Description != nil {
		s.Description = *u.Description
	}

	return s
}

func (s Session) Validate() error {
	if s.FixedFee.IsNegative() || s.PercentFee.IsNegative() || s.TotalCharge.IsNegative() {
		return ErrNegativeAmount
	}
	if s.EndDate.Before(s.StartDate) {
		return ErrSessionDates
	}

	return nil
}
