package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNegativeAmount = errors.New("price and fees must not be negative")

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// FeeAmount returns the organizer's fee for one unit sold at unitPrice:
// unitPrice * percentFee / 100 + fixedFee, rounded half-even to cents.
func FeeAmount(unitPrice, fixedFee, percentFee decimal.Decimal) (decimal.Decimal, error) {
	if unitPrice.IsNegative() || fixedFee.IsNegative() || percentFee.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}

	fee := unitPrice.Mul(percentFee).Div(hundred).Add(fixedFee)

	return fee.RoundBank(moneyPlaces), nil
}

// ComputeFinalPrice returns the price a buyer pays for one unit:
// unitPrice + unitPrice * percentFee / 100 + fixedFee, rounded half-even to cents.
func ComputeFinalPrice(unitPrice, fixedFee, percentFee decimal.Decimal) (decimal.Decimal, error) {
	fee, err := FeeAmount(unitPrice, fixedFee, percentFee)
	if err != nil {
		return decimal.Zero, err
	}

	return unitPrice.Add(fee).RoundBank(moneyPlaces), nil
}
