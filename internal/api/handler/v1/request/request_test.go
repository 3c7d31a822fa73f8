package request

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/festijeux/market-api/internal/domain"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Email:           "alice@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Name:            "Alice",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(r *SignupRequest)
		want   error
	}{
		{name: "no digit", modify: func(r *SignupRequest) { r.Password, r.ConfirmPassword = "secretpass", "secretpass" }, want: errInvalidPassword},
		{name: "no letter", modify: func(r *SignupRequest) { r.Password, r.ConfirmPassword = "12345678", "12345678" }, want: errInvalidPassword},
		{name: "too short", modify: func(r *SignupRequest) { r.Password, r.ConfirmPassword = "abc123", "abc123" }, want: errInvalidPassword},
		{name: "mismatch", modify: func(r *SignupRequest) { r.ConfirmPassword = "secret124" }, want: errConfirmPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.modify(&req)
			assert.ErrorIs(t, req.Validate(), tt.want)
		})
	}

	bad := valid
	bad.Email = "not-an-email"
	assert.Error(t, bad.Validate())
}

func TestRoleRequests(t *testing.T) {
	req := ChangeRoleRequest{Role: "vendeur"}
	assert.NoError(t, req.Validate())
	assert.Equal(t, domain.RoleSeller, req.ParsedRole())

	req.Role = "root"
	assert.Error(t, req.Validate())

	pre := PreregisterRequest{Email: "bob@example.com", Role: "Manager"}
	assert.NoError(t, pre.Validate())
	assert.Equal(t, domain.RoleManager, pre.ParsedRole())
}

func TestDepositRequest_Validate(t *testing.T) {
	req := DepositRequest{
		SellerEmail: "seller@example.com",
		GameName:    "Catan",
		UnitPrice:   decimal.NewFromInt(20),
		SessionID:   1,
		Quantity:    10,
	}
	assert.NoError(t, req.Validate())

	req.UnitPrice = decimal.NewFromInt(-1)
	assert.Error(t, req.Validate())

	req.UnitPrice = decimal.Zero
	req.Quantity = 0
	assert.Error(t, req.Validate())
}

func TestSessionRequests(t *testing.T) {
	create := CreateSessionRequest{
		Name:       "Spring fair",
		Address:    "Hall B",
		StartDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
		PercentFee: decimal.NewFromInt(10),
	}
	assert.NoError(t, create.Validate())

	create.FixedFee = decimal.NewFromInt(-2)
	assert.Error(t, create.Validate())

	negative := decimal.NewFromInt(-1)
	bulk := BulkUpdateSessionsRequest{Sessions: []BulkSessionUpdate{
		{ID: 1},
		{ID: 0},
		{ID: 2, UpdateSessionRequest: UpdateSessionRequest{PercentFee: &negative}},
	}}
	err := bulk.Validate()
	assert.ErrorContains(t, err, "sessions[1]")
	assert.ErrorContains(t, err, "sessions[2]")

	assert.Error(t, (&BulkUpdateSessionsRequest{}).Validate())
}

func TestToggleOnSaleRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, (&ToggleOnSaleRequest{}).Validate(), errOnSaleRequired)

	on := true
	assert.NoError(t, (&ToggleOnSaleRequest{OnSale: &on}).Validate())
}

func TestMoneyRule(t *testing.T) {
	tests := []struct {
		name  string
		value any
		upper decimal.Decimal
		want  error
	}{
		{name: "whole amount", value: decimal.NewFromInt(20), upper: maxAmount},
		{name: "cents", value: decimal.RequireFromString("19.99"), upper: maxAmount},
		{name: "trailing zeros", value: decimal.RequireFromString("5.500"), upper: maxAmount},
		{name: "nil pointer", value: (*decimal.Decimal)(nil), upper: maxAmount},
		{name: "negative", value: decimal.NewFromInt(-1), upper: maxAmount, want: errNegativeAmount},
		{name: "sub-cent", value: decimal.RequireFromString("10.005"), upper: maxAmount, want: errTooManyDecimals},
		{name: "amount overflow", value: decimal.New(1, 10), upper: maxAmount, want: errAmountTooLarge},
		{name: "largest amount", value: decimal.RequireFromString("9999999999.99"), upper: maxAmount},
		{name: "percent overflow", value: decimal.NewFromInt(1000), upper: maxPercent, want: errAmountTooLarge},
		{name: "largest percent", value: decimal.RequireFromString("999.99"), upper: maxPercent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := money(tt.upper)(tt.value)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMoneyRequests_RejectUnstorableAmounts(t *testing.T) {
	deposit := DepositRequest{
		SellerEmail: "seller@example.com",
		GameName:    "Catan",
		UnitPrice:   decimal.RequireFromString("10.005"),
		SessionID:   1,
		Quantity:    1,
	}
	assert.ErrorContains(t, deposit.Validate(), "unit_price")

	deposit.UnitPrice = decimal.New(1, 10)
	assert.ErrorContains(t, deposit.Validate(), "unit_price")

	create := CreateSessionRequest{
		Name:       "Spring fair",
		Address:    "Hall B",
		StartDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
		PercentFee: decimal.NewFromInt(1000),
	}
	assert.ErrorContains(t, create.Validate(), "percent_fee")

	fee := decimal.RequireFromString("0.001")
	update := UpdateSessionRequest{FixedFee: &fee}
	assert.ErrorContains(t, update.Validate(), "fixed_fee")
}
