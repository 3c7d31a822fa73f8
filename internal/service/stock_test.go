package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festijeux/market-api/internal/domain"
)

func springFair() domain.Session {
	return domain.Session{
		Name:       "Spring fair",
		StartDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
		FixedFee:   decimal.NewFromInt(2),
		PercentFee: decimal.NewFromInt(10),
	}
}

func newStockFixture() (*StockService, *fakeStore, *recordingNotifier) {
	store := newFakeStore(newFakeSessionRepo(springFair()))
	notifier := &recordingNotifier{}

	return NewStockService(store, notifier), store, notifier
}

func TestStockService_Deposit(t *testing.T) {
	svc, _, notifier := newStockFixture()
	ctx := context.Background()

	item, record, err := svc.Deposit(ctx, domain.DepositInput{
		SellerEmail: "seller@example.com",
		GameName:    "Catan",
		UnitPrice:   decimal.NewFromInt(20),
		SessionID:   1,
		Quantity:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, item.CurrentQuantity)
	assert.Equal(t, 10, record.QuantityDeposited)
	assert.True(t, item.FinalPrice.Equal(decimal.NewFromInt(24)), item.FinalPrice.String())

	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.StockDeposited, notifier.events[0].Type)
}

func TestStockService_DepositValidation(t *testing.T) {
	svc, _, notifier := newStockFixture()
	ctx := context.Background()

	valid := domain.DepositInput{
		SellerEmail: "seller@example.com",
		GameName:    "Catan",
		UnitPrice:   decimal.NewFromInt(20),
		SessionID:   1,
		Quantity:    1,
	}

	tests := []struct {
		name   string
		modify func(in *domain.DepositInput)
	}{
		{name: "zero quantity", modify: func(in *domain.DepositInput) { in.Quantity = 0 }},
		{name: "negative price", modify: func(in *domain.DepositInput) { in.UnitPrice = decimal.NewFromInt(-1) }},
		{name: "missing game", modify: func(in *domain.DepositInput) { in.GameName = " " }},
		{name: "missing seller", modify: func(in *domain.DepositInput) { in.SellerEmail = "" }},
		{name: "unknown session", modify: func(in *domain.DepositInput) { in.SessionID = 99 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.modify(&in)

			_, _, err := svc.Deposit(ctx, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	assert.Empty(t, notifier.events)
}

func TestStockService_RecordSale(t *testing.T) {
	svc, store, notifier := newStockFixture()
	ctx := context.Background()

	item, _, err := svc.Deposit(ctx, domain.DepositInput{
		SellerEmail: "seller@example.com",
		GameName:    "Catan",
		UnitPrice:   decimal.NewFromInt(20),
		SessionID:   1,
		Quantity:    10,
	})
	require.NoError(t, err)

	_, err = svc.RecordSale(ctx, item.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.RecordSale(ctx, item.ID, 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	sale, err := svc.RecordSale(ctx, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, sale.QuantitySold)
	assert.False(t, sale.SellerPaid)

	left, err := svc.GetWithFees(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, left.CurrentQuantity)

	_, err = svc.RecordSale(ctx, item.ID, 7)
	require.NoError(t, err)

	_, err = svc.GetWithFees(ctx, item.ID)
	assert.ErrorIs(t, err, ErrStockNotFound)
	assert.Len(t, store.sales, 2)

	last := notifier.events[len(notifier.events)-1]
	assert.Equal(t, domain.StockSold, last.Type)
	assert.Equal(t, 0, last.RemainingQuantity)
}

func TestStockService_Withdraw(t *testing.T) {
	svc, store, _ := newStockFixture()
	ctx := context.Background()

	item, _, err := svc.Deposit(ctx, domain.DepositInput{
		SellerEmail: "seller@example.com",
		GameName:    "Dixit",
		UnitPrice:   decimal.NewFromInt(30),
		SessionID:   1,
		Quantity:    3,
	})
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, item.ID, 5)
	assert.ErrorIs(t, err, ErrQuantityExceedsStock)

	unchanged, err := svc.GetWithFees(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, unchanged.CurrentQuantity)

	result, err := svc.Withdraw(ctx, item.ID, 3)
	require.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.Empty(t, store.sales)
}

func TestStockService_ToggleOnSale(t *testing.T) {
	svc, _, notifier := newStockFixture()
	ctx := context.Background()

	item, _, err := svc.Deposit(ctx, domain.DepositInput{
		SellerEmail: "seller@example.com",
		GameName:    "Azul",
		UnitPrice:   decimal.NewFromInt(25),
		SessionID:   1,
		Quantity:    1,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		updated, err := svc.ToggleOnSale(ctx, item.ID, true)
		require.NoError(t, err)
		assert.True(t, updated.OnSale)
	}

	forSale, err := svc.ListForSale(ctx)
	require.NoError(t, err)
	assert.Len(t, forSale, 1)

	_, err = svc.ToggleOnSale(ctx, 42, true)
	assert.ErrorIs(t, err, ErrStockNotFound)

	last := notifier.events[len(notifier.events)-1]
	require.NotNil(t, last.OnSale)
	assert.True(t, *last.OnSale)
}
