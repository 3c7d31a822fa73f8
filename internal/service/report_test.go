package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festijeux/market-api/internal/domain"
)

func TestReportService_BuildReport(t *testing.T) {
	fair := springFair()
	fair.TotalCharge = decimal.NewFromInt(150)
	sessions := newFakeSessionRepo(fair)
	store := newFakeStore(sessions)
	stock := NewStockService(store, &recordingNotifier{})
	svc := NewReportService(store, sessions)
	ctx := context.Background()

	seller := "seller@example.com"
	sessionID := uint(1)

	t.Run("nothing to report", func(t *testing.T) {
		report, err := svc.BuildReport(ctx, domain.ReportFilter{SellerEmail: &seller}, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.ReportNothingToReport, report.Status)
		assert.Empty(t, report.XAxis)
	})

	item, _, err := stock.Deposit(ctx, domain.DepositInput{
		SellerEmail: seller,
		GameName:    "Catan",
		UnitPrice:   decimal.NewFromInt(20),
		SessionID:   sessionID,
		Quantity:    10,
	})
	require.NoError(t, err)
	_, err = stock.RecordSale(ctx, item.ID, 3)
	require.NoError(t, err)

	t.Run("seller report", func(t *testing.T) {
		report, err := svc.BuildReport(ctx, domain.ReportFilter{SellerEmail: &seller}, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.ReportReady, report.Status)
		assert.Equal(t, []int{1, 2, 3}, report.XAxis)
		assert.Equal(t, int64(10), report.TotalQuantityDeposited)
		assert.Equal(t, int64(3), report.TotalQuantitySold)
		assert.True(t, report.TotalFinal.Equal(decimal.NewFromInt(72)), report.TotalFinal.String())
		assert.True(t, report.TotalFees.Equal(decimal.NewFromInt(12)), report.TotalFees.String())
		assert.True(t, report.FixedCharges.IsZero())
	})

	t.Run("session report defaults fixed charges", func(t *testing.T) {
		report, err := svc.BuildReport(ctx, domain.ReportFilter{SessionID: &sessionID}, nil)
		require.NoError(t, err)
		assert.True(t, report.FixedCharges.Equal(decimal.NewFromInt(150)))

		override := decimal.NewFromInt(80)
		report, err = svc.BuildReport(ctx, domain.ReportFilter{SessionID: &sessionID}, &override)
		require.NoError(t, err)
		assert.True(t, report.FixedCharges.Equal(override))
	})

	t.Run("unknown session", func(t *testing.T) {
		unknown := uint(9)
		_, err := svc.BuildReport(ctx, domain.ReportFilter{SessionID: &unknown}, nil)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("negative fixed charges", func(t *testing.T) {
		negative := decimal.NewFromInt(-1)
		_, err := svc.BuildReport(ctx, domain.ReportFilter{}, &negative)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestPaymentService(t *testing.T) {
	sessions := newFakeSessionRepo(springFair())
	store := newFakeStore(sessions)
	stock := NewStockService(store, &recordingNotifier{})
	svc := NewPaymentService(store)
	ctx := context.Background()

	seller := "seller@example.com"
	item, _, err := stock.Deposit(ctx, domain.DepositInput{
		SellerEmail: seller,
		GameName:    "Catan",
		UnitPrice:   decimal.NewFromInt(20),
		SessionID:   1,
		Quantity:    10,
	})
	require.NoError(t, err)
	_, err = stock.RecordSale(ctx, item.ID, 3)
	require.NoError(t, err)
	_, err = stock.RecordSale(ctx, item.ID, 7)
	require.NoError(t, err)

	balance, err := svc.SellerBalance(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, 2, balance.UnpaidSales)
	assert.True(t, balance.UnpaidTotal.Equal(decimal.NewFromInt(200)))

	result, err := svc.PaySellerInFull(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.RecordsUpdated)

	result, err = svc.PaySellerInFull(ctx, seller)
	require.NoError(t, err)
	assert.Zero(t, result.RecordsUpdated)

	result, err = svc.PaySellerInFull(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Zero(t, result.RecordsUpdated)

	_, err = svc.PaySellerInFull(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)

	balance, err = svc.SellerBalance(ctx, seller)
	require.NoError(t, err)
	assert.Zero(t, balance.UnpaidSales)
	assert.Equal(t, 2, balance.PaidSales)
}
