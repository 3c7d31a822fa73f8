package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/repository/dao"
)

type HistoryDAO interface {
	FindSales(ctx context.Context, filter dao.HistoryFilter) ([]dao.SaleRecord, error)
	FindSalesWithFees(ctx context.Context, filter dao.HistoryFilter) ([]dao.SaleWithFees, error)
	SumDeposited(ctx context.Context, filter dao.HistoryFilter) (int64, error)
	MarkSellerPaid(ctx context.Context, sellerEmail string, paidAt time.Time) (int64, error)
}

// SaleRepository reads the sale and deposit logs and settles sellers.
type SaleRepository struct {
	dao HistoryDAO
}

func NewSaleRepository(dao HistoryDAO) *SaleRepository {
	return &SaleRepository{
		dao: dao,
	}
}

func (r *SaleRepository) FindSales(ctx context.Context, filter domain.ReportFilter) ([]domain.SaleRecord, error) {
	found, err := r.dao.FindSales(ctx, toHistoryFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSales -> %w", err)
	}

	sales := make([]domain.SaleRecord, 0, len(found))
	for _, s := range found {
		sales = append(sales, saleDAOToDomain(s))
	}

	return sales, nil
}

func (r *SaleRepository) FindSalesWithFees(ctx context.Context, filter domain.ReportFilter) ([]domain.SaleWithFees, error) {
	found, err := r.dao.FindSalesWithFees(ctx, toHistoryFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSalesWithFees -> %w", err)
	}

	sales := make([]domain.SaleWithFees, 0, len(found))
	for _, s := range found {
		sales = append(sales, domain.SaleWithFees{
			SaleRecord: saleDAOToDomain(s.SaleRecord),
			FixedFee:   s.FixedFee,
			PercentFee: s.PercentFee,
		})
	}

	return sales, nil
}

func (r *SaleRepository) SumDeposited(ctx context.Context, filter domain.ReportFilter) (int64, error) {
	total, err := r.dao.SumDeposited(ctx, toHistoryFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumDeposited -> %w", err)
	}

	return total, nil
}

func (r *SaleRepository) MarkSellerPaid(ctx context.Context, sellerEmail string, paidAt time.Time) (int64, error) {
	n, err := r.dao.MarkSellerPaid(ctx, sellerEmail, paidAt)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MarkSellerPaid -> %w", err)
	}

	return n, nil
}

func toHistoryFilter(f domain.ReportFilter) dao.HistoryFilter {
	return dao.HistoryFilter{
		SellerEmail: f.SellerEmail,
		SessionID:   f.SessionID,
	}
}

func saleDAOToDomain(s dao.SaleRecord) domain.SaleRecord {
	return domain.SaleRecord{
		ID:           s.ID,
		SellerEmail:  s.SellerEmail,
		GameName:     s.GameName,
		UnitPrice:    s.UnitPrice,
		PhotoPath:    s.PhotoPath,
		SessionID:    s.SessionID,
		QuantitySold: s.QuantitySold,
		SellerPaid:   s.SellerPaid,
		PaidAt:       s.PaidAt,
		CreatedAt:    s.CreatedAt,
	}
}
