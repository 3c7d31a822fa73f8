package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/festijeux/market-api/internal/domain"
)

type SaleRepository interface {
	FindSales(ctx context.Context, filter domain.ReportFilter) ([]domain.SaleRecord, error)
	FindSalesWithFees(ctx context.Context, filter domain.ReportFilter) ([]domain.SaleWithFees, error)
	SumDeposited(ctx context.Context, filter domain.ReportFilter) (int64, error)
	MarkSellerPaid(ctx context.Context, sellerEmail string, paidAt time.Time) (int64, error)
}

type SessionFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Session, error)
}

type ReportService struct {
	sales    SaleRepository
	sessions SessionFinder
}

func NewReportService(sales SaleRepository, sessions SessionFinder) *ReportService {
	return &ReportService{
		sales:    sales,
		sessions: sessions,
	}
}

// BuildReport computes the cumulative series for every sale matching filter.
// A nil fixedCharges defaults to the session's total charge when the report
// is scoped to one session, and to zero otherwise.
func (s *ReportService) BuildReport(ctx context.Context, filter domain.ReportFilter, fixedCharges *decimal.Decimal) (domain.Report, error) {
	charges := decimal.Zero
	if fixedCharges != nil {
		if fixedCharges.IsNegative() {
			return domain.Report{}, fmt.Errorf("%w: fixed charges must not be negative", ErrValidation)
		}
		charges = *fixedCharges
	}

	if filter.SessionID != nil {
		session, err := s.sessions.FindByID(ctx, *filter.SessionID)
		if err != nil {
			return domain.Report{}, fmt.Errorf("s.sessions.FindByID -> %w", err)
		}

		if fixedCharges == nil {
			charges = session.TotalCharge
		}
	}

	sales, err := s.sales.FindSalesWithFees(ctx, filter)
	if err != nil {
		return domain.Report{}, fmt.Errorf("s.sales.FindSalesWithFees -> %w", err)
	}

	deposited, err := s.sales.SumDeposited(ctx, filter)
	if err != nil {
		return domain.Report{}, fmt.Errorf("s.sales.SumDeposited -> %w", err)
	}

	report, err := domain.BuildReport(sales, deposited, charges)
	if err != nil {
		return domain.Report{}, fmt.Errorf("domain.BuildReport -> %w", err)
	}

	return report, nil
}

func (s *ReportService) ListSales(ctx context.Context, filter domain.ReportFilter) ([]domain.SaleRecord, error) {
	sales, err := s.sales.FindSales(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.sales.FindSales -> %w", err)
	}

	return sales, nil
}
