package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/festijeux/market-api/internal/domain"
)

type PaymentService struct {
	repo SaleRepository
	now  func() time.Time
}

func NewPaymentService(repo SaleRepository) *PaymentService {
	return &PaymentService{
		repo: repo,
		now:  time.Now,
	}
}

// PaySellerInFull marks every unpaid sale of the seller as paid, across all
// sessions. A seller with nothing to pay gets RecordsUpdated == 0.
func (s *PaymentService) PaySellerInFull(ctx context.Context, sellerEmail string) (domain.PaymentResult, error) {
	if strings.TrimSpace(sellerEmail) == "" {
		return domain.PaymentResult{}, fmt.Errorf("%w: seller email is required", ErrValidation)
	}

	n, err := s.repo.MarkSellerPaid(ctx, sellerEmail, s.now().UTC())
	if err != nil {
		return domain.PaymentResult{}, fmt.Errorf("s.repo.MarkSellerPaid -> %w", err)
	}

	zap.L().Info("seller paid", zap.String("seller_email", sellerEmail), zap.Int64("records_updated", n))

	return domain.PaymentResult{
		SellerEmail:    sellerEmail,
		RecordsUpdated: n,
	}, nil
}

func (s *PaymentService) SellerBalance(ctx context.Context, sellerEmail string) (domain.SellerBalance, error) {
	if strings.TrimSpace(sellerEmail) == "" {
		return domain.SellerBalance{}, fmt.Errorf("%w: seller email is required", ErrValidation)
	}

	sales, err := s.repo.FindSales(ctx, domain.ReportFilter{SellerEmail: &sellerEmail})
	if err != nil {
		return domain.SellerBalance{}, fmt.Errorf("s.repo.FindSales -> %w", err)
	}

	return domain.NewSellerBalance(sellerEmail, sales), nil
}
