package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/repository"
)

var (
	ErrStockNotFound        = repository.ErrStockNotFound
	ErrInsufficientStock    = repository.ErrInsufficientStock
	ErrQuantityExceedsStock = repository.ErrQuantityExceedsStock
)

type StockRepository interface {
	Deposit(ctx context.Context, in domain.DepositInput) (domain.StockItemWithFees, domain.DepositRecord, error)
	FindByID(ctx context.Context, id uint) (domain.StockItemWithFees, error)
	FindAll(ctx context.Context) ([]domain.StockItemWithFees, error)
	FindOnSale(ctx context.Context) ([]domain.StockItemWithFees, error)
	FindBySeller(ctx context.Context, sellerEmail string) ([]domain.StockItemWithFees, error)
	RecordSale(ctx context.Context, id uint, quantity int) (domain.SaleRecord, int, error)
	Withdraw(ctx context.Context, id uint, quantity int) (domain.StockItem, domain.WithdrawResult, error)
	SetOnSale(ctx context.Context, id uint, onSale bool) (domain.StockItemWithFees, error)
}

// StockNotifier receives an event after every committed stock mutation.
type StockNotifier interface {
	Publish(event domain.StockEvent)
}

type StockService struct {
	repo     StockRepository
	notifier StockNotifier
}

func NewStockService(repo StockRepository, notifier StockNotifier) *StockService {
	return &StockService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *StockService) Deposit(ctx context.Context, in domain.DepositInput) (domain.StockItemWithFees, domain.DepositRecord, error) {
	if err := validateDeposit(in); err != nil {
		return domain.StockItemWithFees{}, domain.DepositRecord{}, err
	}

	item, record, err := s.repo.Deposit(ctx, in)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domain.StockItemWithFees{}, domain.DepositRecord{}, fmt.Errorf("%w: session %d does not exist", ErrValidation, in.SessionID)
		}

		return domain.StockItemWithFees{}, domain.DepositRecord{}, fmt.Errorf("s.repo.Deposit -> %w", err)
	}

	zap.L().Info("stock deposited",
		zap.Uint("stock_id", item.ID),
		zap.String("seller_email", item.SellerEmail),
		zap.Int("quantity", record.QuantityDeposited),
	)

	onSale := item.OnSale
	s.notifier.Publish(domain.StockEvent{
		Type:              domain.StockDeposited,
		StockItemID:       item.ID,
		GameName:          item.GameName,
		SellerEmail:       item.SellerEmail,
		Quantity:          record.QuantityDeposited,
		RemainingQuantity: item.CurrentQuantity,
		OnSale:            &onSale,
		OccurredAt:        time.Now().UTC(),
	})

	return item, record, nil
}

func (s *StockService) RecordSale(ctx context.Context, stockID uint, quantity int) (domain.SaleRecord, error) {
	if quantity <= 0 {
		return domain.SaleRecord{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	sale, remaining, err := s.repo.RecordSale(ctx, stockID, quantity)
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("s.repo.RecordSale -> %w", err)
	}

	s.notifier.Publish(domain.StockEvent{
		Type:              domain.StockSold,
		StockItemID:       stockID,
		GameName:          sale.GameName,
		SellerEmail:       sale.SellerEmail,
		Quantity:          quantity,
		RemainingQuantity: remaining,
		OccurredAt:        time.Now().UTC(),
	})

	return sale, nil
}

func (s *StockService) Withdraw(ctx context.Context, stockID uint, quantity int) (domain.WithdrawResult, error) {
	if quantity <= 0 {
		return domain.WithdrawResult{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	item, result, err := s.repo.Withdraw(ctx, stockID, quantity)
	if err != nil {
		return domain.WithdrawResult{}, fmt.Errorf("s.repo.Withdraw -> %w", err)
	}

	s.notifier.Publish(domain.StockEvent{
		Type:              domain.StockWithdrawn,
		StockItemID:       stockID,
		GameName:          item.GameName,
		SellerEmail:       item.SellerEmail,
		Quantity:          quantity,
		RemainingQuantity: result.RemainingQuantity,
		OccurredAt:        time.Now().UTC(),
	})

	return result, nil
}

// ToggleOnSale sets the on-sale flag. Setting the current value again is not
// an error.
func (s *StockService) ToggleOnSale(ctx context.Context, stockID uint, onSale bool) (domain.StockItemWithFees, error) {
	item, err := s.repo.SetOnSale(ctx, stockID, onSale)
	if err != nil {
		return domain.StockItemWithFees{}, fmt.Errorf("s.repo.SetOnSale -> %w", err)
	}

	s.notifier.Publish(domain.StockEvent{
		Type:              domain.StockSaleToggled,
		StockItemID:       stockID,
		GameName:          item.GameName,
		SellerEmail:       item.SellerEmail,
		RemainingQuantity: item.CurrentQuantity,
		OnSale:            &onSale,
		OccurredAt:        time.Now().UTC(),
	})

	return item, nil
}

func (s *StockService) GetWithFees(ctx context.Context, stockID uint) (domain.StockItemWithFees, error) {
	item, err := s.repo.FindByID(ctx, stockID)
	if err != nil {
		return domain.StockItemWithFees{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return item, nil
}

func (s *StockService) ListAll(ctx context.Context) ([]domain.StockItemWithFees, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return items, nil
}

func (s *StockService) ListForSale(ctx context.Context) ([]domain.StockItemWithFees, error) {
	items, err := s.repo.FindOnSale(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindOnSale -> %w", err)
	}

	return items, nil
}

func (s *StockService) ListBySeller(ctx context.Context, sellerEmail string) ([]domain.StockItemWithFees, error) {
	items, err := s.repo.FindBySeller(ctx, sellerEmail)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBySeller -> %w", err)
	}

	return items, nil
}

func validateDeposit(in domain.DepositInput) error {
	switch {
	case strings.TrimSpace(in.SellerEmail) == "":
		return fmt.Errorf("%w: seller email is required", ErrValidation)
	case strings.TrimSpace(in.GameName) == "":
		return fmt.Errorf("%w: game name is required", ErrValidation)
	case in.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	case in.UnitPrice.IsNegative():
		return fmt.Errorf("%w: unit price must not be negative", ErrValidation)
	}

	return nil
}
