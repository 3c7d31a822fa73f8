package repository

import (
	"context"
	"fmt"

	"github.com/festijeux/market-api/internal/domain"
	"github.com/festijeux/market-api/internal/repository/dao"
)

var (
	ErrStockNotFound        = dao.ErrStockNotFound
	ErrInsufficientStock    = dao.ErrInsufficientStock
	ErrQuantityExceedsStock = dao.ErrQuantityExceedsStock
)

type StockDAO interface {
	Deposit(ctx context.Context, item dao.StockItem) (dao.StockItem, dao.DepositRecord, error)
	FindByID(ctx context.Context, id uint) (dao.StockItem, error)
	FindAll(ctx context.Context) ([]dao.StockItem, error)
	FindOnSale(ctx context.Context) ([]dao.StockItem, error)
	FindBySeller(ctx context.Context, sellerEmail string) ([]dao.StockItem, error)
	RecordSale(ctx context.Context, id uint, quantity int) (dao.SaleRecord, int, error)
	Withdraw(ctx context.Context, id uint, quantity int) (dao.StockItem, int, bool, error)
	SetOnSale(ctx context.Context, id uint, onSale bool) (dao.StockItem, error)
}

type StockRepository struct {
	dao StockDAO
}

func NewStockRepository(dao StockDAO) *StockRepository {
	return &StockRepository{
		dao: dao,
	}
}

// Deposit stores the unit price rounded to cents, the way the column keeps it,
// so the returned final price matches later reads.
func (r *StockRepository) Deposit(ctx context.Context, in domain.DepositInput) (domain.StockItemWithFees, domain.DepositRecord, error) {
	item, record, err := r.dao.Deposit(ctx, dao.StockItem{
		SellerEmail:     in.SellerEmail,
		GameName:        in.GameName,
		UnitPrice:       in.UnitPrice.Round(2),
		Publisher:       in.Publisher,
		Description:     in.Description,
		PhotoPath:       in.PhotoPath,
		SessionID:       in.SessionID,
		CurrentQuantity: in.Quantity,
		OnSale:          in.OnSale,
	})
	if err != nil {
		return domain.StockItemWithFees{}, domain.DepositRecord{}, fmt.Errorf("r.dao.Deposit -> %w", err)
	}

	withFees, err := stockDAOToDomain(item)
	if err != nil {
		return domain.StockItemWithFees{}, domain.DepositRecord{}, err
	}

	return withFees, domain.DepositRecord{
		ID:                record.ID,
		SellerEmail:       record.SellerEmail,
		SessionID:         record.SessionID,
		StockItemID:       record.StockItemID,
		QuantityDeposited: record.QuantityDeposited,
		CreatedAt:         record.CreatedAt,
	}, nil
}

func (r *StockRepository) FindByID(ctx context.Context, id uint) (domain.StockItemWithFees, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.StockItemWithFees{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return stockDAOToDomain(found)
}

func (r *StockRepository) FindAll(ctx context.Context) ([]domain.StockItemWithFees, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return stockListToDomain(found)
}

func (r *StockRepository) FindOnSale(ctx context.Context) ([]domain.StockItemWithFees, error) {
	found, err := r.dao.FindOnSale(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOnSale -> %w", err)
	}

	return stockListToDomain(found)
}

func (r *StockRepository) FindBySeller(ctx context.Context, sellerEmail string) ([]domain.StockItemWithFees, error) {
	found, err := r.dao.FindBySeller(ctx, sellerEmail)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBySeller -> %w", err)
	}

	return stockListToDomain(found)
}

// RecordSale returns the appended sale and the quantity left on the item.
func (r *StockRepository) RecordSale(ctx context.Context, id uint, quantity int) (domain.SaleRecord, int, error) {
	sale, remaining, err := r.dao.RecordSale(ctx, id, quantity)
	if err != nil {
		return domain.SaleRecord{}, 0, fmt.Errorf("r.dao.RecordSale -> %w", err)
	}

	return saleDAOToDomain(sale), remaining, nil
}

func (r *StockRepository) Withdraw(ctx context.Context, id uint, quantity int) (domain.StockItem, domain.WithdrawResult, error) {
	item, remaining, deleted, err := r.dao.Withdraw(ctx, id, quantity)
	if err != nil {
		return domain.StockItem{}, domain.WithdrawResult{}, fmt.Errorf("r.dao.Withdraw -> %w", err)
	}

	return stockItemDAOToDomain(item), domain.WithdrawResult{
		StockItemID:       id,
		Deleted:           deleted,
		RemainingQuantity: remaining,
	}, nil
}

func (r *StockRepository) SetOnSale(ctx context.Context, id uint, onSale bool) (domain.StockItemWithFees, error) {
	updated, err := r.dao.SetOnSale(ctx, id, onSale)
	if err != nil {
		return domain.StockItemWithFees{}, fmt.Errorf("r.dao.SetOnSale -> %w", err)
	}

	return stockDAOToDomain(updated)
}

func stockListToDomain(items []dao.StockItem) ([]domain.StockItemWithFees, error) {
	result := make([]domain.StockItemWithFees, 0, len(items))
	for _, item := range items {
		withFees, err := stockDAOToDomain(item)
		if err != nil {
			return nil, err
		}

		result = append(result, withFees)
	}

	return result, nil
}

func stockItemDAOToDomain(item dao.StockItem) domain.StockItem {
	return domain.StockItem{
		ID:              item.ID,
		SellerEmail:     item.SellerEmail,
		GameName:        item.GameName,
		UnitPrice:       item.UnitPrice,
		SessionID:       item.SessionID,
		CurrentQuantity: item.CurrentQuantity,
		OnSale:          item.OnSale,
		PhotoPath:       item.PhotoPath,
		Publisher:       item.Publisher,
		Description:     item.Description,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// stockDAOToDomain expects item.Session to be loaded.
func stockDAOToDomain(item dao.StockItem) (domain.StockItemWithFees, error) {
	final, err := domain.ComputeFinalPrice(item.UnitPrice, item.Session.FixedFee, item.Session.PercentFee)
	if err != nil {
		return domain.StockItemWithFees{}, fmt.Errorf("domain.ComputeFinalPrice(stock %d) -> %w", item.ID, err)
	}

	return domain.StockItemWithFees{
		StockItem:   stockItemDAOToDomain(item),
		SessionName: item.Session.Name,
		FixedFee:    item.Session.FixedFee,
		PercentFee:  item.Session.PercentFee,
		FinalPrice:  final,
	}, nil
}
