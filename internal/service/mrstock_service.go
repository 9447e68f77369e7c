package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"farmatrack/internal/domain"
	"farmatrack/internal/logger"
	"farmatrack/internal/repository"
)

// SeedStock начальный журнал: четыре позиции по 100 штук
var SeedStock = []domain.MrStockItem{
	{ID: "P001", Name: "Product X (500mg)", Stock: 100},
	{ID: "P002", Name: "Product Y Syrup (100ml)", Stock: 100},
	{ID: "P003", Name: "Product Z Cream", Stock: 100},
	{ID: "P004", Name: "Sample Kit A", Stock: 100},
}

type StockInput struct {
	Name  string
	Stock int
}

// MrStockService журнал остатков MR.
// Update доверяет клиенту; AdjustStock не даёт остатку уйти в минус.
type MrStockService struct {
	repo repository.StockRepository
	tx   repository.TxManager
}

func NewMrStockService(repo repository.StockRepository, tx repository.TxManager) *MrStockService {
	return &MrStockService{repo: repo, tx: tx}
}

// Seed заполняет журнал SeedStock, только если он пуст. Возвращает true, если вставка была.
func (s *MrStockService) Seed(ctx context.Context) (bool, error) {
	seeded := false
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		n, err := s.repo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for _, item := range SeedStock {
			it := item
			if err := s.repo.Create(ctx, &it); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if errors.Is(err, repository.ErrDuplicate) {
		// another instance seeded between our count and insert
		logger.Info("stock.seed.skipped", "reason", "already seeded")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed stock: %w", err)
	}
	if seeded {
		logger.Info("stock.seeded", "items", len(SeedStock))
	}
	return seeded, nil
}

// List по коду продукта
func (s *MrStockService) List(ctx context.Context) ([]domain.MrStockItem, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	slices.SortFunc(out, domain.StockItemsByID)
	return out, nil
}

func (s *MrStockService) Get(ctx context.Context, id string) (*domain.MrStockItem, error) {
	if id == "" {
		return nil, errIDRequired
	}
	item, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Stock item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get stock %s: %w", id, err)
	}
	return item, nil
}

// Update перезаписывает имя и остаток как есть, включая отрицательный остаток
func (s *MrStockService) Update(ctx context.Context, id string, in StockInput) (*domain.MrStockItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = in.Name
	item.Stock = in.Stock
	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Stock item not found")
		}
		return nil, fmt.Errorf("update stock %s: %w", id, err)
	}
	return item, nil
}

// AdjustStock атомарно прибавляет delta к остатку. Если результат < 0,
// ErrNotEnoughStock и никакой записи.
func (s *MrStockService) AdjustStock(ctx context.Context, productID string, delta int) (*domain.MrStockItem, error) {
	if productID == "" {
		return nil, invalid("productId is required")
	}
	var updated *domain.MrStockItem
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetForUpdate(ctx, productID)
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Stock item not found")
		}
		if err != nil {
			return err
		}
		next := item.Stock + delta
		if next < 0 {
			return notEnoughStock("Insufficient stock for product " + productID)
		}
		item.Stock = next
		if err := s.repo.Update(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, err
		}
		return nil, fmt.Errorf("adjust stock %s: %w", productID, err)
	}
	logger.Debug("stock.adjusted", "product", productID, "delta", delta, "stock", updated.Stock)
	return updated, nil
}
