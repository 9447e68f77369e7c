package service

import (
	"context"

	"farmatrack/internal/domain"
	"farmatrack/internal/repository"
)

type ProductInput struct {
	Name     string
	Category string
	Price    float64
	Stock    int64
}

func (in ProductInput) validate() error {
	if in.Price < 0 {
		return invalid("Price must be >= 0")
	}
	if in.Stock < 0 {
		return invalid("Stock must be >= 0")
	}
	return nil
}

func (in ProductInput) apply(p *domain.Product) {
	p.Name = in.Name
	p.Category = in.Category
	p.Price = in.Price
	p.Stock = in.Stock
}

// ProductService инкапсулирует бизнес-логику вокруг каталога товаров
type ProductService struct {
	crud crud[domain.Product]
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{crud: crud[domain.Product]{repo: repo, entity: "Product", order: domain.ProductsNewestFirst}}
}

// List новые товары сверху
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.crud.list(ctx)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.crud.get(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var p domain.Product
	in.apply(&p)
	return s.crud.create(ctx, &p)
}

func (s *ProductService) Update(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.crud.update(ctx, id, in.apply)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.crud.delete(ctx, id)
}
