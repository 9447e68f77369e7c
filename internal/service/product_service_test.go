package service

import (
	"context"
	"errors"
	"testing"

	"farmatrack/internal/repository"
)

func setupPS(t *testing.T) *ProductService {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewProductService(store.Products)
}

func TestProduct_Create_Valid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, err := ps.Create(ctx, ProductInput{Name: "Aspirin", Category: "Tablet", Price: 100, Stock: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("expected id assigned")
	}
}

func TestProduct_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	if _, err := ps.Create(ctx, ProductInput{Name: "N", Price: -1, Stock: 1}); !errors.Is(err, ErrInvalidInput) || err.Error() != "Price must be >= 0" {
		t.Fatalf("expected price validation error, got %v", err)
	}
	if _, err := ps.Create(ctx, ProductInput{Name: "N", Price: 1, Stock: -1}); !errors.Is(err, ErrInvalidInput) || err.Error() != "Stock must be >= 0" {
		t.Fatalf("expected stock validation error, got %v", err)
	}
}

func TestProduct_Update_Get_Delete(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, _ := ps.Create(ctx, ProductInput{Name: "A", Price: 10, Stock: 5})

	// get
	got, err := ps.Get(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get failed: %v", err)
	}

	// update
	up, err := ps.Update(ctx, p.ID, ProductInput{Name: "A+", Price: 12, Stock: 7})
	if err != nil {
		t.Fatalf("update err: %v", err)
	}
	if up.ID != p.ID || up.Name != "A+" || up.Price != 12 || up.Stock != 7 {
		t.Fatalf("not updated: %+v", up)
	}

	// delete
	if err := ps.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete err: %v", err)
	}
	_, err = ps.Get(ctx, p.ID)
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, ErrInvalidInput) || err.Error() != "Product not found" {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	// idempotent
	if err := ps.Delete(ctx, p.ID); err != nil {
		t.Fatalf("second delete err: %v", err)
	}
}

func TestProduct_UpdateMissing(t *testing.T) {
	ps := setupPS(t)
	_, err := ps.Update(context.Background(), 42, ProductInput{Name: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProduct_IDRequired(t *testing.T) {
	ps := setupPS(t)
	if _, err := ps.Get(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if err := ps.Delete(context.Background(), -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestProduct_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	for _, name := range []string{"Aspirin", "Paracetamol", "Ibuprofen"} {
		if _, err := ps.Create(ctx, ProductInput{Name: name, Price: 1, Stock: 1}); err != nil {
			t.Fatal(err)
		}
	}
	list, err := ps.List(ctx)
	if err != nil {
		t.Fatalf("list err: %v", err)
	}
	if len(list) != 3 || list[0].Name != "Ibuprofen" || list[2].Name != "Aspirin" {
		t.Fatalf("unexpected order: %+v", list)
	}
}
