package repository

import (
	"context"
	"errors"

	"farmatrack/internal/domain"
)

var (
	// ErrNotFound возвращается, когда сущность не найдена
	ErrNotFound = errors.New("not found")
	// ErrDuplicate нарушение уникальности (ключ или email)
	ErrDuplicate = errors.New("duplicate key")
)

// Repository общий CRUD-контракт таблицы с ключом K
type Repository[T any, K comparable] interface {
	Create(ctx context.Context, v *T) error
	GetByID(ctx context.Context, id K) (*T, error)
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id K) error
	List(ctx context.Context) ([]T, error)
	Count(ctx context.Context) (int64, error)
}

type (
	DoctorRepository  = Repository[domain.Doctor, int64]
	ProductRepository = Repository[domain.Product, int64]
	TaskRepository    = Repository[domain.Task, int64]
	TargetRepository  = Repository[domain.Target, int64]
)

// UserRepository добавляет поиск по email без учёта регистра
type UserRepository interface {
	Repository[domain.User, int64]
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// StockRepository журнал остатков MR. GetForUpdate внутри транзакции
// блокирует строку до её завершения.
type StockRepository interface {
	Repository[domain.MrStockItem, string]
	GetForUpdate(ctx context.Context, id string) (*domain.MrStockItem, error)
}

// TxManager абстракция транзакции. Для in-memory: глобальная блокировка записи,
// для SQL: транзакция БД.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store набор репозиториев одного бэкенда
type Store struct {
	Doctors  DoctorRepository
	Products ProductRepository
	Tasks    TaskRepository
	Targets  TargetRepository
	Users    UserRepository
	Stock    StockRepository
	Tx       TxManager
}
