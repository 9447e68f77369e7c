package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"farmatrack/internal/domain"
)

// NewGormStore собирает Store поверх реляционной БД и мигрирует схему
func NewGormStore(db *gorm.DB) (*Store, error) {
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return &Store{
		Doctors:  NewGormTable[domain.Doctor, int64](db, func(d *domain.Doctor) int64 { return d.ID }),
		Products: NewGormTable[domain.Product, int64](db, func(p *domain.Product) int64 { return p.ID }),
		Tasks:    NewGormTable[domain.Task, int64](db, func(t *domain.Task) int64 { return t.ID }),
		Targets:  NewGormTable[domain.Target, int64](db, func(t *domain.Target) int64 { return t.ID }),
		Users:    &GormUsers{NewGormTable[domain.User, int64](db, func(u *domain.User) int64 { return u.ID })},
		Stock:    &GormStock{NewGormTable[domain.MrStockItem, string](db, func(s *domain.MrStockItem) string { return s.ID })},
		Tx:       NewGormTx(db),
	}, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Doctor{},
		&domain.Product{},
		&domain.Task{},
		&domain.Target{},
		&domain.User{},
		&domain.MrStockItem{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

type gormTxKey struct{}

// conn returns the transaction bound to ctx, if any
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(gormTxKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// GormTable таблица T с первичным ключом id типа K
type GormTable[T any, K comparable] struct {
	db  *gorm.DB
	key func(*T) K
}

func NewGormTable[T any, K comparable](db *gorm.DB, key func(*T) K) *GormTable[T, K] {
	return &GormTable[T, K]{db: db, key: key}
}

var (
	_ TaskRepository  = (*GormTable[domain.Task, int64])(nil)
	_ UserRepository  = (*GormUsers)(nil)
	_ StockRepository = (*GormStock)(nil)
)

func (r *GormTable[T, K]) Create(ctx context.Context, v *T) error {
	return translate(conn(ctx, r.db).Create(v).Error)
}

func (r *GormTable[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	var v T
	if err := conn(ctx, r.db).First(&v, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *GormTable[T, K]) Update(ctx context.Context, v *T) error {
	db := conn(ctx, r.db)
	var n int64
	if err := db.Model(new(T)).Where("id = ?", r.key(v)).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return translate(db.Save(v).Error)
}

func (r *GormTable[T, K]) Delete(ctx context.Context, id K) error {
	res := conn(ctx, r.db).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormTable[T, K]) List(ctx context.Context) ([]T, error) {
	out := make([]T, 0)
	if err := conn(ctx, r.db).Order("id").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *GormTable[T, K]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := conn(ctx, r.db).Model(new(T)).Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

type GormUsers struct {
	*GormTable[domain.User, int64]
}

func (r *GormUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := conn(ctx, r.db).Where("LOWER(email) = ?", strings.ToLower(email)).First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *GormUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&domain.User{}).Where("LOWER(email) = ?", strings.ToLower(email)).Count(&n).Error
	if err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

type GormStock struct {
	*GormTable[domain.MrStockItem, string]
}

// GetForUpdate SELECT ... FOR UPDATE; держит блокировку строки до конца транзакции
func (r *GormStock) GetForUpdate(ctx context.Context, id string) (*domain.MrStockItem, error) {
	var item domain.MrStockItem
	err := conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// GormTx транзакция БД; репозитории берут её из контекста
type GormTx struct{ db *gorm.DB }

func NewGormTx(db *gorm.DB) *GormTx { return &GormTx{db: db} }

func (t *GormTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(gormTxKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, gormTxKey{}, tx))
	})
}

// translate maps driver errors onto repository errors
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isDuplicate(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	var myErr *gomysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
