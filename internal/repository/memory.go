package repository

import (
	"context"
	"strings"
	"sync"

	"farmatrack/internal/domain"
)

// MemoryStore объединённое in-memory хранилище всех таблиц под одной блокировкой
type MemoryStore struct {
	mu sync.RWMutex

	Doctors  *MemoryTable[domain.Doctor, int64]
	Products *MemoryTable[domain.Product, int64]
	Tasks    *MemoryTable[domain.Task, int64]
	Targets  *MemoryTable[domain.Target, int64]
	Users    *MemoryUsers
	Stock    *MemoryStock
}

func NewMemoryStore() *MemoryStore {
	m := &MemoryStore{}
	m.Doctors = newMemoryTable(m,
		func(d *domain.Doctor) int64 { return d.ID },
		func(d *domain.Doctor, id int64) { d.ID = id })
	m.Products = newMemoryTable(m,
		func(p *domain.Product) int64 { return p.ID },
		func(p *domain.Product, id int64) { p.ID = id })
	m.Tasks = newMemoryTable(m,
		func(t *domain.Task) int64 { return t.ID },
		func(t *domain.Task, id int64) { t.ID = id })
	m.Targets = newMemoryTable(m,
		func(t *domain.Target) int64 { return t.ID },
		func(t *domain.Target, id int64) { t.ID = id })
	m.Users = &MemoryUsers{newMemoryTable(m,
		func(u *domain.User) int64 { return u.ID },
		func(u *domain.User, id int64) { u.ID = id })}
	// stock keys are product codes chosen by the caller
	m.Stock = &MemoryStock{newMemoryTable[domain.MrStockItem, string](m,
		func(s *domain.MrStockItem) string { return s.ID }, nil)}
	return m
}

// Repositories собирает Store поверх in-memory таблиц
func (m *MemoryStore) Repositories() *Store {
	return &Store{
		Doctors:  m.Doctors,
		Products: m.Products,
		Tasks:    m.Tasks,
		Targets:  m.Targets,
		Users:    m.Users,
		Stock:    m.Stock,
		Tx:       NewMemoryTx(m),
	}
}

// transaction-aware locking helpers
type memTxKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(memTxKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// MemoryTable таблица с ключом K. Если assign задан, ключ выдаётся счётчиком.
type MemoryTable[T any, K comparable] struct {
	store  *MemoryStore
	next   int64
	rows   map[K]T
	key    func(*T) K
	assign func(*T, int64)
}

func newMemoryTable[T any, K comparable](store *MemoryStore, key func(*T) K, assign func(*T, int64)) *MemoryTable[T, K] {
	return &MemoryTable[T, K]{store: store, next: 1, rows: make(map[K]T), key: key, assign: assign}
}

// Ensure interfaces
var (
	_ DoctorRepository = (*MemoryTable[domain.Doctor, int64])(nil)
	_ UserRepository   = (*MemoryUsers)(nil)
	_ StockRepository  = (*MemoryStock)(nil)
)

func (t *MemoryTable[T, K]) Create(ctx context.Context, v *T) error {
	t.store.wlock(ctx)
	defer t.store.wunlock(ctx)
	return t.insert(v)
}

func (t *MemoryTable[T, K]) insert(v *T) error {
	if t.assign != nil {
		t.assign(v, t.next)
		t.next++
	} else if _, ok := t.rows[t.key(v)]; ok {
		return ErrDuplicate
	}
	t.rows[t.key(v)] = *v
	return nil
}

func (t *MemoryTable[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	t.store.rlock(ctx)
	defer t.store.runlock(ctx)
	v, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := v
	return &cp, nil
}

func (t *MemoryTable[T, K]) Update(ctx context.Context, v *T) error {
	t.store.wlock(ctx)
	defer t.store.wunlock(ctx)
	if _, ok := t.rows[t.key(v)]; !ok {
		return ErrNotFound
	}
	t.rows[t.key(v)] = *v
	return nil
}

func (t *MemoryTable[T, K]) Delete(ctx context.Context, id K) error {
	t.store.wlock(ctx)
	defer t.store.wunlock(ctx)
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// List отдаёт строки в произвольном порядке; сортирует сервис
func (t *MemoryTable[T, K]) List(ctx context.Context) ([]T, error) {
	t.store.rlock(ctx)
	defer t.store.runlock(ctx)
	out := make([]T, 0, len(t.rows))
	for _, v := range t.rows {
		out = append(out, v)
	}
	return out, nil
}

func (t *MemoryTable[T, K]) Count(ctx context.Context) (int64, error) {
	t.store.rlock(ctx)
	defer t.store.runlock(ctx)
	return int64(len(t.rows)), nil
}

// MemoryUsers пользователи с уникальным email без учёта регистра
type MemoryUsers struct {
	*MemoryTable[domain.User, int64]
}

func (mu *MemoryUsers) Create(ctx context.Context, u *domain.User) error {
	mu.store.wlock(ctx)
	defer mu.store.wunlock(ctx)
	if mu.emailTaken(u.Email, 0) {
		return ErrDuplicate
	}
	return mu.insert(u)
}

func (mu *MemoryUsers) Update(ctx context.Context, u *domain.User) error {
	mu.store.wlock(ctx)
	defer mu.store.wunlock(ctx)
	if _, ok := mu.rows[u.ID]; !ok {
		return ErrNotFound
	}
	if mu.emailTaken(u.Email, u.ID) {
		return ErrDuplicate
	}
	mu.rows[u.ID] = *u
	return nil
}

func (mu *MemoryUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	for _, u := range mu.rows {
		if strings.EqualFold(u.Email, email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mu *MemoryUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	return mu.emailTaken(email, 0), nil
}

// emailTaken caller holds the lock
func (mu *MemoryUsers) emailTaken(email string, except int64) bool {
	for id, u := range mu.rows {
		if id != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// MemoryStock журнал остатков MR
type MemoryStock struct {
	*MemoryTable[domain.MrStockItem, string]
}

// GetForUpdate внутри MemoryTx строка защищена глобальной блокировкой записи
func (ms *MemoryStock) GetForUpdate(ctx context.Context, id string) (*domain.MrStockItem, error) {
	return ms.GetByID(ctx, id)
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// nested call already owns the lock
	if isTx(ctx) {
		return fn(ctx)
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, memTxKey{}, true)
	return fn(ctx)
}
