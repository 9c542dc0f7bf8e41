package repository

import (
	"context"
	"sync"
	"time"

	"github.com/pizzalab/pizza-service/internal/models"
)

// MemoryStore is an in-memory Store used by tests and local tooling.
// Transact runs the function directly; there is no rollback.
type MemoryStore struct {
	mu          sync.Mutex
	users       map[int64]models.User
	orders      map[int64]models.Order
	nextUserID  int64
	nextOrderID int64
}

// NewMemoryStore initializes an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[int64]models.User),
		orders:      make(map[int64]models.Order),
		nextUserID:  1,
		nextOrderID: 1,
	}
}

func (s *MemoryStore) Users() UserRepository   { return (*memoryUsers)(s) }
func (s *MemoryStore) Orders() OrderRepository { return (*memoryOrders)(s) }

func (s *MemoryStore) Transact(ctx context.Context, fn func(Store) error) error {
	return fn(s)
}

type memoryUsers MemoryStore

func (r *memoryUsers) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextUserID
	r.nextUserID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r *memoryUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *memoryUsers) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r *memoryUsers) find(match func(models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) FindStaff(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var staff []models.User
	for id := int64(1); id < r.nextUserID; id++ {
		if u, ok := r.users[id]; ok && u.IsStaff && u.IsActive {
			staff = append(staff, u)
		}
	}
	return staff, nil
}

type memoryOrders MemoryStore

func (r *memoryOrders) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = r.nextOrderID
	r.nextOrderID++
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders[order.ID] = *order
	return nil
}

func (r *memoryOrders) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := order
	return &found, nil
}

func (r *memoryOrders) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.filter(func(models.Order) bool { return true })
}

func (r *memoryOrders) FindByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.UserID == userID })
}

func (r *memoryOrders) Update(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return ErrNotFound
	}
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

func (r *memoryOrders) CreatedBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool {
		return !o.CreatedAt.Before(from) && o.CreatedAt.Before(to)
	})
}

func (r *memoryOrders) filter(match func(models.Order) bool) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for id := int64(1); id < r.nextOrderID; id++ {
		if o, ok := r.orders[id]; ok && match(o) {
			out = append(out, o)
		}
	}
	return out, nil
}
