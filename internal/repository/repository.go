package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pizzalab/pizza-service/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// UserRepository provides persistence for user records
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindStaff(ctx context.Context) ([]models.User, error)
}

// OrderRepository provides persistence for order records
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByUserID(ctx context.Context, userID int64) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	CreatedBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
}

// Store bundles the repositories and scopes operations to transactions
type Store interface {
	Users() UserRepository
	Orders() OrderRepository
	// Transact runs fn against a transaction-bound store, committing on
	// success and rolling back on error.
	Transact(ctx context.Context, fn func(Store) error) error
}

type postgresStore struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

// NewStore initializes a PostgreSQL-backed store
func NewStore(db *sqlx.DB) Store {
	return &postgresStore{db: db, ext: db}
}

func (s *postgresStore) Users() UserRepository {
	return &userRepository{ext: s.ext}
}

func (s *postgresStore) Orders() OrderRepository {
	return &orderRepository{ext: s.ext}
}

func (s *postgresStore) Transact(ctx context.Context, fn func(Store) error) error {
	if _, inTx := s.ext.(*sqlx.Tx); inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&postgresStore{db: s.db, ext: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type userRepository struct {
	ext sqlx.ExtContext
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, is_active, is_staff, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.ext.QueryRowxContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.IsActive, user.IsStaff).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, `WHERE username = $1`, username)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *userRepository) findOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, is_active, is_staff, created_at
		FROM users ` + where
	err := sqlx.GetContext(ctx, r.ext, user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (r *userRepository) FindStaff(ctx context.Context) ([]models.User, error) {
	var users []models.User
	query := `
		SELECT id, username, email, password_hash, is_active, is_staff, created_at
		FROM users
		WHERE is_staff = TRUE AND is_active = TRUE
		ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.ext, &users, query); err != nil {
		return nil, fmt.Errorf("failed to find staff users: %w", err)
	}
	return users, nil
}

type orderRepository struct {
	ext sqlx.ExtContext
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (quantity, pizza_size, order_status, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.ext.QueryRowxContext(ctx, query,
		order.Quantity, order.PizzaSize, order.Status, order.UserID).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, quantity, pizza_size, order_status, user_id, created_at, updated_at
		FROM orders
		WHERE id = $1`
	err := sqlx.GetContext(ctx, r.ext, order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return order, nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	query := `
		SELECT id, quantity, pizza_size, order_status, user_id, created_at, updated_at
		FROM orders
		ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.ext, &orders, query); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	query := `
		SELECT id, quantity, pizza_size, order_status, user_id, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.ext, &orders, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders
		SET quantity = $1, pizza_size = $2, order_status = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING updated_at`
	err := r.ext.QueryRowxContext(ctx, query,
		order.Quantity, order.PizzaSize, order.Status, order.ID).
		Scan(&order.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

func (r *orderRepository) CreatedBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	query := `
		SELECT id, quantity, pizza_size, order_status, user_id, created_at, updated_at
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.ext, &orders, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to list orders by period: %w", err)
	}
	return orders, nil
}
