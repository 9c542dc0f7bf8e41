package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/pizzalab/pizza-service/internal/export"
	"github.com/pizzalab/pizza-service/internal/models"
	"github.com/pizzalab/pizza-service/internal/repository"
)

// OrderService handles order placement, retrieval and updates. Every
// operation takes the already-authenticated acting user.
type OrderService struct {
	store repository.Store
	log   *logrus.Logger
}

// NewOrderService initializes a new order service
func NewOrderService(store repository.Store, log *logrus.Logger) *OrderService {
	return &OrderService{store: store, log: log}
}

// ListAll returns every order in the store. Staff only.
func (s *OrderService) ListAll(ctx context.Context, actor *models.User) ([]models.Order, error) {
	if err := RequireStaff(actor); err != nil {
		return nil, err
	}
	return s.store.Orders().FindAll(ctx)
}

// ListMine returns the acting user's own orders
func (s *OrderService) ListMine(ctx context.Context, actor *models.User) ([]models.Order, error) {
	return s.store.Orders().FindByUserID(ctx, actor.ID)
}

// Create places a new pending order owned by the acting user
func (s *OrderService) Create(ctx context.Context, actor *models.User, quantity int, size models.PizzaSize) (*models.Order, error) {
	order := &models.Order{
		Quantity:  quantity,
		PizzaSize: size,
		Status:    models.StatusPending,
		UserID:    actor.ID,
	}

	err := s.store.Transact(ctx, func(tx repository.Store) error {
		return tx.Orders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Order %d placed by user %d", order.ID, actor.ID)
	return order, nil
}

// Get returns a single order. Readable by its owner or by staff.
func (s *OrderService) Get(ctx context.Context, actor *models.User, id int64) (*models.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := RequireOwnerOrStaff(actor, order.UserID); err != nil {
		return nil, err
	}
	return order, nil
}

// Update changes an order's quantity and size. Owner only; staff get no
// override on writes.
func (s *OrderService) Update(ctx context.Context, actor *models.User, id int64, quantity int, size models.PizzaSize) (*models.Order, error) {
	var order *models.Order

	err := s.store.Transact(ctx, func(tx repository.Store) error {
		found, err := tx.Orders().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := RequireOwner(actor, found.UserID); err != nil {
			return err
		}

		found.Quantity = quantity
		found.PizzaSize = size
		if err := tx.Orders().Update(ctx, found); err != nil {
			return err
		}

		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Order %d updated by user %d", order.ID, actor.ID)
	return order, nil
}

// ExportAll renders every order as an XML document. Staff only.
func (s *OrderService) ExportAll(ctx context.Context, actor *models.User) ([]byte, error) {
	if err := RequireStaff(actor); err != nil {
		return nil, err
	}

	orders, err := s.store.Orders().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return export.OrdersXML(orders)
}
