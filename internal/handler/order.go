package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/pizzalab/pizza-service/internal/middleware"
	"github.com/pizzalab/pizza-service/internal/models"
	"github.com/pizzalab/pizza-service/internal/service"
)

// OrderHandler serves the order endpoints. All of them run behind the
// RequireAccess middleware.
type OrderHandler struct {
	orders *service.OrderService
	log    *logrus.Logger
}

// NewOrderHandler initializes a new order handler
func NewOrderHandler(orders *service.OrderService, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// OrderRequest is the payload for placing or updating an order
type OrderRequest struct {
	Quantity  int              `json:"quantity"`
	PizzaSize models.PizzaSize `json:"pizza_size"`
}

// Validate checks the quantity and size category
func (r OrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&r.PizzaSize, validation.Required,
			validation.In(models.SizeSmall, models.SizeMedium, models.SizeLarge, models.SizeExtraLarge)),
	)
}

// ListAll returns every order. Staff only.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, service.ErrUnauthenticated)
		return
	}

	orders, err := h.orders.ListAll(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// ListMine returns the caller's orders
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, service.ErrUnauthenticated)
		return
	}

	orders, err := h.orders.ListMine(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Create places a new order for the caller
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, service.ErrUnauthenticated)
		return
	}

	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	order, err := h.orders.Create(r.Context(), actor, req.Quantity, req.PizzaSize)
	if err != nil {
		h.log.Errorf("Failed to create order: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"pizza_size": order.PizzaSize,
		"quantity":   order.Quantity,
	})
}

// Get returns a single order by id
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, service.ErrUnauthenticated)
		return
	}

	id, err := orderID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}

	order, err := h.orders.Get(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Update changes an order's quantity and size
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, service.ErrUnauthenticated)
		return
	}

	id, err := orderID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}

	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	order, err := h.orders.Update(r.Context(), actor, id, req.Quantity, req.PizzaSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Export returns all orders as XML. Staff only.
func (h *OrderHandler) Export(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, service.ErrUnauthenticated)
		return
	}

	out, err := h.orders.ExportAll(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func orderID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["order_id"], 10, 64)
}
