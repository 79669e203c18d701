package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"restaurant-ordering/ordering-svc/internal/domain"
	"restaurant-ordering/ordering-svc/internal/service"

	"github.com/gorilla/mux"
)

// maxOrderBodyBytes caps POST /api/orders bodies at 100kb.
const maxOrderBodyBytes = 100 << 10

type Handler struct {
	Restaurants service.RestaurantServiceInterface
	Menu        service.MenuServiceInterface
	Orders      service.OrderServiceInterface
}

func NewHandler(restSvc service.RestaurantServiceInterface, menuSvc service.MenuServiceInterface, orderSvc service.OrderServiceInterface) *Handler {
	return &Handler{
		Restaurants: restSvc,
		Menu:        menuSvc,
		Orders:      orderSvc,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/restaurant/{restaurantId}", h.getRestaurant).Methods("GET")
	api.HandleFunc("/restaurant/{restaurantId}/tables/{tableNumber}/qrcode", h.getTableQRCode).Methods("GET")
	api.HandleFunc("/restaurants/sample", h.seedRestaurants).Methods("POST")

	// categories must be registered ahead of the {restaurantId}/{category} pattern.
	api.HandleFunc("/menu/categories/{restaurantId}", h.getMenuCategories).Methods("GET")
	api.HandleFunc("/menu/sample", h.seedMenu).Methods("POST")
	api.HandleFunc("/menu/{restaurantId}", h.getMenu).Methods("GET")
	api.HandleFunc("/menu/{restaurantId}/{category}", h.getMenuByCategory).Methods("GET")

	api.HandleFunc("/orders", h.createOrder).Methods("POST")
	api.HandleFunc("/orders/{restaurantId}", h.getPendingOrders).Methods("GET")
	api.HandleFunc("/orders/{id}/complete", h.completeOrder).Methods("PATCH")
	api.HandleFunc("/order/{id}", h.getOrder).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "ordering-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.Find(r.Context(), mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) seedRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.SeedSamples(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Sample restaurants added successfully",
		"restaurants": restaurants,
	})
}

func (h *Handler) getTableQRCode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	table, err := strconv.Atoi(vars["tableNumber"])
	if err != nil || table <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid table number %q", vars["tableNumber"]))
		return
	}

	png, err := h.Restaurants.TableQRCode(r.Context(), vars["restaurantId"], table)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, errors.New("Restaurant not found"))
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.ListByRestaurant(r.Context(), mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuByCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	items, err := h.Menu.ListByCategory(r.Context(), vars["restaurantId"], vars["category"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.Categories(r.Context(), mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) seedMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.SeedSamples(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoRestaurants) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Sample menu items added successfully",
		"menuItems": items,
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	body := http.MaxBytesReader(w, r.Body, maxOrderBodyBytes)
	if err := json.NewDecoder(body).Decode(&order); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("Invalid JSON format: %w", err))
		return
	}

	if err := h.Orders.Create(r.Context(), &order); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getPendingOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListPending(r.Context(), mux.Vars(r)["restaurantId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Complete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, errors.New("Order not found"))
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, errors.New("Order not found"))
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, order)
}
