package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpapi "restaurant-ordering/ordering-svc/internal/api/http"
	"restaurant-ordering/ordering-svc/internal/domain"
	"restaurant-ordering/ordering-svc/internal/mocks"
	"restaurant-ordering/ordering-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type handlerMocks struct {
	restaurants *mocks.RestaurantServiceInterface
	menu        *mocks.MenuServiceInterface
	orders      *mocks.OrderServiceInterface
}

func setupTestRouter(t *testing.T) (*mux.Router, handlerMocks) {
	m := handlerMocks{
		restaurants: mocks.NewRestaurantServiceInterface(t),
		menu:        mocks.NewMenuServiceInterface(t),
		orders:      mocks.NewOrderServiceInterface(t),
	}
	r := mux.NewRouter()
	httpapi.NewHandler(m.restaurants, m.menu, m.orders).RegisterRoutes(r)
	return r, m
}

const validOrderJSON = `{"orderNumber":"ORD-1","items":[],"subtotal":10,"tax":0,"total":10,"tableNumber":3,` +
	`"paymentMethod":"counter","paid":false,"userId":"u1","restaurantId":"rest001","phonenumber":"555","orderStatus":"Pending"}`

func TestHandlers(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		body         string
		prepareMocks func(m handlerMocks)
		expectedCode int
		expectedBody string
	}{
		{
			name:         "health",
			method:       "GET",
			path:         "/health",
			prepareMocks: func(m handlerMocks) {},
			expectedCode: http.StatusOK,
			expectedBody: `"service":"ordering-svc"`,
		},
		{
			name:   "restaurant_unknown_id_is_empty_array",
			method: "GET",
			path:   "/api/restaurant/rest999",
			prepareMocks: func(m handlerMocks) {
				m.restaurants.On("Find", mock.Anything, "rest999").Return([]domain.Restaurant{}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: "[]",
		},
		{
			name:   "restaurant_store_error",
			method: "GET",
			path:   "/api/restaurant/rest001",
			prepareMocks: func(m handlerMocks) {
				m.restaurants.On("Find", mock.Anything, "rest001").Return(nil, assert.AnError).Once()
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"message":"` + assert.AnError.Error() + `"}`,
		},
		{
			name:   "seed_restaurants",
			method: "POST",
			path:   "/api/restaurants/sample",
			prepareMocks: func(m handlerMocks) {
				m.restaurants.On("SeedSamples", mock.Anything).Return(domain.SampleRestaurants(), nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"message":"Sample restaurants added successfully"`,
		},
		{
			name:   "seed_restaurants_duplicate",
			method: "POST",
			path:   "/api/restaurants/sample",
			prepareMocks: func(m handlerMocks) {
				m.restaurants.On("SeedSamples", mock.Anything).Return(nil, fmt.Errorf("%w: id", domain.ErrDuplicateKey)).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:   "table_qrcode",
			method: "GET",
			path:   "/api/restaurant/rest001/tables/4/qrcode",
			prepareMocks: func(m handlerMocks) {
				m.restaurants.On("TableQRCode", mock.Anything, "rest001", 4).Return([]byte("\x89PNG"), nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: "\x89PNG",
		},
		{
			name:         "table_qrcode_bad_table",
			method:       "GET",
			path:         "/api/restaurant/rest001/tables/abc/qrcode",
			prepareMocks: func(m handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "table_qrcode_unknown_restaurant",
			method: "GET",
			path:   "/api/restaurant/nope/tables/4/qrcode",
			prepareMocks: func(m handlerMocks) {
				m.restaurants.On("TableQRCode", mock.Anything, "nope", 4).Return(nil, domain.ErrNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "menu_by_restaurant",
			method: "GET",
			path:   "/api/menu/rest001",
			prepareMocks: func(m handlerMocks) {
				m.menu.On("ListByRestaurant", mock.Anything, "rest001").
					Return([]domain.MenuItem{{RestaurantID: "rest001", Name: "Caesar Salad", Category: "Salad", Price: 7.99}}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"name":"Caesar Salad"`,
		},
		{
			name:   "menu_categories_not_shadowed",
			method: "GET",
			path:   "/api/menu/categories/rest001",
			prepareMocks: func(m handlerMocks) {
				m.menu.On("Categories", mock.Anything, "rest001").Return([]string{"Pizza", "Salad"}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `["Pizza","Salad"]`,
		},
		{
			name:   "menu_by_category",
			method: "GET",
			path:   "/api/menu/rest001/Pizza",
			prepareMocks: func(m handlerMocks) {
				m.menu.On("ListByCategory", mock.Anything, "rest001", "Pizza").Return([]domain.MenuItem{}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: "[]",
		},
		{
			name:   "menu_store_error",
			method: "GET",
			path:   "/api/menu/rest001",
			prepareMocks: func(m handlerMocks) {
				m.menu.On("ListByRestaurant", mock.Anything, "rest001").Return(nil, assert.AnError).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:   "seed_menu_without_restaurants",
			method: "POST",
			path:   "/api/menu/sample",
			prepareMocks: func(m handlerMocks) {
				m.menu.On("SeedSamples", mock.Anything).Return(nil, service.ErrNoRestaurants).Once()
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"No restaurants found. Please add sample restaurants first."}`,
		},
		{
			name:   "seed_menu_store_error",
			method: "POST",
			path:   "/api/menu/sample",
			prepareMocks: func(m handlerMocks) {
				m.menu.On("SeedSamples", mock.Anything).Return(nil, assert.AnError).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:   "seed_menu",
			method: "POST",
			path:   "/api/menu/sample",
			prepareMocks: func(m handlerMocks) {
				m.menu.On("SeedSamples", mock.Anything).Return(domain.SampleMenu(domain.SampleRestaurants()[:1]), nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"menuItems":[`,
		},
		{
			name:         "create_order_bad_json",
			method:       "POST",
			path:         "/api/orders",
			body:         `{bad json}`,
			prepareMocks: func(m handlerMocks) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `"message":"Invalid JSON format`,
		},
		{
			name:   "create_order_validation_error",
			method: "POST",
			path:   "/api/orders",
			body:   `{"orderNumber":"ORD-1"}`,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).
					Return(fmt.Errorf("%w: subtotal is required", domain.ErrValidation)).Once()
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: "subtotal is required",
		},
		{
			name:   "create_order_duplicate",
			method: "POST",
			path:   "/api/orders",
			body:   validOrderJSON,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateKey).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "create_order",
			method: "POST",
			path:   "/api/orders",
			body:   validOrderJSON,
			prepareMocks: func(m handlerMocks) {
				m.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
					return o.OrderNumber == "ORD-1" && *o.TableNumber == 3 && *o.Tax == 0
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.Order).InternalID = "665f1c2e9b1d8a0001a1b2c3"
				}).Return(nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"_id":"665f1c2e9b1d8a0001a1b2c3"`,
		},
		{
			name:   "pending_orders",
			method: "GET",
			path:   "/api/orders/rest001",
			prepareMocks: func(m handlerMocks) {
				m.orders.On("ListPending", mock.Anything, "rest001").Return([]domain.Order{*sampleOrder("ORD-1")}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"orderNumber":"ORD-1"`,
		},
		{
			name:   "pending_orders_store_error",
			method: "GET",
			path:   "/api/orders/rest001",
			prepareMocks: func(m handlerMocks) {
				m.orders.On("ListPending", mock.Anything, "rest001").Return(nil, assert.AnError).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:   "complete_order",
			method: "PATCH",
			path:   "/api/orders/665f1c2e9b1d8a0001a1b2c3/complete",
			prepareMocks: func(m handlerMocks) {
				done := sampleOrder("ORD-1")
				done.OrderStatus = domain.OrderStatusCompleted
				m.orders.On("Complete", mock.Anything, "665f1c2e9b1d8a0001a1b2c3").Return(done, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"orderStatus":"Completed"`,
		},
		{
			name:   "complete_order_not_found",
			method: "PATCH",
			path:   "/api/orders/665f1c2e9b1d8a0001a1b2c3/complete",
			prepareMocks: func(m handlerMocks) {
				m.orders.On("Complete", mock.Anything, "665f1c2e9b1d8a0001a1b2c3").
					Return(nil, fmt.Errorf("order: %w", domain.ErrNotFound)).Once()
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Order not found"}`,
		},
		{
			name:   "complete_order_malformed_id",
			method: "PATCH",
			path:   "/api/orders/not-an-id/complete",
			prepareMocks: func(m handlerMocks) {
				m.orders.On("Complete", mock.Anything, "not-an-id").
					Return(nil, fmt.Errorf("%w: invalid order id", domain.ErrValidation)).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "get_order_not_found",
			method: "GET",
			path:   "/api/order/665f1c2e9b1d8a0001a1b2c3",
			prepareMocks: func(m handlerMocks) {
				m.orders.On("Get", mock.Anything, "665f1c2e9b1d8a0001a1b2c3").Return(nil, domain.ErrNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "get_order_store_error",
			method: "GET",
			path:   "/api/order/665f1c2e9b1d8a0001a1b2c3",
			prepareMocks: func(m handlerMocks) {
				m.orders.On("Get", mock.Anything, "665f1c2e9b1d8a0001a1b2c3").Return(nil, assert.AnError).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, m := setupTestRouter(t)
			testCase.prepareMocks(m)

			req := httptest.NewRequest(testCase.method, testCase.path, bytes.NewBufferString(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandlers_ErrorEnvelope(t *testing.T) {
	router, m := setupTestRouter(t)
	m.orders.On("ListPending", mock.Anything, "rest001").Return(nil, assert.AnError).Once()

	req := httptest.NewRequest("GET", "/api/orders/rest001", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	var body map[string]string
	assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, map[string]string{"message": assert.AnError.Error()}, body)
}

func TestNewRouter_SetsRequestIDAndCORS(t *testing.T) {
	_, m := setupTestRouter(t)
	m.restaurants.On("Find", mock.Anything, "rest001").Return([]domain.Restaurant{}, nil).Once()
	handler := httpapi.NewRouter(httpapi.NewHandler(m.restaurants, m.menu, m.orders))

	req := httptest.NewRequest("GET", "/api/restaurant/rest001", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("X-Request-ID", "req-123")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "req-123", recorder.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouter_PreflightAllowsOrderMethods(t *testing.T) {
	_, m := setupTestRouter(t)
	handler := httpapi.NewRouter(httpapi.NewHandler(m.restaurants, m.menu, m.orders))

	tests := []struct {
		name   string
		path   string
		method string
	}{
		{name: "complete_order", path: "/api/orders/665f1c2e9b1d8a0001a1b2c3/complete", method: "PATCH"},
		{name: "create_order", path: "/api/orders", method: "POST"},
		{name: "menu", path: "/api/menu/rest001", method: "GET"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, testCase.path, nil)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", testCase.method)
			req.Header.Set("Access-Control-Request-Headers", "content-type")
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), testCase.method)
		})
	}
}

func TestCreateOrder_RejectsOversizedBody(t *testing.T) {
	router, _ := setupTestRouter(t)

	oversized := `{"orderNumber":"` + strings.Repeat("x", 101<<10) + `"}`
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(oversized))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "request body exceeds 102400 bytes")
}
