package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/warehouse"
)

func warehouseRouter(svc warehouse.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/items", HandleListItems(svc))
	r.Post("/items", HandleCreateItem(svc))
	r.Get("/items/{id}", HandleGetItem(svc))
	r.Put("/items/{id}", HandleUpdateItem(svc))
	r.Delete("/items/{id}", HandleDeleteItem(svc))
	return r
}

func TestHandleCreateItem(t *testing.T) {
	svc := new(MockWarehouseService)
	svc.On("CreateItem", mock.Anything, mock.AnythingOfType("warehouse.CreateItemRequest")).
		Return(&domain.ItemView{Item: domain.Item{ID: "item-1", Name: "Rope"}}, nil)

	body := `{"name":"Rope","category":"other","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	warehouseRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandleCreateItemBadCategory(t *testing.T) {
	svc := new(MockWarehouseService)

	body := `{"name":"Rope","category":"junk","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	warehouseRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
}

func TestHandleGetItemNotFound(t *testing.T) {
	svc := new(MockWarehouseService)
	svc.On("GetItem", mock.Anything, "missing").Return(nil, domain.ErrItemNotFound)

	req := httptest.NewRequest(http.MethodGet, "/items/missing", nil)
	rec := httptest.NewRecorder()
	warehouseRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDeleteItem(t *testing.T) {
	svc := new(MockWarehouseService)
	svc.On("DeleteItem", mock.Anything, "item-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/items/item-1", nil)
	rec := httptest.NewRecorder()
	warehouseRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
