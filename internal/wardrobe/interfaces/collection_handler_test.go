package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
)

func TestGetCollections_Success(t *testing.T) {
	mockService := &MockCollectionService{
		collections: []domain.Collection{
			{ID: "c-1", Name: "Summer", Items: []string{"p-1", "p-2"}},
		},
	}

	req := authed(httptest.NewRequest(http.MethodGet, "/collections", nil))
	w := httptest.NewRecorder()

	handler := NewCollectionHandler(mockService, respondJSON, respondError)
	handler.GetCollections(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var out []domain.Collection
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, []string{"p-1", "p-2"}, out[0].Items)
}

func TestGetCollections_Unauthorized(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/collections", nil)
	w := httptest.NewRecorder()

	handler := NewCollectionHandler(&MockCollectionService{}, respondJSON, respondError)
	handler.GetCollections(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestCreateCollection_Success(t *testing.T) {
	body := strings.NewReader(`{"name":"Summer","description":"Warm weather fits"}`)
	req := authed(httptest.NewRequest(http.MethodPost, "/collections", body))
	w := httptest.NewRecorder()

	mockService := &MockCollectionService{}
	handler := NewCollectionHandler(mockService, respondJSON, respondError)
	handler.CreateCollection(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	require.Len(t, mockService.collections, 1)
	assert.Equal(t, "Summer", mockService.collections[0].Name)
	assert.Equal(t, "Warm weather fits", mockService.collections[0].Description)
}

func TestCreateCollection_ValidationError(t *testing.T) {
	body := strings.NewReader(`{"name":"!!!"}`)
	req := authed(httptest.NewRequest(http.MethodPost, "/collections", body))
	w := httptest.NewRecorder()

	handler := NewCollectionHandler(&MockCollectionService{invalid: true}, respondJSON, respondError)
	handler.CreateCollection(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestUpdateCollection_NotFound(t *testing.T) {
	body := strings.NewReader(`{"name":"Summer"}`)
	req := authed(httptest.NewRequest(http.MethodPut, "/collections/missing", body))
	req.SetPathValue("collectionID", "missing")
	w := httptest.NewRecorder()

	handler := NewCollectionHandler(&MockCollectionService{notFound: true}, respondJSON, respondError)
	handler.UpdateCollection(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestAddItems_Success(t *testing.T) {
	body := strings.NewReader(`{"itemIds":["p-1","p-2"],"collectionIds":["c-1"]}`)
	req := authed(httptest.NewRequest(http.MethodPost, "/collections/items", body))
	w := httptest.NewRecorder()

	mockService := &MockCollectionService{}
	handler := NewCollectionHandler(mockService, respondJSON, respondError)
	handler.AddItems(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, []string{"p-1", "p-2"}, mockService.addedItems)
	assert.Equal(t, []string{"c-1"}, mockService.addedCollections)
}

func TestAddItems_MissingCollections(t *testing.T) {
	body := strings.NewReader(`{"itemIds":["p-1"],"collectionIds":[]}`)
	req := authed(httptest.NewRequest(http.MethodPost, "/collections/items", body))
	w := httptest.NewRecorder()

	mockService := &MockCollectionService{}
	handler := NewCollectionHandler(mockService, respondJSON, respondError)
	handler.AddItems(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	assert.Empty(t, mockService.addedItems)
}

func TestDeleteCollection_StoreError(t *testing.T) {
	req := authed(httptest.NewRequest(http.MethodDelete, "/collections/c-1", nil))
	req.SetPathValue("collectionID", "c-1")
	w := httptest.NewRecorder()

	handler := NewCollectionHandler(&MockCollectionService{shouldFail: true}, respondJSON, respondError)
	handler.DeleteCollection(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)
}
