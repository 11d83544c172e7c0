package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/application"
	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
	wardrobeErrors "github.com/sing9814/smartshopper-sub000/internal/wardrobe/errors"
)

type CollectionServiceInterface interface {
	GetCollections(ctx context.Context, userID string) ([]domain.Collection, error)
	CreateCollection(ctx context.Context, userID, name, description string) (*domain.Collection, error)
	UpdateCollection(ctx context.Context, userID, id, name, description string) (*domain.Collection, error)
	DeleteCollection(ctx context.Context, userID, id string) error
	AddItemsToCollections(ctx context.Context, userID string, itemIDs, collectionIDs []string) error
}

type CollectionHandler struct {
	service      CollectionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewCollectionHandler(
	service CollectionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *CollectionHandler {
	return &CollectionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type collectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CollectionHandler) GetCollections(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	collections, err := h.service.GetCollections(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to load collections", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve collections")
		return
	}
	h.respondJSON(w, http.StatusOK, collections)
}

func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req collectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.service.CreateCollection(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		if wardrobeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Failed to create collection", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create collection")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Collection successfully created.",
		"data":    c,
	})
}

func (h *CollectionHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.PathValue("collectionID")
	var req collectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.service.UpdateCollection(r.Context(), userID, id, req.Name, req.Description)
	if err != nil {
		switch {
		case wardrobeErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, application.ErrCollectionNotFound):
			h.respondError(w, http.StatusNotFound, "Collection not found")
		default:
			slog.Error("Failed to update collection", "collection_id", id, "error", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to update collection")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Collection successfully updated.",
		"data":    c,
	})
}

func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.PathValue("collectionID")
	if err := h.service.DeleteCollection(r.Context(), userID, id); err != nil {
		slog.Error("Failed to delete collection", "collection_id", id, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete collection")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Collection successfully deleted.",
	})
}

// AddItems adds purchases to one or more collections with set-union
// semantics.
func (h *CollectionHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ItemIDs       []string `json:"itemIds"`
		CollectionIDs []string `json:"collectionIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.ItemIDs) == 0 || len(req.CollectionIDs) == 0 {
		h.respondError(w, http.StatusBadRequest, "Invalid request body - items and collections required")
		return
	}

	if err := h.service.AddItemsToCollections(r.Context(), userID, req.ItemIDs, req.CollectionIDs); err != nil {
		slog.Error("Failed to add items to collections", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to add items to collections")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Items successfully added.",
	})
}
