package interfaces

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
	wardrobeErrors "github.com/sing9814/smartshopper-sub000/internal/wardrobe/errors"
)

type CategoryServiceInterface interface {
	GetCategories(ctx context.Context, userID string) ([]domain.Category, error)
	GetCustomCategories(ctx context.Context, userID string) ([]domain.FlatCustomCategory, error)
	SearchCategories(ctx context.Context, userID, query string, expanded []string) ([]domain.DisplayRow, error)
	AddCustomCategory(ctx context.Context, userID, category, subCategory string) (*domain.CustomCategoryRecord, error)
	EditCustomCategory(ctx context.Context, userID, id, newCategory, newName string) error
	DeleteCustomCategory(ctx context.Context, userID, id string) error
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *CategoryHandler {
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// GetCategories returns the merged tree used to populate selection dropdowns.
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tree, err := h.service.GetCategories(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to load categories", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	h.respondJSON(w, http.StatusOK, tree)
}

// SearchCategories filters the merged tree for the dropdown. The expanded
// query parameter carries the user's toggled-open category names.
func (h *CategoryHandler) SearchCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := r.URL.Query().Get("q")
	var expanded []string
	if raw := r.URL.Query().Get("expanded"); raw != "" {
		expanded = strings.Split(raw, ",")
	}

	rows, err := h.service.SearchCategories(r.Context(), userID, query, expanded)
	if err != nil {
		slog.Error("Failed to search categories", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to search categories")
		return
	}
	h.respondJSON(w, http.StatusOK, rows)
}

// GetCustomCategories returns the flattened list for the management screen.
func (h *CategoryHandler) GetCustomCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	flat, err := h.service.GetCustomCategories(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to load custom categories", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve custom categories")
		return
	}
	h.respondJSON(w, http.StatusOK, flat)
}

type customCategoryRequest struct {
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
}

func (h *CategoryHandler) AddCustomCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req customCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.service.AddCustomCategory(r.Context(), userID, req.Category, req.SubCategory)
	if err != nil {
		if wardrobeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Failed to add custom category", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to add custom category")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Custom category successfully created.",
		"data":    rec,
	})
}

func (h *CategoryHandler) EditCustomCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.PathValue("categoryID")
	var req customCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.EditCustomCategory(r.Context(), userID, id, req.Category, req.SubCategory); err != nil {
		if wardrobeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Failed to edit custom category", "category_id", id, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to edit custom category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Custom category successfully updated.",
	})
}

func (h *CategoryHandler) DeleteCustomCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.PathValue("categoryID")
	if err := h.service.DeleteCustomCategory(r.Context(), userID, id); err != nil {
		if wardrobeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Failed to delete custom category", "category_id", id, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete custom category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Custom category successfully deleted.",
	})
}
