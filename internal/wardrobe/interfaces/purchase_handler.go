package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/application"
	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/domain"
	wardrobeErrors "github.com/sing9814/smartshopper-sub000/internal/wardrobe/errors"
)

type PurchaseServiceInterface interface {
	GetPurchases(ctx context.Context, userID string) ([]domain.Purchase, error)
	CreatePurchase(ctx context.Context, userID string, in domain.PurchaseInput) (*domain.Purchase, error)
	UpdatePurchase(ctx context.Context, userID, key string, in domain.PurchaseInput) (*domain.Purchase, error)
	DeletePurchase(ctx context.Context, userID, key string) error
	BulkDeletePurchases(ctx context.Context, userID string, keys []string) error
	RecordWear(ctx context.Context, userID, key string, at time.Time) (*domain.Purchase, error)
}

type PurchaseHandler struct {
	service      PurchaseServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewPurchaseHandler(
	service PurchaseServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *PurchaseHandler {
	return &PurchaseHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// purchaseResponse augments a purchase with its derived display fields.
type purchaseResponse struct {
	domain.Purchase
	PaidPriceDisplay    string `json:"paidPriceDisplay"`
	RegularPriceDisplay string `json:"regularPriceDisplay"`
	WearCount           int    `json:"wearCount"`
	WearLevel           string `json:"wearLevel"`
	CostPerWear         string `json:"costPerWear"`
}

func toPurchaseResponse(p domain.Purchase) purchaseResponse {
	cpw := domain.CostPerWear(p.PaidPrice, p.WearCount())
	return purchaseResponse{
		Purchase:            p,
		PaidPriceDisplay:    domain.ToDollars(&p.PaidPrice),
		RegularPriceDisplay: domain.ToDollars(p.RegularPrice),
		WearCount:           p.WearCount(),
		WearLevel:           domain.WearLevel(p.WearCount()),
		CostPerWear:         domain.ToDollars(&cpw),
	}
}

func (h *PurchaseHandler) GetPurchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	purchases, err := h.service.GetPurchases(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to load purchases", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve purchases")
		return
	}

	out := make([]purchaseResponse, len(purchases))
	for i, p := range purchases {
		out[i] = toPurchaseResponse(p)
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in domain.PurchaseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.service.CreatePurchase(r.Context(), userID, in)
	if err != nil {
		if wardrobeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Failed to create purchase", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create purchase")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Purchase successfully created.",
		"data":    toPurchaseResponse(*p),
	})
}

func (h *PurchaseHandler) UpdatePurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	key := r.PathValue("purchaseID")
	var in domain.PurchaseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.service.UpdatePurchase(r.Context(), userID, key, in)
	if err != nil {
		switch {
		case wardrobeErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, application.ErrPurchaseNotFound):
			h.respondError(w, http.StatusNotFound, "Purchase not found")
		default:
			slog.Error("Failed to update purchase", "purchase_id", key, "error", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to update purchase")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Purchase successfully updated.",
		"data":    toPurchaseResponse(*p),
	})
}

func (h *PurchaseHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	key := r.PathValue("purchaseID")
	if err := h.service.DeletePurchase(r.Context(), userID, key); err != nil {
		slog.Error("Failed to delete purchase", "purchase_id", key, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete purchase")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Purchase successfully deleted.",
	})
}

func (h *PurchaseHandler) BulkDeletePurchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Keys []string `json:"keys"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Keys) == 0 {
		h.respondError(w, http.StatusBadRequest, "Invalid request body - no keys provided")
		return
	}

	if err := h.service.BulkDeletePurchases(r.Context(), userID, req.Keys); err != nil {
		slog.Error("Failed to bulk delete purchases", "count", len(req.Keys), "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete purchases")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Purchases successfully deleted.",
	})
}

func (h *PurchaseHandler) RecordWear(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	key := r.PathValue("purchaseID")
	var req struct {
		WornAt time.Time `json:"wornAt"`
	}
	// The body is optional; an empty body records a wear at the current time.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.service.RecordWear(r.Context(), userID, key, req.WornAt)
	if err != nil {
		if errors.Is(err, application.ErrPurchaseNotFound) {
			h.respondError(w, http.StatusNotFound, "Purchase not found")
			return
		}
		slog.Error("Failed to record wear", "purchase_id", key, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to record wear")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Wear recorded.",
		"data":    toPurchaseResponse(*p),
	})
}
