package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/pkg/logger"
)

// OwnerService определяет интерфейс для сервиса собственников
type OwnerService interface {
	CreateOwner(ctx context.Context, owner *domain.Owner) error
	GetOwner(ctx context.Context, id uuid.UUID) (*domain.Owner, error)
	UpdateOwner(ctx context.Context, owner *domain.Owner) error
	DeleteOwner(ctx context.Context, id uuid.UUID) error
	ListOwners(ctx context.Context, limit, offset int) ([]*domain.Owner, error)
}

// OwnerHandler обрабатывает запросы по собственникам
type OwnerHandler struct {
	service OwnerService
	logger  logger.Logger
}

// NewOwnerHandler создает новый handler
func NewOwnerHandler(service OwnerService, logger logger.Logger) *OwnerHandler {
	return &OwnerHandler{service: service, logger: logger}
}

// Create создает нового собственника
// POST /api/v1/owners
func (h *OwnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var owner domain.Owner
	if err := json.NewDecoder(r.Body).Decode(&owner); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateOwner(r.Context(), &owner); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOwnerData):
			respondError(w, http.StatusUnprocessableEntity, "Invalid owner data")
		case errors.Is(err, domain.ErrOwnerAlreadyExists):
			respondError(w, http.StatusConflict, "Owner already exists")
		default:
			h.logger.Error("Failed to create owner", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to create owner")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    owner,
	})
}

// Get возвращает собственника по ID
// GET /api/v1/owners/{id}
func (h *OwnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid owner ID")
		return
	}

	owner, err := h.service.GetOwner(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOwnerNotFound) {
			respondError(w, http.StatusNotFound, "Owner not found")
			return
		}
		h.logger.Error("Failed to get owner", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get owner")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    owner,
	})
}

// Update обновляет данные собственника
// PUT /api/v1/owners/{id}
func (h *OwnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid owner ID")
		return
	}

	var owner domain.Owner
	if err := json.NewDecoder(r.Body).Decode(&owner); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	owner.ID = id

	if err := h.service.UpdateOwner(r.Context(), &owner); err != nil {
		switch {
		case errors.Is(err, domain.ErrOwnerNotFound):
			respondError(w, http.StatusNotFound, "Owner not found")
		case errors.Is(err, domain.ErrInvalidOwnerData):
			respondError(w, http.StatusUnprocessableEntity, "Invalid owner data")
		default:
			h.logger.Error("Failed to update owner", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to update owner")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    owner,
	})
}

// Delete удаляет собственника
// DELETE /api/v1/owners/{id}
func (h *OwnerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid owner ID")
		return
	}

	if err := h.service.DeleteOwner(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrOwnerNotFound) {
			respondError(w, http.StatusNotFound, "Owner not found")
			return
		}
		h.logger.Error("Failed to delete owner", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete owner")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// List возвращает список собственников
// GET /api/v1/owners
func (h *OwnerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := getIntQuery(r, "limit", 0)
	offset := getIntQuery(r, "offset", 0)

	owners, err := h.service.ListOwners(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list owners", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list owners")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    owners,
	})
}
