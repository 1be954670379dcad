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

// ManagerService определяет интерфейс для сервиса менеджеров
type ManagerService interface {
	CreateManager(ctx context.Context, manager *domain.Manager) error
	GetManager(ctx context.Context, id uuid.UUID) (*domain.Manager, error)
	UpdateManager(ctx context.Context, manager *domain.Manager) error
	DeleteManager(ctx context.Context, id uuid.UUID) error
	ListManagers(ctx context.Context, limit, offset int) ([]*domain.Manager, error)
}

// ManagerHandler обрабатывает запросы по менеджерам
type ManagerHandler struct {
	service ManagerService
	logger  logger.Logger
}

// NewManagerHandler создает новый handler
func NewManagerHandler(service ManagerService, logger logger.Logger) *ManagerHandler {
	return &ManagerHandler{service: service, logger: logger}
}

// Create создает нового менеджера
// POST /api/v1/managers
func (h *ManagerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var manager domain.Manager
	if err := json.NewDecoder(r.Body).Decode(&manager); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateManager(r.Context(), &manager); err != nil {
		if errors.Is(err, domain.ErrInvalidManagerData) {
			respondError(w, http.StatusUnprocessableEntity, "Invalid manager data")
			return
		}
		h.logger.Error("Failed to create manager", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to create manager")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    manager,
	})
}

// Get возвращает менеджера по ID
// GET /api/v1/managers/{id}
func (h *ManagerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid manager ID")
		return
	}

	manager, err := h.service.GetManager(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrManagerNotFound) {
			respondError(w, http.StatusNotFound, "Manager not found")
			return
		}
		h.logger.Error("Failed to get manager", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get manager")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    manager,
	})
}

// Update обновляет данные менеджера
// PUT /api/v1/managers/{id}
func (h *ManagerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid manager ID")
		return
	}

	var manager domain.Manager
	if err := json.NewDecoder(r.Body).Decode(&manager); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	manager.ID = id

	if err := h.service.UpdateManager(r.Context(), &manager); err != nil {
		switch {
		case errors.Is(err, domain.ErrManagerNotFound):
			respondError(w, http.StatusNotFound, "Manager not found")
		case errors.Is(err, domain.ErrInvalidManagerData):
			respondError(w, http.StatusUnprocessableEntity, "Invalid manager data")
		default:
			h.logger.Error("Failed to update manager", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to update manager")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    manager,
	})
}

// Delete удаляет менеджера
// DELETE /api/v1/managers/{id}
func (h *ManagerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid manager ID")
		return
	}

	if err := h.service.DeleteManager(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrManagerNotFound) {
			respondError(w, http.StatusNotFound, "Manager not found")
			return
		}
		h.logger.Error("Failed to delete manager", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete manager")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// List возвращает список менеджеров
// GET /api/v1/managers
func (h *ManagerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := getIntQuery(r, "limit", 0)
	offset := getIntQuery(r, "offset", 0)

	managers, err := h.service.ListManagers(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list managers", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list managers")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    managers,
	})
}
