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

// DriverService определяет интерфейс для CRUD водителей
type DriverService interface {
	CreateDriver(ctx context.Context, driver *domain.Driver) error
	GetDriver(ctx context.Context, id uuid.UUID) (*domain.Driver, error)
	UpdateDriver(ctx context.Context, driver *domain.Driver) error
	DeleteDriver(ctx context.Context, id uuid.UUID) error
	ListDrivers(ctx context.Context, limit, offset int) ([]*domain.Driver, error)
}

// DriverAssigner определяет интерфейс закрепления водителей за тягачами
type DriverAssigner interface {
	AssignDriver(ctx context.Context, driverID, truckID uuid.UUID) error
	UnassignDriver(ctx context.Context, driverID uuid.UUID) error
}

// DriverHandler обрабатывает запросы по водителям
type DriverHandler struct {
	service  DriverService
	assigner DriverAssigner
	logger   logger.Logger
}

// NewDriverHandler создает новый handler
func NewDriverHandler(service DriverService, assigner DriverAssigner, logger logger.Logger) *DriverHandler {
	return &DriverHandler{service: service, assigner: assigner, logger: logger}
}

// Create создает нового водителя
// POST /api/v1/drivers
func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var driver domain.Driver
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateDriver(r.Context(), &driver); err != nil {
		if errors.Is(err, domain.ErrInvalidDriverData) {
			respondError(w, http.StatusUnprocessableEntity, "Invalid driver data")
			return
		}
		h.logger.Error("Failed to create driver", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to create driver")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    driver,
	})
}

// Get возвращает водителя по ID
// GET /api/v1/drivers/{id}
func (h *DriverHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid driver ID")
		return
	}

	driver, err := h.service.GetDriver(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDriverNotFound) {
			respondError(w, http.StatusNotFound, "Driver not found")
			return
		}
		h.logger.Error("Failed to get driver", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get driver")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    driver,
	})
}

// Update обновляет данные водителя
// PUT /api/v1/drivers/{id}
func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid driver ID")
		return
	}

	var driver domain.Driver
	if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	driver.ID = id

	if err := h.service.UpdateDriver(r.Context(), &driver); err != nil {
		switch {
		case errors.Is(err, domain.ErrDriverNotFound):
			respondError(w, http.StatusNotFound, "Driver not found")
		case errors.Is(err, domain.ErrInvalidDriverData):
			respondError(w, http.StatusUnprocessableEntity, "Invalid driver data")
		default:
			h.logger.Error("Failed to update driver", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to update driver")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    driver,
	})
}

// Delete удаляет водителя
// DELETE /api/v1/drivers/{id}
func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid driver ID")
		return
	}

	if err := h.service.DeleteDriver(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrDriverNotFound) {
			respondError(w, http.StatusNotFound, "Driver not found")
			return
		}
		h.logger.Error("Failed to delete driver", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete driver")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// List возвращает список водителей
// GET /api/v1/drivers
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := getIntQuery(r, "limit", 0)
	offset := getIntQuery(r, "offset", 0)

	drivers, err := h.service.ListDrivers(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list drivers", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list drivers")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    drivers,
	})
}

// Assign закрепляет водителя за тягачом
// POST /api/v1/drivers/{id}/assign
func (h *DriverHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid driver ID")
		return
	}

	var req struct {
		TruckID uuid.UUID `json:"truck_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TruckID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.assigner.AssignDriver(r.Context(), id, req.TruckID); err != nil {
		switch {
		case errors.Is(err, domain.ErrDriverNotFound):
			respondError(w, http.StatusNotFound, "Driver not found")
		case errors.Is(err, domain.ErrTruckNotFound):
			respondError(w, http.StatusNotFound, "Truck not found")
		default:
			h.logger.Error("Failed to assign driver", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to assign driver")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// Unassign снимает закрепление водителя
// POST /api/v1/drivers/{id}/unassign
func (h *DriverHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid driver ID")
		return
	}

	if err := h.assigner.UnassignDriver(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrDriverNotFound) {
			respondError(w, http.StatusNotFound, "Driver not found")
			return
		}
		h.logger.Error("Failed to unassign driver", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to unassign driver")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
