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

// TruckService определяет интерфейс для CRUD тягачей
type TruckService interface {
	CreateTruck(ctx context.Context, truck *domain.Truck) error
	GetTruck(ctx context.Context, id uuid.UUID) (*domain.Truck, error)
	UpdateTruck(ctx context.Context, truck *domain.Truck) error
	DeleteTruck(ctx context.Context, id uuid.UUID) error
	ListTrucks(ctx context.Context, limit, offset int) ([]*domain.Truck, error)
	GetManagerHistory(ctx context.Context, truckID uuid.UUID) ([]*domain.ManagerHistory, error)
}

// CouplingService определяет интерфейс переходов агрегации
type CouplingService interface {
	Couple(ctx context.Context, truckID, trailerID uuid.UUID) error
	Decouple(ctx context.Context, truckID uuid.UUID) error
	Swap(ctx context.Context, truckID, newTrailerID uuid.UUID) error
	SetStatus(ctx context.Context, truckID uuid.UUID, status domain.TruckStatus) error
}

// TruckHandler обрабатывает запросы по тягачам и переходам агрегации
type TruckHandler struct {
	service  TruckService
	coupling CouplingService
	logger   logger.Logger
}

// NewTruckHandler создает новый handler
func NewTruckHandler(service TruckService, coupling CouplingService, logger logger.Logger) *TruckHandler {
	return &TruckHandler{service: service, coupling: coupling, logger: logger}
}

// Create создает новый тягач
// POST /api/v1/trucks
func (h *TruckHandler) Create(w http.ResponseWriter, r *http.Request) {
	var truck domain.Truck
	if err := json.NewDecoder(r.Body).Decode(&truck); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateTruck(r.Context(), &truck); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPlate),
			errors.Is(err, domain.ErrInvalidStatus),
			errors.Is(err, domain.ErrIncompatibleTruckType):
			respondError(w, http.StatusUnprocessableEntity, "Invalid truck data")
		case errors.Is(err, domain.ErrTruckAlreadyExists):
			respondError(w, http.StatusConflict, "Truck already exists")
		case errors.Is(err, domain.ErrClassificationMismatch):
			respondError(w, http.StatusConflict, "Truck and trailer classification mismatch")
		case errors.Is(err, domain.ErrTrailerAlreadyCoupled):
			respondError(w, http.StatusConflict, "Trailer already coupled to another truck")
		case errors.Is(err, domain.ErrTrailerNotFound):
			respondError(w, http.StatusNotFound, "Trailer not found")
		default:
			h.logger.Error("Failed to create truck", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to create truck")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    truck,
	})
}

// Get возвращает тягач со связанными сущностями
// GET /api/v1/trucks/{id}
func (h *TruckHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	truck, err := h.service.GetTruck(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTruckNotFound) {
			respondError(w, http.StatusNotFound, "Truck not found")
			return
		}
		h.logger.Error("Failed to get truck", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get truck")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    truck,
	})
}

// Update обновляет скалярные поля тягача
// PUT /api/v1/trucks/{id}
func (h *TruckHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	var truck domain.Truck
	if err := json.NewDecoder(r.Body).Decode(&truck); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	truck.ID = id

	if err := h.service.UpdateTruck(r.Context(), &truck); err != nil {
		switch {
		case errors.Is(err, domain.ErrTruckNotFound):
			respondError(w, http.StatusNotFound, "Truck not found")
		case errors.Is(err, domain.ErrInvalidPlate),
			errors.Is(err, domain.ErrInvalidStatus),
			errors.Is(err, domain.ErrIncompatibleTruckType):
			respondError(w, http.StatusUnprocessableEntity, "Invalid truck data")
		default:
			h.logger.Error("Failed to update truck", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to update truck")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    truck,
	})
}

// Delete удаляет тягач
// DELETE /api/v1/trucks/{id}
func (h *TruckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	if err := h.service.DeleteTruck(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrTruckNotFound) {
			respondError(w, http.StatusNotFound, "Truck not found")
			return
		}
		h.logger.Error("Failed to delete truck", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete truck")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// List возвращает список тягачей
// GET /api/v1/trucks
func (h *TruckHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := getIntQuery(r, "limit", 0)
	offset := getIntQuery(r, "offset", 0)

	trucks, err := h.service.ListTrucks(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list trucks", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list trucks")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    trucks,
	})
}

// ManagerHistory возвращает периоды закрепления менеджеров за тягачом
// GET /api/v1/trucks/{id}/managers
func (h *TruckHandler) ManagerHistory(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	history, err := h.service.GetManagerHistory(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get manager history", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get manager history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    history,
	})
}

// Couple сцепляет тягач с прицепом
// POST /api/v1/trucks/{id}/couple
func (h *TruckHandler) Couple(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	var req struct {
		TrailerID uuid.UUID `json:"trailer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrailerID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.coupling.Couple(r.Context(), id, req.TrailerID); err != nil {
		h.respondCouplingError(w, err, "Failed to couple trailer")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// Decouple расцепляет тягач с прицепом
// POST /api/v1/trucks/{id}/decouple
func (h *TruckHandler) Decouple(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	if err := h.coupling.Decouple(r.Context(), id); err != nil {
		h.respondCouplingError(w, err, "Failed to decouple trailer")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// Swap заменяет прицеп тягача на новый
// POST /api/v1/trucks/{id}/swap
func (h *TruckHandler) Swap(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	var req struct {
		TrailerID uuid.UUID `json:"trailer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrailerID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.coupling.Swap(r.Context(), id, req.TrailerID); err != nil {
		h.respondCouplingError(w, err, "Failed to swap trailer")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// SetStatus меняет статус тягача
// POST /api/v1/trucks/{id}/status
func (h *TruckHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	var req struct {
		Status domain.TruckStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.coupling.SetStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			respondError(w, http.StatusUnprocessableEntity, "Invalid truck status")
		case errors.Is(err, domain.ErrTruckNotFound):
			respondError(w, http.StatusNotFound, "Truck not found")
		default:
			h.logger.Error("Failed to set truck status", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to set truck status")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// respondCouplingError переводит ошибки переходов агрегации в HTTP статусы:
// нарушения инвариантов - это конфликт состояния, а не ошибка сервера
func (h *TruckHandler) respondCouplingError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrTruckNotFound):
		respondError(w, http.StatusNotFound, "Truck not found")
	case errors.Is(err, domain.ErrTrailerNotFound):
		respondError(w, http.StatusNotFound, "Trailer not found")
	case errors.Is(err, domain.ErrClassificationMismatch):
		respondError(w, http.StatusConflict, "Truck and trailer classification mismatch")
	case errors.Is(err, domain.ErrTrailerAlreadyCoupled):
		respondError(w, http.StatusConflict, "Trailer already coupled to another truck")
	case errors.Is(err, domain.ErrTruckAlreadyCoupled):
		respondError(w, http.StatusConflict, "Truck already coupled to a trailer")
	case errors.Is(err, domain.ErrIncompatibleTruckType):
		respondError(w, http.StatusUnprocessableEntity, "Truck type cannot carry a trailer")
	default:
		h.logger.Error(fallback, map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
