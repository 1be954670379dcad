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

// TrailerService определяет интерфейс для сервиса прицепов
type TrailerService interface {
	CreateTrailer(ctx context.Context, trailer *domain.Trailer) error
	GetTrailer(ctx context.Context, id uuid.UUID) (*domain.Trailer, error)
	UpdateTrailer(ctx context.Context, trailer *domain.Trailer) error
	DeleteTrailer(ctx context.Context, id uuid.UUID) error
	ListTrailers(ctx context.Context, limit, offset int) ([]*domain.Trailer, error)
	ListAvailableTrailers(ctx context.Context) ([]*domain.Trailer, error)
	CheckTrailerAvailability(ctx context.Context, id uuid.UUID) (bool, error)
}

// TrailerHandler обрабатывает запросы по прицепам
type TrailerHandler struct {
	service TrailerService
	logger  logger.Logger
}

// NewTrailerHandler создает новый handler
func NewTrailerHandler(service TrailerService, logger logger.Logger) *TrailerHandler {
	return &TrailerHandler{service: service, logger: logger}
}

// Create создает новый прицеп
// POST /api/v1/trailers
func (h *TrailerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var trailer domain.Trailer
	if err := json.NewDecoder(r.Body).Decode(&trailer); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateTrailer(r.Context(), &trailer); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPlate), errors.Is(err, domain.ErrInvalidTrailerData):
			respondError(w, http.StatusUnprocessableEntity, "Invalid trailer data")
		case errors.Is(err, domain.ErrTrailerAlreadyExists):
			respondError(w, http.StatusConflict, "Trailer already exists")
		default:
			h.logger.Error("Failed to create trailer", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to create trailer")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    trailer,
	})
}

// Get возвращает прицеп по ID
// GET /api/v1/trailers/{id}
func (h *TrailerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid trailer ID")
		return
	}

	trailer, err := h.service.GetTrailer(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTrailerNotFound) {
			respondError(w, http.StatusNotFound, "Trailer not found")
			return
		}
		h.logger.Error("Failed to get trailer", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get trailer")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    trailer,
	})
}

// Update обновляет данные прицепа
// PUT /api/v1/trailers/{id}
func (h *TrailerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid trailer ID")
		return
	}

	var trailer domain.Trailer
	if err := json.NewDecoder(r.Body).Decode(&trailer); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	trailer.ID = id

	if err := h.service.UpdateTrailer(r.Context(), &trailer); err != nil {
		switch {
		case errors.Is(err, domain.ErrTrailerNotFound):
			respondError(w, http.StatusNotFound, "Trailer not found")
		case errors.Is(err, domain.ErrInvalidPlate), errors.Is(err, domain.ErrInvalidTrailerData):
			respondError(w, http.StatusUnprocessableEntity, "Invalid trailer data")
		default:
			h.logger.Error("Failed to update trailer", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to update trailer")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    trailer,
	})
}

// Delete удаляет прицеп, каскадно обнуляя ссылку тягача
// DELETE /api/v1/trailers/{id}
func (h *TrailerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid trailer ID")
		return
	}

	if err := h.service.DeleteTrailer(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrTrailerNotFound) {
			respondError(w, http.StatusNotFound, "Trailer not found")
			return
		}
		h.logger.Error("Failed to delete trailer", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to delete trailer")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// List возвращает список прицепов
// GET /api/v1/trailers
func (h *TrailerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := getIntQuery(r, "limit", 0)
	offset := getIntQuery(r, "offset", 0)

	trailers, err := h.service.ListTrailers(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list trailers", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list trailers")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    trailers,
	})
}

// Available проверяет доступность одного прицепа для агрегации
// GET /api/v1/trailers/{id}/available
func (h *TrailerHandler) Available(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid trailer ID")
		return
	}

	available, err := h.service.CheckTrailerAvailability(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTrailerNotFound) {
			respondError(w, http.StatusNotFound, "Trailer not found")
			return
		}
		h.logger.Error("Failed to check trailer availability", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to check trailer availability")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"id":        id,
			"available": available,
		},
	})
}

// ListAvailable возвращает прицепы, доступные для агрегации
// GET /api/v1/trailers/available
func (h *TrailerHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	trailers, err := h.service.ListAvailableTrailers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list available trailers", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to list available trailers")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    trailers,
	})
}
