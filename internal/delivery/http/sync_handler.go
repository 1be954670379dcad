package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/pkg/logger"
	"github.com/rodomax/fleet/internal/usecase/sync"
)

// SyncService определяет интерфейс ручного запуска синхронизации
type SyncService interface {
	SyncNow(ctx context.Context) (*sync.Result, error)
}

// SyncHandler обрабатывает ручной запуск зеркальной синхронизации
type SyncHandler struct {
	service SyncService
	logger  logger.Logger
}

// NewSyncHandler создает новый handler
func NewSyncHandler(service SyncService, logger logger.Logger) *SyncHandler {
	return &SyncHandler{service: service, logger: logger}
}

// Sync выполняет синхронный проход и возвращает его итог оператору
// POST /api/v1/sync
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SyncNow(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSyncDisabled):
			respondError(w, http.StatusConflict, "Mirror sync is disabled")
		case errors.Is(err, domain.ErrSinkUnavailable):
			respondError(w, http.StatusBadGateway, "Mirror sink unavailable")
		default:
			h.logger.Error("Manual sync failed", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusBadGateway, "Sync failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}
