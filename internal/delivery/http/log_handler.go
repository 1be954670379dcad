package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/pkg/logger"
)

// AuditLogService определяет интерфейс для журнала агрегации
type AuditLogService interface {
	List(ctx context.Context, filter domain.AggregationLogFilter) ([]*domain.AggregationLog, error)
}

// LogHandler обрабатывает запросы к журналу агрегации
type LogHandler struct {
	service AuditLogService
	logger  logger.Logger
}

// NewLogHandler создает новый handler
func NewLogHandler(service AuditLogService, logger logger.Logger) *LogHandler {
	return &LogHandler{service: service, logger: logger}
}

// List возвращает записи журнала по фильтру
// GET /api/v1/logs?type=&plate=&from=&to=&limit=&offset=
func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.AggregationLogFilter{
		Type:   domain.AggregationLogType(r.URL.Query().Get("type")),
		Plate:  r.URL.Query().Get("plate"),
		Limit:  getIntQuery(r, "limit", 0),
		Offset: getIntQuery(r, "offset", 0),
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'from' timestamp")
			return
		}
		filter.From = &from
	}

	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'to' timestamp")
			return
		}
		filter.To = &to
	}

	entries, err := h.service.List(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidLogData):
			respondError(w, http.StatusBadRequest, "Unknown log type")
		case errors.Is(err, domain.ErrBadRequest):
			respondError(w, http.StatusBadRequest, "Invalid date range")
		default:
			h.logger.Error("Failed to list aggregation logs", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to list logs")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    entries,
	})
}
