package auditlog

import (
	"context"

	"github.com/google/uuid"
	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/pkg/logger"
	"github.com/rodomax/fleet/internal/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service предоставляет read-only доступ к журналу агрегации.
// Записи создаются только сервисом агрегации; API записи не существует.
type Service struct {
	logRepo repository.AggregationLogRepository
	logger  logger.Logger
}

// NewService создает новый экземпляр AuditLogService
func NewService(logRepo repository.AggregationLogRepository, logger logger.Logger) *Service {
	return &Service{
		logRepo: logRepo,
		logger:  logger,
	}
}

// List возвращает записи журнала по фильтру, новые первыми
func (s *Service) List(ctx context.Context, filter domain.AggregationLogFilter) ([]*domain.AggregationLog, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.ErrInvalidLogData
	}

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, domain.ErrBadRequest
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.logRepo.List(ctx, filter)
}

// Get возвращает запись журнала по ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.AggregationLog, error) {
	return s.logRepo.GetByID(ctx, id)
}
