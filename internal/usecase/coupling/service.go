package coupling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/pkg/logger"
	"github.com/rodomax/fleet/internal/repository"
)

// SyncTrigger - уведомление зеркальной синхронизации об изменении парка.
// Вызов не должен блокировать переход состояния.
type SyncTrigger interface {
	Trigger()
}

// Service содержит бизнес-логику переходов агрегации.
// Каждый переход: атомарная мутация хранилища, best-effort запись в журнал,
// пересчет статуса собственника, триггер зеркальной синхронизации.
type Service struct {
	truckRepo   repository.TruckRepository
	trailerRepo repository.TrailerRepository
	driverRepo  repository.DriverRepository
	ownerRepo   repository.OwnerRepository
	managerRepo repository.ManagerRepository
	historyRepo repository.ManagerHistoryRepository
	logRepo     repository.AggregationLogRepository
	sync        SyncTrigger
	logger      logger.Logger
}

// NewService создает новый экземпляр CouplingService
func NewService(
	truckRepo repository.TruckRepository,
	trailerRepo repository.TrailerRepository,
	driverRepo repository.DriverRepository,
	ownerRepo repository.OwnerRepository,
	managerRepo repository.ManagerRepository,
	historyRepo repository.ManagerHistoryRepository,
	logRepo repository.AggregationLogRepository,
	sync SyncTrigger,
	logger logger.Logger,
) *Service {
	return &Service{
		truckRepo:   truckRepo,
		trailerRepo: trailerRepo,
		driverRepo:  driverRepo,
		ownerRepo:   ownerRepo,
		managerRepo: managerRepo,
		historyRepo: historyRepo,
		logRepo:     logRepo,
		sync:        sync,
		logger:      logger,
	}
}

// Couple сцепляет тягач с прицепом
func (s *Service) Couple(ctx context.Context, truckID, trailerID uuid.UUID) error {
	truck, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		return err
	}

	trailer, err := s.trailerRepo.GetByID(ctx, trailerID)
	if err != nil {
		return err
	}

	if err := s.validateCouple(ctx, truck, trailer); err != nil {
		return err
	}

	if truck.TrailerID != nil {
		return domain.ErrTruckAlreadyCoupled
	}

	if err := s.truckRepo.SetTrailer(ctx, truck.ID, &trailer.ID); err != nil {
		return err
	}

	s.logger.Info("trailer coupled", map[string]interface{}{
		"truck_plate":   truck.Plate,
		"trailer_plate": trailer.Plate,
	})

	s.recordLog(ctx, &domain.AggregationLog{
		Type:            domain.LogTypeCouple,
		TruckID:         &truck.ID,
		TruckPlate:      truck.Plate,
		NewTrailerPlate: trailer.Plate,
		Description:     fmt.Sprintf("Carreta %s acoplada ao cavalo %s", trailer.Plate, truck.Plate),
	})

	s.refreshOwnerStatus(ctx, truck.OwnerID)
	s.sync.Trigger()

	return nil
}

// Decouple расцепляет тягач с прицепом.
// Тягач без прицепа - не ошибка, переход просто не происходит.
func (s *Service) Decouple(ctx context.Context, truckID uuid.UUID) error {
	truck, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		return err
	}

	if truck.TrailerID == nil {
		s.logger.Debug("decouple skipped, truck has no trailer", map[string]interface{}{
			"truck_plate": truck.Plate,
		})
		return nil
	}

	prevPlate := s.trailerPlate(ctx, *truck.TrailerID)

	if err := s.truckRepo.SetTrailer(ctx, truck.ID, nil); err != nil {
		return err
	}

	s.logger.Info("trailer decoupled", map[string]interface{}{
		"truck_plate":   truck.Plate,
		"trailer_plate": prevPlate,
	})

	s.recordLog(ctx, &domain.AggregationLog{
		Type:             domain.LogTypeDecouple,
		TruckID:          &truck.ID,
		TruckPlate:       truck.Plate,
		PrevTrailerPlate: prevPlate,
		Description:      fmt.Sprintf("Carreta %s desacoplada do cavalo %s", prevPlate, truck.Plate),
	})

	s.refreshOwnerStatus(ctx, truck.OwnerID)
	s.sync.Trigger()

	return nil
}

// Swap заменяет прицеп тягача на новый одним переходом.
// Журнал получает одну запись типа "troca", а не пару расцеп/сцеп.
func (s *Service) Swap(ctx context.Context, truckID, newTrailerID uuid.UUID) error {
	truck, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		return err
	}

	trailer, err := s.trailerRepo.GetByID(ctx, newTrailerID)
	if err != nil {
		return err
	}

	// Классификация проверяется заново против нового прицепа
	if err := s.validateCouple(ctx, truck, trailer); err != nil {
		return err
	}

	var prevPlate string
	if truck.TrailerID != nil {
		prevPlate = s.trailerPlate(ctx, *truck.TrailerID)
	}

	// Замена идет одним атомарным вызовом: промежуточное состояние
	// "расцеплен, но еще не сцеплен" снаружи не наблюдается
	if err := s.truckRepo.SetTrailer(ctx, truck.ID, &trailer.ID); err != nil {
		return err
	}

	s.logger.Info("trailer swapped", map[string]interface{}{
		"truck_plate": truck.Plate,
		"prev_plate":  prevPlate,
		"new_plate":   trailer.Plate,
	})

	description := fmt.Sprintf("Carreta %s acoplada ao cavalo %s", trailer.Plate, truck.Plate)
	if prevPlate != "" {
		description = fmt.Sprintf("Carreta %s substituída pela carreta %s no cavalo %s", prevPlate, trailer.Plate, truck.Plate)
	}

	s.recordLog(ctx, &domain.AggregationLog{
		Type:             domain.LogTypeSwap,
		TruckID:          &truck.ID,
		TruckPlate:       truck.Plate,
		PrevTrailerPlate: prevPlate,
		NewTrailerPlate:  trailer.Plate,
		Description:      description,
	})

	s.refreshOwnerStatus(ctx, truck.OwnerID)
	s.sync.Trigger()

	return nil
}

// AssignDriver закрепляет водителя за тягачом. Предыдущее закрепление
// водителя снимается молча: это кадровое перемещение, а не событие
// агрегации, поэтому запись в журнал не создается.
func (s *Service) AssignDriver(ctx context.Context, driverID, truckID uuid.UUID) error {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}

	truck, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		return err
	}

	if driver.TruckID != nil && *driver.TruckID != truck.ID {
		s.logger.Warn("driver reassigned from another truck", map[string]interface{}{
			"driver":          driver.Name,
			"prev_truck_id":   driver.TruckID,
			"new_truck_plate": truck.Plate,
		})
	}

	if err := s.driverRepo.AssignTruck(ctx, driver.ID, truck.ID); err != nil {
		return err
	}

	s.logger.Info("driver assigned", map[string]interface{}{
		"driver":      driver.Name,
		"truck_plate": truck.Plate,
	})

	s.sync.Trigger()

	return nil
}

// UnassignDriver снимает закрепление водителя
func (s *Service) UnassignDriver(ctx context.Context, driverID uuid.UUID) error {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}

	if err := s.driverRepo.Unassign(ctx, driver.ID); err != nil {
		return err
	}

	s.logger.Info("driver unassigned", map[string]interface{}{
		"driver": driver.Name,
	})

	s.sync.Trigger()

	return nil
}

// SetStatus меняет статус тягача. Дезагрегация снимает менеджера и
// закрывает его период в истории, но прицеп не расцепляет:
// дезагрегация и расцеп - независимые переходы.
func (s *Service) SetStatus(ctx context.Context, truckID uuid.UUID, status domain.TruckStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}

	truck, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		return err
	}

	disaggregating := status == domain.TruckStatusDisaggregated

	if err := s.truckRepo.SetStatus(ctx, truck.ID, status, disaggregating); err != nil {
		return err
	}

	s.logger.Info("truck status changed", map[string]interface{}{
		"truck_plate": truck.Plate,
		"status":      status,
	})

	if !disaggregating {
		s.sync.Trigger()
		return nil
	}

	description := fmt.Sprintf("Cavalo %s desagregado.", truck.Plate)

	if truck.ManagerID != nil {
		if err := s.historyRepo.CloseOpen(ctx, *truck.ManagerID, truck.ID, time.Now()); err != nil {
			s.logger.Error("failed to close manager history period", map[string]interface{}{
				"truck_plate": truck.Plate,
				"error":       err.Error(),
			})
		}

		if manager, err := s.managerRepo.GetByID(ctx, *truck.ManagerID); err == nil {
			description = fmt.Sprintf("Cavalo %s desagregado. Gestor %s removido.", truck.Plate, manager.Name)
		}
	}

	s.recordLog(ctx, &domain.AggregationLog{
		Type:        domain.LogTypeDisaggregate,
		TruckID:     &truck.ID,
		TruckPlate:  truck.Plate,
		Description: description,
	})

	s.sync.Trigger()

	return nil
}

// validateCouple проверяет инварианты сцепления тягача с прицепом
func (s *Service) validateCouple(ctx context.Context, truck *domain.Truck, trailer *domain.Trailer) error {
	if !truck.CanCarryTrailer() {
		return domain.ErrIncompatibleTruckType
	}

	// Пустая классификация тягача разрешает сцепление без проверки
	if truck.Classification != "" && truck.Classification != trailer.Classification {
		return domain.ErrClassificationMismatch
	}

	// Прицеп, сцепленный с другим тягачом, недоступен.
	// Гонку между проверкой и записью добивает UNIQUE(trailer_id).
	holder, err := s.truckRepo.GetByTrailerID(ctx, trailer.ID)
	if err == nil && holder.ID != truck.ID {
		return domain.ErrTrailerAlreadyCoupled
	}
	if err != nil && err != domain.ErrTruckNotFound {
		return err
	}

	return nil
}

// recordLog пишет запись журнала агрегации best-effort:
// отказ журнала не откатывает уже примененный переход
func (s *Service) recordLog(ctx context.Context, entry *domain.AggregationLog) {
	entry.Timestamp = time.Now()

	if err := entry.Validate(); err != nil {
		s.logger.Error("invalid aggregation log entry", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write aggregation log", map[string]interface{}{
			"type":        entry.Type,
			"truck_plate": entry.TruckPlate,
			"error":       err.Error(),
		})
	}
}

// refreshOwnerStatus пересчитывает автоматический флаг активности
// собственника: активен, пока хотя бы один его тягач сцеплен с прицепом
func (s *Service) refreshOwnerStatus(ctx context.Context, ownerID *uuid.UUID) {
	if ownerID == nil {
		return
	}

	active, err := s.ownerRepo.HasCoupledTrucks(ctx, *ownerID)
	if err != nil {
		s.logger.Error("failed to recompute owner status", map[string]interface{}{
			"owner_id": ownerID,
			"error":    err.Error(),
		})
		return
	}

	if err := s.ownerRepo.SetActive(ctx, *ownerID, active); err != nil {
		s.logger.Error("failed to update owner status", map[string]interface{}{
			"owner_id": ownerID,
			"error":    err.Error(),
		})
	}
}

// trailerPlate возвращает номер прицепа для журнала; ошибка чтения
// не должна валить переход, поэтому возвращается пустая строка
func (s *Service) trailerPlate(ctx context.Context, trailerID uuid.UUID) string {
	trailer, err := s.trailerRepo.GetByID(ctx, trailerID)
	if err != nil {
		return ""
	}
	return trailer.Plate
}
