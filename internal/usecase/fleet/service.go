package fleet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/pkg/logger"
	"github.com/rodomax/fleet/internal/repository"
	"github.com/rodomax/fleet/internal/usecase/coupling"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service содержит CRUD-логику парка: собственники, менеджеры, водители,
// прицепы и тягачи, включая каскадные обнуления ссылок при удалении
type Service struct {
	ownerRepo   repository.OwnerRepository
	managerRepo repository.ManagerRepository
	historyRepo repository.ManagerHistoryRepository
	driverRepo  repository.DriverRepository
	trailerRepo repository.TrailerRepository
	truckRepo   repository.TruckRepository
	sync        coupling.SyncTrigger
	logger      logger.Logger
}

// NewService создает новый экземпляр FleetService
func NewService(
	ownerRepo repository.OwnerRepository,
	managerRepo repository.ManagerRepository,
	historyRepo repository.ManagerHistoryRepository,
	driverRepo repository.DriverRepository,
	trailerRepo repository.TrailerRepository,
	truckRepo repository.TruckRepository,
	sync coupling.SyncTrigger,
	logger logger.Logger,
) *Service {
	return &Service{
		ownerRepo:   ownerRepo,
		managerRepo: managerRepo,
		historyRepo: historyRepo,
		driverRepo:  driverRepo,
		trailerRepo: trailerRepo,
		truckRepo:   truckRepo,
		sync:        sync,
		logger:      logger,
	}
}

// --- Собственники ---

func (s *Service) CreateOwner(ctx context.Context, owner *domain.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	// Новый собственник еще не имеет сцепленных тягачей
	owner.Active = false
	return s.ownerRepo.Create(ctx, owner)
}

func (s *Service) GetOwner(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	return s.ownerRepo.GetByID(ctx, id)
}

func (s *Service) UpdateOwner(ctx context.Context, owner *domain.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	return s.ownerRepo.Update(ctx, owner)
}

func (s *Service) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	if err := s.ownerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.sync.Trigger()
	return nil
}

func (s *Service) ListOwners(ctx context.Context, limit, offset int) ([]*domain.Owner, error) {
	return s.ownerRepo.List(ctx, normalizeLimit(limit), offset)
}

// --- Менеджеры ---

func (s *Service) CreateManager(ctx context.Context, manager *domain.Manager) error {
	if err := manager.Validate(); err != nil {
		return err
	}
	return s.managerRepo.Create(ctx, manager)
}

func (s *Service) GetManager(ctx context.Context, id uuid.UUID) (*domain.Manager, error) {
	return s.managerRepo.GetByID(ctx, id)
}

func (s *Service) UpdateManager(ctx context.Context, manager *domain.Manager) error {
	if err := manager.Validate(); err != nil {
		return err
	}
	return s.managerRepo.Update(ctx, manager)
}

func (s *Service) DeleteManager(ctx context.Context, id uuid.UUID) error {
	return s.managerRepo.Delete(ctx, id)
}

func (s *Service) ListManagers(ctx context.Context, limit, offset int) ([]*domain.Manager, error) {
	return s.managerRepo.List(ctx, normalizeLimit(limit), offset)
}

// GetManagerHistory возвращает периоды закрепления менеджеров за тягачом
func (s *Service) GetManagerHistory(ctx context.Context, truckID uuid.UUID) ([]*domain.ManagerHistory, error) {
	return s.historyRepo.ListByTruck(ctx, truckID)
}

// --- Водители ---

func (s *Service) CreateDriver(ctx context.Context, driver *domain.Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return err
	}
	if driver.TruckID != nil {
		s.sync.Trigger()
	}
	return nil
}

func (s *Service) GetDriver(ctx context.Context, id uuid.UUID) (*domain.Driver, error) {
	return s.driverRepo.GetByID(ctx, id)
}

func (s *Service) UpdateDriver(ctx context.Context, driver *domain.Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return err
	}
	// Имя водителя участвует в зеркале и его сортировке
	s.sync.Trigger()
	return nil
}

func (s *Service) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	if err := s.driverRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.sync.Trigger()
	return nil
}

func (s *Service) ListDrivers(ctx context.Context, limit, offset int) ([]*domain.Driver, error) {
	return s.driverRepo.List(ctx, normalizeLimit(limit), offset)
}

// --- Прицепы ---

func (s *Service) CreateTrailer(ctx context.Context, trailer *domain.Trailer) error {
	if err := trailer.Validate(); err != nil {
		return err
	}
	trailer.RecalcNextWash()
	return s.trailerRepo.Create(ctx, trailer)
}

func (s *Service) GetTrailer(ctx context.Context, id uuid.UUID) (*domain.Trailer, error) {
	return s.trailerRepo.GetByID(ctx, id)
}

func (s *Service) UpdateTrailer(ctx context.Context, trailer *domain.Trailer) error {
	if err := trailer.Validate(); err != nil {
		return err
	}
	// Дата следующей мойки всегда производная от последней
	trailer.RecalcNextWash()
	if err := s.trailerRepo.Update(ctx, trailer); err != nil {
		return err
	}
	s.sync.Trigger()
	return nil
}

// DeleteTrailer удаляет прицеп, предварительно обнулив ссылку тягача.
// Тягач при этом никогда не удаляется (cascade-null, не cascade-delete).
func (s *Service) DeleteTrailer(ctx context.Context, id uuid.UUID) error {
	truck, err := s.truckRepo.GetByTrailerID(ctx, id)
	switch err {
	case nil:
		if err := s.truckRepo.SetTrailer(ctx, truck.ID, nil); err != nil {
			return err
		}
		s.logger.Info("trailer reference cleared before delete", map[string]interface{}{
			"truck_plate": truck.Plate,
		})
	case domain.ErrTruckNotFound:
		// Прицеп ни с кем не сцеплен
	default:
		return err
	}

	if err := s.trailerRepo.Delete(ctx, id); err != nil {
		return err
	}

	if truck != nil {
		s.refreshOwnerStatus(ctx, truck.OwnerID)
	}
	s.sync.Trigger()
	return nil
}

func (s *Service) ListTrailers(ctx context.Context, limit, offset int) ([]*domain.Trailer, error) {
	return s.trailerRepo.List(ctx, normalizeLimit(limit), offset)
}

// ListAvailableTrailers возвращает прицепы, доступные для агрегации
func (s *Service) ListAvailableTrailers(ctx context.Context) ([]*domain.Trailer, error) {
	return s.trailerRepo.ListAvailable(ctx)
}

// CheckTrailerAvailability проверяет доступность одного прицепа.
// Точечная проверка идет через кэшируемый путь репозитория
func (s *Service) CheckTrailerAvailability(ctx context.Context, id uuid.UUID) (bool, error) {
	trailer, err := s.trailerRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return s.trailerRepo.IsAvailable(ctx, trailer.Plate)
}

// --- Тягачи ---

func (s *Service) CreateTruck(ctx context.Context, truck *domain.Truck) error {
	if err := truck.Validate(); err != nil {
		return err
	}
	if truck.Status == "" {
		truck.Status = domain.TruckStatusActive
	}

	// Ссылка на прицеп при создании проходит те же инварианты,
	// что и переход сцепления
	if err := s.validateTrailerRef(ctx, truck); err != nil {
		return err
	}

	if err := s.truckRepo.Create(ctx, truck); err != nil {
		return err
	}

	if truck.ManagerID != nil {
		if err := s.historyRepo.Open(ctx, *truck.ManagerID, truck.ID, time.Now()); err != nil {
			s.logger.Error("failed to open manager history period", map[string]interface{}{
				"truck_plate": truck.Plate,
				"error":       err.Error(),
			})
		}
	}

	s.refreshOwnerStatus(ctx, truck.OwnerID)
	s.sync.Trigger()
	return nil
}

// GetTruck возвращает тягач вместе со связанными сущностями
func (s *Service) GetTruck(ctx context.Context, id uuid.UUID) (*domain.Truck, error) {
	truck, err := s.truckRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Связанные данные подгружаются best-effort: отсутствие связи не ошибка
	if truck.OwnerID != nil {
		truck.Owner, _ = s.ownerRepo.GetByID(ctx, *truck.OwnerID)
	}
	if truck.ManagerID != nil {
		truck.Manager, _ = s.managerRepo.GetByID(ctx, *truck.ManagerID)
	}
	if truck.TrailerID != nil {
		truck.Trailer, _ = s.trailerRepo.GetByID(ctx, *truck.TrailerID)
	}
	if driver, err := s.driverRepo.GetByTruckID(ctx, truck.ID); err == nil {
		truck.Driver = driver
	}

	return truck, nil
}

func (s *Service) UpdateTruck(ctx context.Context, truck *domain.Truck) error {
	if err := truck.Validate(); err != nil {
		return err
	}

	existing, err := s.truckRepo.GetByID(ctx, truck.ID)
	if err != nil {
		return err
	}

	if err := s.truckRepo.Update(ctx, truck); err != nil {
		return err
	}

	s.recordManagerChange(ctx, existing, truck)

	s.refreshOwnerStatus(ctx, existing.OwnerID)
	if !sameRef(existing.OwnerID, truck.OwnerID) {
		s.refreshOwnerStatus(ctx, truck.OwnerID)
	}

	s.sync.Trigger()
	return nil
}

func (s *Service) DeleteTruck(ctx context.Context, id uuid.UUID) error {
	truck, err := s.truckRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Закрепление водителя обнуляется схемой (ON DELETE SET NULL)
	if err := s.truckRepo.Delete(ctx, id); err != nil {
		return err
	}

	if truck.ManagerID != nil {
		if err := s.historyRepo.CloseOpen(ctx, *truck.ManagerID, truck.ID, time.Now()); err != nil {
			s.logger.Error("failed to close manager history period", map[string]interface{}{
				"truck_plate": truck.Plate,
				"error":       err.Error(),
			})
		}
	}

	s.refreshOwnerStatus(ctx, truck.OwnerID)
	s.sync.Trigger()
	return nil
}

func (s *Service) ListTrucks(ctx context.Context, limit, offset int) ([]*domain.Truck, error) {
	return s.truckRepo.List(ctx, normalizeLimit(limit), offset)
}

// validateTrailerRef проверяет ссылку на прицеп у нового тягача:
// классификация должна совпадать, прицеп не должен быть занят другим тягачом.
// Гонку между проверкой и вставкой добивает UNIQUE(trailer_id).
func (s *Service) validateTrailerRef(ctx context.Context, truck *domain.Truck) error {
	if truck.TrailerID == nil {
		return nil
	}

	trailer, err := s.trailerRepo.GetByID(ctx, *truck.TrailerID)
	if err != nil {
		return err
	}

	// Пустая классификация тягача разрешает сцепление без проверки
	if truck.Classification != "" && truck.Classification != trailer.Classification {
		return domain.ErrClassificationMismatch
	}

	holder, err := s.truckRepo.GetByTrailerID(ctx, trailer.ID)
	if err == nil && holder.ID != truck.ID {
		return domain.ErrTrailerAlreadyCoupled
	}
	if err != nil && err != domain.ErrTruckNotFound {
		return err
	}

	return nil
}

// recordManagerChange открывает/закрывает периоды истории при смене менеджера
func (s *Service) recordManagerChange(ctx context.Context, before, after *domain.Truck) {
	if sameRef(before.ManagerID, after.ManagerID) {
		return
	}

	now := time.Now()

	if before.ManagerID != nil {
		if err := s.historyRepo.CloseOpen(ctx, *before.ManagerID, before.ID, now); err != nil {
			s.logger.Error("failed to close manager history period", map[string]interface{}{
				"truck_plate": before.Plate,
				"error":       err.Error(),
			})
		}
	}

	if after.ManagerID != nil {
		if err := s.historyRepo.Open(ctx, *after.ManagerID, after.ID, now); err != nil {
			s.logger.Error("failed to open manager history period", map[string]interface{}{
				"truck_plate": after.Plate,
				"error":       err.Error(),
			})
		}
	}
}

// refreshOwnerStatus пересчитывает автоматический флаг активности собственника
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

func sameRef(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
