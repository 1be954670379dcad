package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rodomax/fleet/internal/domain"
)

// OwnerRepository определяет методы для работы с собственниками
type OwnerRepository interface {
	// Create создает нового собственника
	Create(ctx context.Context, owner *domain.Owner) error

	// GetByID возвращает собственника по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error)

	// GetByCode возвращает собственника по коду
	GetByCode(ctx context.Context, code string) (*domain.Owner, error)

	// Update обновляет данные собственника
	Update(ctx context.Context, owner *domain.Owner) error

	// Delete удаляет собственника (ссылки тягачей обнуляются схемой)
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает список собственников с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.Owner, error)

	// HasCoupledTrucks сообщает, есть ли у собственника тягач со сцепленным прицепом
	HasCoupledTrucks(ctx context.Context, id uuid.UUID) (bool, error)

	// SetActive выставляет автоматически пересчитываемый флаг активности
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// ManagerRepository определяет методы для работы с менеджерами
type ManagerRepository interface {
	Create(ctx context.Context, manager *domain.Manager) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Manager, error)
	Update(ctx context.Context, manager *domain.Manager) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*domain.Manager, error)
}

// ManagerHistoryRepository определяет методы для журнала закрепления менеджеров
type ManagerHistoryRepository interface {
	// Open открывает период закрепления менеджера за тягачом
	Open(ctx context.Context, managerID, truckID uuid.UUID, start time.Time) error

	// CloseOpen закрывает открытый период (если он есть) датой end
	CloseOpen(ctx context.Context, managerID, truckID uuid.UUID, end time.Time) error

	// ListByTruck возвращает историю менеджеров тягача, новые периоды первыми
	ListByTruck(ctx context.Context, truckID uuid.UUID) ([]*domain.ManagerHistory, error)
}

// DriverRepository определяет методы для работы с водителями
type DriverRepository interface {
	// Create создает нового водителя
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID возвращает водителя по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Driver, error)

	// GetByTruckID возвращает водителя, закрепленного за тягачом
	GetByTruckID(ctx context.Context, truckID uuid.UUID) (*domain.Driver, error)

	// Update обновляет данные водителя
	Update(ctx context.Context, driver *domain.Driver) error

	// Delete удаляет водителя
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает список водителей с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.Driver, error)

	// AssignTruck закрепляет водителя за тягачом. Предыдущее закрепление
	// любого водителя за этим тягачом снимается в той же транзакции.
	AssignTruck(ctx context.Context, driverID, truckID uuid.UUID) error

	// Unassign снимает закрепление водителя
	Unassign(ctx context.Context, driverID uuid.UUID) error
}

// TrailerRepository определяет методы для работы с прицепами
type TrailerRepository interface {
	// Create создает новый прицеп
	Create(ctx context.Context, trailer *domain.Trailer) error

	// GetByID возвращает прицеп по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trailer, error)

	// GetByPlate возвращает прицеп по номеру
	GetByPlate(ctx context.Context, plate string) (*domain.Trailer, error)

	// Update обновляет данные прицепа
	Update(ctx context.Context, trailer *domain.Trailer) error

	// Delete удаляет прицеп. Вызывающая сторона обязана предварительно
	// обнулить ссылку тягача (cascade-null, не cascade-delete).
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает список прицепов с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.Trailer, error)

	// ListAvailable возвращает агрегируемые прицепы, не сцепленные ни с одним тягачом
	ListAvailable(ctx context.Context) ([]*domain.Trailer, error)

	// IsAvailable проверяет доступность прицепа по номеру
	// Возвращает (isAvailable, error)
	IsAvailable(ctx context.Context, plate string) (bool, error)
}

// TruckRepository определяет методы для работы с тягачами
type TruckRepository interface {
	// Create создает новый тягач
	Create(ctx context.Context, truck *domain.Truck) error

	// GetByID возвращает тягач по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Truck, error)

	// GetByPlate возвращает тягач по номеру
	GetByPlate(ctx context.Context, plate string) (*domain.Truck, error)

	// GetByTrailerID возвращает тягач, к которому сцеплен прицеп
	GetByTrailerID(ctx context.Context, trailerID uuid.UUID) (*domain.Truck, error)

	// Update обновляет скалярные поля тягача. Прицеп и статус меняются
	// только через SetTrailer/SetStatus (явные переходы состояния).
	Update(ctx context.Context, truck *domain.Truck) error

	// Delete удаляет тягач (закрепление водителя обнуляется схемой)
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает список тягачей с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.Truck, error)

	// SetTrailer атомарно выставляет (или обнуляет) ссылку на прицеп:
	// замена при смене прицепа тоже идет одним вызовом. Переходы по тягачу
	// сериализуются блокировкой строки; гонка на эксклюзивность прицепа
	// ловится UNIQUE-ограничением.
	SetTrailer(ctx context.Context, truckID uuid.UUID, trailerID *uuid.UUID) error

	// SetStatus атомарно меняет статус; clearManager дополнительно
	// обнуляет ссылку на менеджера тем же оператором
	SetStatus(ctx context.Context, truckID uuid.UUID, status domain.TruckStatus, clearManager bool) error

	// ListRoster возвращает полный снимок парка для зеркальной синхронизации
	ListRoster(ctx context.Context) ([]*domain.RosterEntry, error)
}

// AggregationLogRepository определяет методы для журнала агрегации.
// Журнал append-only: путей обновления и удаления не существует.
type AggregationLogRepository interface {
	// Create создает новую запись журнала
	Create(ctx context.Context, entry *domain.AggregationLog) error

	// GetByID возвращает запись по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AggregationLog, error)

	// List возвращает записи по фильтру, новые первыми
	List(ctx context.Context, filter domain.AggregationLogFilter) ([]*domain.AggregationLog, error)
}
