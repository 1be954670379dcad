package coupling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rodomax/fleet/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Моки интерфейсов репозиториев для юнит-тестов сервиса агрегации

// MockOwnerRepository - mock repository.OwnerRepository
type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}

func (m *MockOwnerRepository) GetByCode(ctx context.Context, code string) (*domain.Owner, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}

func (m *MockOwnerRepository) Update(ctx context.Context, owner *domain.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOwnerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Owner, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Owner), args.Error(1)
}

func (m *MockOwnerRepository) HasCoupledTrucks(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOwnerRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

// MockManagerRepository - mock repository.ManagerRepository
type MockManagerRepository struct {
	mock.Mock
}

func (m *MockManagerRepository) Create(ctx context.Context, manager *domain.Manager) error {
	args := m.Called(ctx, manager)
	return args.Error(0)
}

func (m *MockManagerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Manager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Manager), args.Error(1)
}

func (m *MockManagerRepository) Update(ctx context.Context, manager *domain.Manager) error {
	args := m.Called(ctx, manager)
	return args.Error(0)
}

func (m *MockManagerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockManagerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Manager, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Manager), args.Error(1)
}

// MockManagerHistoryRepository - mock repository.ManagerHistoryRepository
type MockManagerHistoryRepository struct {
	mock.Mock
}

func (m *MockManagerHistoryRepository) Open(ctx context.Context, managerID, truckID uuid.UUID, start time.Time) error {
	args := m.Called(ctx, managerID, truckID, start)
	return args.Error(0)
}

func (m *MockManagerHistoryRepository) CloseOpen(ctx context.Context, managerID, truckID uuid.UUID, end time.Time) error {
	args := m.Called(ctx, managerID, truckID, end)
	return args.Error(0)
}

func (m *MockManagerHistoryRepository) ListByTruck(ctx context.Context, truckID uuid.UUID) ([]*domain.ManagerHistory, error) {
	args := m.Called(ctx, truckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ManagerHistory), args.Error(1)
}

// MockDriverRepository - mock repository.DriverRepository
type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByTruckID(ctx context.Context, truckID uuid.UUID) (*domain.Driver, error) {
	args := m.Called(ctx, truckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDriverRepository) List(ctx context.Context, limit, offset int) ([]*domain.Driver, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Driver), args.Error(1)
}

func (m *MockDriverRepository) AssignTruck(ctx context.Context, driverID, truckID uuid.UUID) error {
	args := m.Called(ctx, driverID, truckID)
	return args.Error(0)
}

func (m *MockDriverRepository) Unassign(ctx context.Context, driverID uuid.UUID) error {
	args := m.Called(ctx, driverID)
	return args.Error(0)
}

// MockTrailerRepository - mock repository.TrailerRepository
type MockTrailerRepository struct {
	mock.Mock
}

func (m *MockTrailerRepository) Create(ctx context.Context, trailer *domain.Trailer) error {
	args := m.Called(ctx, trailer)
	return args.Error(0)
}

func (m *MockTrailerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trailer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) GetByPlate(ctx context.Context, plate string) (*domain.Trailer, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) Update(ctx context.Context, trailer *domain.Trailer) error {
	args := m.Called(ctx, trailer)
	return args.Error(0)
}

func (m *MockTrailerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrailerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Trailer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) ListAvailable(ctx context.Context) ([]*domain.Trailer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) IsAvailable(ctx context.Context, plate string) (bool, error) {
	args := m.Called(ctx, plate)
	return args.Bool(0), args.Error(1)
}

// MockTruckRepository - mock repository.TruckRepository
type MockTruckRepository struct {
	mock.Mock
}

func (m *MockTruckRepository) Create(ctx context.Context, truck *domain.Truck) error {
	args := m.Called(ctx, truck)
	return args.Error(0)
}

func (m *MockTruckRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Truck), args.Error(1)
}

func (m *MockTruckRepository) GetByPlate(ctx context.Context, plate string) (*domain.Truck, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Truck), args.Error(1)
}

func (m *MockTruckRepository) GetByTrailerID(ctx context.Context, trailerID uuid.UUID) (*domain.Truck, error) {
	args := m.Called(ctx, trailerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Truck), args.Error(1)
}

func (m *MockTruckRepository) Update(ctx context.Context, truck *domain.Truck) error {
	args := m.Called(ctx, truck)
	return args.Error(0)
}

func (m *MockTruckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTruckRepository) List(ctx context.Context, limit, offset int) ([]*domain.Truck, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Truck), args.Error(1)
}

func (m *MockTruckRepository) SetTrailer(ctx context.Context, truckID uuid.UUID, trailerID *uuid.UUID) error {
	args := m.Called(ctx, truckID, trailerID)
	return args.Error(0)
}

func (m *MockTruckRepository) SetStatus(ctx context.Context, truckID uuid.UUID, status domain.TruckStatus, clearManager bool) error {
	args := m.Called(ctx, truckID, status, clearManager)
	return args.Error(0)
}

func (m *MockTruckRepository) ListRoster(ctx context.Context) ([]*domain.RosterEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RosterEntry), args.Error(1)
}

// MockAggregationLogRepository - mock repository.AggregationLogRepository
type MockAggregationLogRepository struct {
	mock.Mock
}

func (m *MockAggregationLogRepository) Create(ctx context.Context, entry *domain.AggregationLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAggregationLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AggregationLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AggregationLog), args.Error(1)
}

func (m *MockAggregationLogRepository) List(ctx context.Context, filter domain.AggregationLogFilter) ([]*domain.AggregationLog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AggregationLog), args.Error(1)
}
