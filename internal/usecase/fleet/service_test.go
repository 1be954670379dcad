package fleet

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type syncRecorder struct {
	count int
}

func (s *syncRecorder) Trigger() {
	s.count++
}

type serviceFixture struct {
	ownerRepo   *MockOwnerRepository
	managerRepo *MockManagerRepository
	historyRepo *MockManagerHistoryRepository
	driverRepo  *MockDriverRepository
	trailerRepo *MockTrailerRepository
	truckRepo   *MockTruckRepository
	sync        *syncRecorder
	service     *Service
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		ownerRepo:   new(MockOwnerRepository),
		managerRepo: new(MockManagerRepository),
		historyRepo: new(MockManagerHistoryRepository),
		driverRepo:  new(MockDriverRepository),
		trailerRepo: new(MockTrailerRepository),
		truckRepo:   new(MockTruckRepository),
		sync:        &syncRecorder{},
	}

	f.service = NewService(
		f.ownerRepo,
		f.managerRepo,
		f.historyRepo,
		f.driverRepo,
		f.trailerRepo,
		f.truckRepo,
		f.sync,
		logger.NewNoop(),
	)

	return f
}

// TestService_CreateTrailer тестирует пересчет цикла мойки при создании
func TestService_CreateTrailer(t *testing.T) {
	f := newFixture()

	lastWash := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	trailer := &domain.Trailer{
		Plate:    "CTA9X87",
		LastWash: &lastWash,
	}

	f.trailerRepo.On("Create", mock.Anything, trailer).Return(nil)

	err := f.service.CreateTrailer(context.Background(), trailer)

	assert.NoError(t, err)
	assert.NotNil(t, trailer.NextWash)
	assert.Equal(t, lastWash.Add(domain.WashInterval), *trailer.NextWash)
}

// TestService_DeleteTrailer тестирует каскадное обнуление ссылки тягача
func TestService_DeleteTrailer(t *testing.T) {
	t.Run("сцепленный прицеп сначала расцепляется", func(t *testing.T) {
		f := newFixture()

		trailerID := uuid.New()
		ownerID := uuid.New()
		truck := &domain.Truck{
			ID:        uuid.New(),
			Plate:     "RTA2B34",
			OwnerID:   &ownerID,
			TrailerID: &trailerID,
		}

		f.truckRepo.On("GetByTrailerID", mock.Anything, trailerID).Return(truck, nil)
		f.truckRepo.On("SetTrailer", mock.Anything, truck.ID, (*uuid.UUID)(nil)).Return(nil)
		f.trailerRepo.On("Delete", mock.Anything, trailerID).Return(nil)
		f.ownerRepo.On("HasCoupledTrucks", mock.Anything, ownerID).Return(false, nil)
		f.ownerRepo.On("SetActive", mock.Anything, ownerID, false).Return(nil)

		err := f.service.DeleteTrailer(context.Background(), trailerID)

		assert.NoError(t, err)
		assert.Equal(t, 1, f.sync.count)
		f.truckRepo.AssertExpectations(t)
		f.ownerRepo.AssertExpectations(t)
	})

	t.Run("несцепленный прицеп удаляется сразу", func(t *testing.T) {
		f := newFixture()

		trailerID := uuid.New()

		f.truckRepo.On("GetByTrailerID", mock.Anything, trailerID).Return(nil, domain.ErrTruckNotFound)
		f.trailerRepo.On("Delete", mock.Anything, trailerID).Return(nil)

		err := f.service.DeleteTrailer(context.Background(), trailerID)

		assert.NoError(t, err)
		f.truckRepo.AssertNotCalled(t, "SetTrailer", mock.Anything, mock.Anything, mock.Anything)
	})
}

// TestService_CreateTruck тестирует создание тягача с менеджером
func TestService_CreateTruck(t *testing.T) {
	f := newFixture()

	managerID := uuid.New()
	ownerID := uuid.New()
	truck := &domain.Truck{
		Plate:     "RTA2B34",
		ManagerID: &managerID,
		OwnerID:   &ownerID,
	}

	f.truckRepo.On("Create", mock.Anything, truck).Return(nil)
	f.historyRepo.On("Open", mock.Anything, managerID, mock.Anything, mock.Anything).Return(nil)
	f.ownerRepo.On("HasCoupledTrucks", mock.Anything, ownerID).Return(false, nil)
	f.ownerRepo.On("SetActive", mock.Anything, ownerID, false).Return(nil)

	err := f.service.CreateTruck(context.Background(), truck)

	assert.NoError(t, err)
	assert.Equal(t, domain.TruckStatusActive, truck.Status)
	assert.Equal(t, 1, f.sync.count)
	f.historyRepo.AssertExpectations(t)
}

// TestService_CreateTruckWithTrailer тестирует проверку ссылки на прицеп при создании
func TestService_CreateTruckWithTrailer(t *testing.T) {
	trailerID := uuid.New()

	t.Run("несовпадение классификаций отклоняется", func(t *testing.T) {
		f := newFixture()

		truck := &domain.Truck{
			Plate:          "RTA2B34",
			Type:           domain.TruckTypeToco,
			Classification: domain.ClassificationFleet,
			TrailerID:      &trailerID,
		}
		trailer := &domain.Trailer{
			ID:             trailerID,
			Plate:          "CTA9X87",
			Classification: domain.ClassificationAggregated,
		}

		f.trailerRepo.On("GetByID", mock.Anything, trailerID).Return(trailer, nil)

		err := f.service.CreateTruck(context.Background(), truck)

		assert.ErrorIs(t, err, domain.ErrClassificationMismatch)
		f.truckRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("занятый прицеп отклоняется", func(t *testing.T) {
		f := newFixture()

		truck := &domain.Truck{
			Plate:          "RTA2B34",
			Type:           domain.TruckTypeToco,
			Classification: domain.ClassificationAggregated,
			TrailerID:      &trailerID,
		}
		trailer := &domain.Trailer{
			ID:             trailerID,
			Plate:          "CTA9X87",
			Classification: domain.ClassificationAggregated,
		}
		holder := &domain.Truck{ID: uuid.New(), Plate: "RTB5C67", TrailerID: &trailerID}

		f.trailerRepo.On("GetByID", mock.Anything, trailerID).Return(trailer, nil)
		f.truckRepo.On("GetByTrailerID", mock.Anything, trailerID).Return(holder, nil)

		err := f.service.CreateTruck(context.Background(), truck)

		assert.ErrorIs(t, err, domain.ErrTrailerAlreadyCoupled)
		f.truckRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("несуществующий прицеп отклоняется", func(t *testing.T) {
		f := newFixture()

		truck := &domain.Truck{
			Plate:     "RTA2B34",
			Type:      domain.TruckTypeToco,
			TrailerID: &trailerID,
		}

		f.trailerRepo.On("GetByID", mock.Anything, trailerID).Return(nil, domain.ErrTrailerNotFound)

		err := f.service.CreateTruck(context.Background(), truck)

		assert.ErrorIs(t, err, domain.ErrTrailerNotFound)
		f.truckRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("свободный прицеп с совпадающей классификацией принимается", func(t *testing.T) {
		f := newFixture()

		truck := &domain.Truck{
			Plate:          "RTA2B34",
			Type:           domain.TruckTypeToco,
			Classification: domain.ClassificationAggregated,
			TrailerID:      &trailerID,
		}
		trailer := &domain.Trailer{
			ID:             trailerID,
			Plate:          "CTA9X87",
			Classification: domain.ClassificationAggregated,
		}

		f.trailerRepo.On("GetByID", mock.Anything, trailerID).Return(trailer, nil)
		f.truckRepo.On("GetByTrailerID", mock.Anything, trailerID).Return(nil, domain.ErrTruckNotFound)
		f.truckRepo.On("Create", mock.Anything, truck).Return(nil)

		err := f.service.CreateTruck(context.Background(), truck)

		assert.NoError(t, err)
		assert.Equal(t, 1, f.sync.count)
		f.truckRepo.AssertExpectations(t)
	})
}

// TestService_CheckTrailerAvailability тестирует точечную проверку доступности
func TestService_CheckTrailerAvailability(t *testing.T) {
	t.Run("доступность берется по номеру прицепа", func(t *testing.T) {
		f := newFixture()

		trailer := &domain.Trailer{ID: uuid.New(), Plate: "CTA9X87"}

		f.trailerRepo.On("GetByID", mock.Anything, trailer.ID).Return(trailer, nil)
		f.trailerRepo.On("IsAvailable", mock.Anything, "CTA9X87").Return(true, nil)

		available, err := f.service.CheckTrailerAvailability(context.Background(), trailer.ID)

		assert.NoError(t, err)
		assert.True(t, available)
		f.trailerRepo.AssertExpectations(t)
	})

	t.Run("неизвестный прицеп возвращает ошибку", func(t *testing.T) {
		f := newFixture()

		trailerID := uuid.New()
		f.trailerRepo.On("GetByID", mock.Anything, trailerID).Return(nil, domain.ErrTrailerNotFound)

		available, err := f.service.CheckTrailerAvailability(context.Background(), trailerID)

		assert.ErrorIs(t, err, domain.ErrTrailerNotFound)
		assert.False(t, available)
		f.trailerRepo.AssertNotCalled(t, "IsAvailable", mock.Anything, mock.Anything)
	})
}

// TestService_UpdateTruck тестирует смену менеджера с ведением истории
func TestService_UpdateTruck(t *testing.T) {
	f := newFixture()

	oldManagerID := uuid.New()
	newManagerID := uuid.New()
	truckID := uuid.New()

	existing := &domain.Truck{
		ID:        truckID,
		Plate:     "RTA2B34",
		ManagerID: &oldManagerID,
	}
	updated := &domain.Truck{
		ID:        truckID,
		Plate:     "RTA2B34",
		ManagerID: &newManagerID,
	}

	f.truckRepo.On("GetByID", mock.Anything, truckID).Return(existing, nil)
	f.truckRepo.On("Update", mock.Anything, updated).Return(nil)
	f.historyRepo.On("CloseOpen", mock.Anything, oldManagerID, truckID, mock.Anything).Return(nil)
	f.historyRepo.On("Open", mock.Anything, newManagerID, truckID, mock.Anything).Return(nil)

	err := f.service.UpdateTruck(context.Background(), updated)

	assert.NoError(t, err)
	assert.Equal(t, 1, f.sync.count)
	f.historyRepo.AssertExpectations(t)
}

// TestService_DeleteTruck тестирует удаление тягача
func TestService_DeleteTruck(t *testing.T) {
	f := newFixture()

	managerID := uuid.New()
	ownerID := uuid.New()
	truck := &domain.Truck{
		ID:        uuid.New(),
		Plate:     "RTA2B34",
		ManagerID: &managerID,
		OwnerID:   &ownerID,
	}

	f.truckRepo.On("GetByID", mock.Anything, truck.ID).Return(truck, nil)
	f.truckRepo.On("Delete", mock.Anything, truck.ID).Return(nil)
	f.historyRepo.On("CloseOpen", mock.Anything, managerID, truck.ID, mock.Anything).Return(nil)
	f.ownerRepo.On("HasCoupledTrucks", mock.Anything, ownerID).Return(false, nil)
	f.ownerRepo.On("SetActive", mock.Anything, ownerID, false).Return(nil)

	err := f.service.DeleteTruck(context.Background(), truck.ID)

	assert.NoError(t, err)
	assert.Equal(t, 1, f.sync.count)
	f.ownerRepo.AssertExpectations(t)
}

// TestNormalizeLimit тестирует нормализацию лимита пагинации
func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, defaultListLimit, normalizeLimit(0))
	assert.Equal(t, defaultListLimit, normalizeLimit(-5))
	assert.Equal(t, 10, normalizeLimit(10))
	assert.Equal(t, maxListLimit, normalizeLimit(10000))
}
