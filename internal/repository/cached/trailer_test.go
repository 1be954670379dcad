package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/rodomax/fleet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTrailerRepository - mock нижележащего репозитория прицепов
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

// fakeCache - кэш в памяти; промах обозначается redis.Nil, как у настоящего клиента
type fakeCache struct {
	values map[string]string
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return "", redisv9.Nil
	}
	return value, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

// TestTrailerRepository_IsAvailable тестирует кэширование проверки доступности
func TestTrailerRepository_IsAvailable(t *testing.T) {
	t.Run("попадание в кэш не трогает БД", func(t *testing.T) {
		repo := new(MockTrailerRepository)
		cache := newFakeCache()
		cache.values[availabilityCachePrefix+"CTA9X87"] = "1"

		cached := NewTrailerRepository(repo, cache)

		available, err := cached.IsAvailable(context.Background(), "CTA9X87")

		assert.NoError(t, err)
		assert.True(t, available)
		repo.AssertNotCalled(t, "IsAvailable", mock.Anything, mock.Anything)
	})

	t.Run("промах идет в БД и сохраняет результат", func(t *testing.T) {
		repo := new(MockTrailerRepository)
		cache := newFakeCache()

		repo.On("IsAvailable", mock.Anything, "CTA9X87").Return(false, nil)

		cached := NewTrailerRepository(repo, cache)

		available, err := cached.IsAvailable(context.Background(), "CTA9X87")

		assert.NoError(t, err)
		assert.False(t, available)
		assert.Equal(t, "0", cache.values[availabilityCachePrefix+"CTA9X87"])
		repo.AssertExpectations(t)
	})

	t.Run("номер нормализуется для ключа кэша", func(t *testing.T) {
		repo := new(MockTrailerRepository)
		cache := newFakeCache()
		cache.values[availabilityCachePrefix+"CTA9X87"] = "1"

		cached := NewTrailerRepository(repo, cache)

		available, err := cached.IsAvailable(context.Background(), "cta-9x87")

		assert.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("ошибка кэша не критична", func(t *testing.T) {
		repo := new(MockTrailerRepository)
		cache := newFakeCache()
		cache.getErr = errors.New("connection refused")

		repo.On("IsAvailable", mock.Anything, "CTA9X87").Return(true, nil)

		cached := NewTrailerRepository(repo, cache)

		available, err := cached.IsAvailable(context.Background(), "CTA9X87")

		assert.NoError(t, err)
		assert.True(t, available)
	})
}

// TestTrailerRepository_Invalidation тестирует сброс кэша при мутациях
func TestTrailerRepository_Invalidation(t *testing.T) {
	t.Run("обновление прицепа сбрасывает кэш доступности", func(t *testing.T) {
		repo := new(MockTrailerRepository)
		cache := newFakeCache()
		cache.values[availabilityCachePrefix+"CTA9X87"] = "1"

		trailer := &domain.Trailer{ID: uuid.New(), Plate: "CTA9X87"}
		repo.On("Update", mock.Anything, trailer).Return(nil)

		cached := NewTrailerRepository(repo, cache)

		err := cached.Update(context.Background(), trailer)

		assert.NoError(t, err)
		assert.NotContains(t, cache.values, availabilityCachePrefix+"CTA9X87")
	})

	t.Run("удаление прицепа сбрасывает кэш по номеру", func(t *testing.T) {
		repo := new(MockTrailerRepository)
		cache := newFakeCache()
		cache.values[availabilityCachePrefix+"CTA9X87"] = "0"

		trailer := &domain.Trailer{ID: uuid.New(), Plate: "CTA9X87"}
		repo.On("GetByID", mock.Anything, trailer.ID).Return(trailer, nil)
		repo.On("Delete", mock.Anything, trailer.ID).Return(nil)

		cached := NewTrailerRepository(repo, cache)

		err := cached.Delete(context.Background(), trailer.ID)

		assert.NoError(t, err)
		assert.NotContains(t, cache.values, availabilityCachePrefix+"CTA9X87")
	})
}
