package cached

import (
	"context"
	"time"

	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/repository"
)

const (
	availabilityCachePrefix = "trailer:available:"
	// Короткий TTL: доступность меняется каждым сцеплением,
	// а инвалидировать кэш из сервиса агрегации напрямую нельзя
	availabilityCacheTTL = 1 * time.Minute
)

// Cache - минимальный контракт кэша; реализуется redis.Client.
// Промах обозначается ошибкой redis.Nil
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// TrailerRepository добавляет кэширование проверки доступности прицепа
type TrailerRepository struct {
	repo  repository.TrailerRepository
	cache Cache
}

// NewTrailerRepository создает новый кэшируемый trailer repository
func NewTrailerRepository(repo repository.TrailerRepository, cache Cache) *TrailerRepository {
	return &TrailerRepository{
		repo:  repo,
		cache: cache,
	}
}

// IsAvailable проверяет доступность прицепа по номеру (с кэшированием)
func (r *TrailerRepository) IsAvailable(ctx context.Context, plate string) (bool, error) {
	cacheKey := availabilityCachePrefix + domain.NormalizePlate(plate)

	// 1. Проверяем кэш (формат: "0" или "1")
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		return cached == "1", nil
	}

	if err != redisv9.Nil {
		// Ошибка кэша не критична - продолжаем работу с БД
	}

	// 2. Cache miss - идем в БД
	available, err := r.repo.IsAvailable(ctx, plate)
	if err != nil {
		return false, err
	}

	// 3. Сохраняем результат в кэш; ошибку записи игнорируем
	cacheValue := "0"
	if available {
		cacheValue = "1"
	}
	_ = r.cache.Set(ctx, cacheKey, cacheValue, availabilityCacheTTL)

	return available, nil
}

// Create создает прицеп и инвалидирует кэш доступности
func (r *TrailerRepository) Create(ctx context.Context, trailer *domain.Trailer) error {
	if err := r.repo.Create(ctx, trailer); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, availabilityCachePrefix+trailer.Plate)
	return nil
}

// GetByID получает прицеп по ID
func (r *TrailerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trailer, error) {
	// Полные данные не кэшируем - используются редко
	return r.repo.GetByID(ctx, id)
}

// GetByPlate получает прицеп по номеру
func (r *TrailerRepository) GetByPlate(ctx context.Context, plate string) (*domain.Trailer, error) {
	return r.repo.GetByPlate(ctx, plate)
}

// Update обновляет прицеп и инвалидирует кэш доступности
// (смена категории меняет доступность)
func (r *TrailerRepository) Update(ctx context.Context, trailer *domain.Trailer) error {
	if err := r.repo.Update(ctx, trailer); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, availabilityCachePrefix+trailer.Plate)
	return nil
}

// Delete удаляет прицеп
func (r *TrailerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Номер для точной инвалидации берем до удаления
	trailer, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, availabilityCachePrefix+trailer.Plate)
	return nil
}

// List получает все прицепы
func (r *TrailerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Trailer, error) {
	// Списки не кэшируем
	return r.repo.List(ctx, limit, offset)
}

// ListAvailable возвращает доступные прицепы
func (r *TrailerRepository) ListAvailable(ctx context.Context) ([]*domain.Trailer, error) {
	// Список доступных всегда берем из БД: он и так один запрос,
	// а устаревший ответ здесь дороже, чем экономия
	return r.repo.ListAvailable(ctx)
}
