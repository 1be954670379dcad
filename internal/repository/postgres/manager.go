package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/repository"
)

type managerRepository struct {
	db *pgxpool.Pool
}

func NewManagerRepository(db *pgxpool.Pool) repository.ManagerRepository {
	return &managerRepository{db: db}
}

func (r *managerRepository) Create(ctx context.Context, manager *domain.Manager) error {
	query := `
		INSERT INTO managers (id, name, revenue_target, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	manager.ID = uuid.New()
	manager.CreatedAt = time.Now()
	manager.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		manager.ID,
		manager.Name,
		manager.RevenueTarget,
		manager.CreatedAt,
		manager.UpdatedAt,
	)

	return err
}

func (r *managerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Manager, error) {
	query := `
		SELECT id, name, revenue_target, created_at, updated_at
		FROM managers
		WHERE id = $1
	`

	manager := &domain.Manager{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&manager.ID,
		&manager.Name,
		&manager.RevenueTarget,
		&manager.CreatedAt,
		&manager.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrManagerNotFound
		}
		return nil, err
	}

	return manager, nil
}

func (r *managerRepository) Update(ctx context.Context, manager *domain.Manager) error {
	query := `
		UPDATE managers
		SET name = $2, revenue_target = $3, updated_at = $4
		WHERE id = $1
	`

	manager.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		manager.ID,
		manager.Name,
		manager.RevenueTarget,
		manager.UpdatedAt,
	)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrManagerNotFound
	}

	return nil
}

func (r *managerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Ссылки trucks.manager_id обнуляются ON DELETE SET NULL,
	// история закрепления удаляется каскадно
	result, err := r.db.Exec(ctx, `DELETE FROM managers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrManagerNotFound
	}

	return nil
}

func (r *managerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Manager, error) {
	query := `
		SELECT id, name, revenue_target, created_at, updated_at
		FROM managers
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var managers []*domain.Manager
	for rows.Next() {
		manager := &domain.Manager{}
		err := rows.Scan(
			&manager.ID,
			&manager.Name,
			&manager.RevenueTarget,
			&manager.CreatedAt,
			&manager.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		managers = append(managers, manager)
	}

	return managers, nil
}
