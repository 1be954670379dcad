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

type ownerRepository struct {
	db *pgxpool.Pool
}

func NewOwnerRepository(db *pgxpool.Pool) repository.OwnerRepository {
	return &ownerRepository{db: db}
}

func (r *ownerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	query := `
		INSERT INTO owners (id, code, name, kind, active, whatsapp, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	owner.ID = uuid.New()
	owner.CreatedAt = time.Now()
	owner.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		owner.ID,
		owner.Code,
		owner.Name,
		owner.Kind,
		owner.Active,
		owner.WhatsApp,
		owner.Notes,
		owner.CreatedAt,
		owner.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOwnerAlreadyExists
		}
		return err
	}

	return nil
}

func (r *ownerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Owner, error) {
	query := `
		SELECT id, code, name, kind, active, whatsapp, notes, created_at, updated_at
		FROM owners
		WHERE id = $1
	`

	owner := &domain.Owner{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&owner.ID,
		&owner.Code,
		&owner.Name,
		&owner.Kind,
		&owner.Active,
		&owner.WhatsApp,
		&owner.Notes,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, err
	}

	return owner, nil
}

func (r *ownerRepository) GetByCode(ctx context.Context, code string) (*domain.Owner, error) {
	query := `
		SELECT id, code, name, kind, active, whatsapp, notes, created_at, updated_at
		FROM owners
		WHERE code = $1
	`

	owner := &domain.Owner{}
	err := r.db.QueryRow(ctx, query, code).Scan(
		&owner.ID,
		&owner.Code,
		&owner.Name,
		&owner.Kind,
		&owner.Active,
		&owner.WhatsApp,
		&owner.Notes,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOwnerNotFound
		}
		return nil, err
	}

	return owner, nil
}

func (r *ownerRepository) Update(ctx context.Context, owner *domain.Owner) error {
	query := `
		UPDATE owners
		SET code = $2, name = $3, kind = $4, whatsapp = $5, notes = $6, updated_at = $7
		WHERE id = $1
	`

	owner.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		owner.ID,
		owner.Code,
		owner.Name,
		owner.Kind,
		owner.WhatsApp,
		owner.Notes,
		owner.UpdatedAt,
	)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrOwnerNotFound
	}

	return nil
}

func (r *ownerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Ссылки trucks.owner_id обнуляются ON DELETE SET NULL
	result, err := r.db.Exec(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrOwnerNotFound
	}

	return nil
}

func (r *ownerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Owner, error) {
	query := `
		SELECT id, code, name, kind, active, whatsapp, notes, created_at, updated_at
		FROM owners
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owners []*domain.Owner
	for rows.Next() {
		owner := &domain.Owner{}
		err := rows.Scan(
			&owner.ID,
			&owner.Code,
			&owner.Name,
			&owner.Kind,
			&owner.Active,
			&owner.WhatsApp,
			&owner.Notes,
			&owner.CreatedAt,
			&owner.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		owners = append(owners, owner)
	}

	return owners, nil
}

func (r *ownerRepository) HasCoupledTrucks(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM trucks WHERE owner_id = $1 AND trailer_id IS NOT NULL
		)
	`

	var has bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&has); err != nil {
		return false, err
	}

	return has, nil
}

func (r *ownerRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE owners SET active = $2, updated_at = $3 WHERE id = $1`,
		id, active, time.Now(),
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrOwnerNotFound
	}

	return nil
}
