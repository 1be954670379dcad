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

type driverRepository struct {
	db *pgxpool.Pool
}

func NewDriverRepository(db *pgxpool.Pool) repository.DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, name, cpf, whatsapp, truck_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	driver.ID = uuid.New()
	driver.CreatedAt = time.Now()
	driver.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		driver.ID,
		driver.Name,
		driver.CPF,
		driver.WhatsApp,
		driver.TruckID,
		driver.CreatedAt,
		driver.UpdatedAt,
	)

	return err
}

func (r *driverRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Driver, error) {
	query := `
		SELECT id, name, cpf, whatsapp, truck_id, created_at, updated_at
		FROM drivers
		WHERE id = $1
	`

	return r.scanDriver(r.db.QueryRow(ctx, query, id))
}

func (r *driverRepository) GetByTruckID(ctx context.Context, truckID uuid.UUID) (*domain.Driver, error) {
	query := `
		SELECT id, name, cpf, whatsapp, truck_id, created_at, updated_at
		FROM drivers
		WHERE truck_id = $1
	`

	return r.scanDriver(r.db.QueryRow(ctx, query, truckID))
}

func (r *driverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	// Закрепление за тягачом меняется только через AssignTruck/Unassign
	query := `
		UPDATE drivers
		SET name = $2, cpf = $3, whatsapp = $4, updated_at = $5
		WHERE id = $1
	`

	driver.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		driver.ID,
		driver.Name,
		driver.CPF,
		driver.WhatsApp,
		driver.UpdatedAt,
	)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrDriverNotFound
	}

	return nil
}

func (r *driverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrDriverNotFound
	}

	return nil
}

func (r *driverRepository) List(ctx context.Context, limit, offset int) ([]*domain.Driver, error) {
	query := `
		SELECT id, name, cpf, whatsapp, truck_id, created_at, updated_at
		FROM drivers
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		driver := &domain.Driver{}
		err := rows.Scan(
			&driver.ID,
			&driver.Name,
			&driver.CPF,
			&driver.WhatsApp,
			&driver.TruckID,
			&driver.CreatedAt,
			&driver.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	return drivers, nil
}

func (r *driverRepository) AssignTruck(ctx context.Context, driverID, truckID uuid.UUID) error {
	// Снятие предыдущего водителя и новое закрепление идут одной транзакцией,
	// иначе UNIQUE на truck_id отвергнет перенос между водителями
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE drivers SET truck_id = NULL, updated_at = $3 WHERE truck_id = $2 AND id <> $1`,
		driverID, truckID, time.Now(),
	)
	if err != nil {
		return err
	}

	result, err := tx.Exec(ctx,
		`UPDATE drivers SET truck_id = $2, updated_at = $3 WHERE id = $1`,
		driverID, truckID, time.Now(),
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrDriverNotFound
	}

	return tx.Commit(ctx)
}

func (r *driverRepository) Unassign(ctx context.Context, driverID uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`UPDATE drivers SET truck_id = NULL, updated_at = $2 WHERE id = $1`,
		driverID, time.Now(),
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrDriverNotFound
	}

	return nil
}

func (r *driverRepository) scanDriver(row pgx.Row) (*domain.Driver, error) {
	driver := &domain.Driver{}
	err := row.Scan(
		&driver.ID,
		&driver.Name,
		&driver.CPF,
		&driver.WhatsApp,
		&driver.TruckID,
		&driver.CreatedAt,
		&driver.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDriverNotFound
		}
		return nil, err
	}

	return driver, nil
}
