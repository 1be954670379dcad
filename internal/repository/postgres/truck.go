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

type truckRepository struct {
	db *pgxpool.Pool
}

func NewTruckRepository(db *pgxpool.Pool) repository.TruckRepository {
	return &truckRepository{db: db}
}

const truckColumns = `
	id, plate, year, color, flow, type, classification, status,
	owner_id, manager_id, trailer_id, notes, created_at, updated_at
`

func (r *truckRepository) Create(ctx context.Context, truck *domain.Truck) error {
	query := `
		INSERT INTO trucks (` + truckColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	truck.ID = uuid.New()
	truck.CreatedAt = time.Now()
	truck.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		truck.ID,
		truck.Plate,
		truck.Year,
		truck.Color,
		truck.Flow,
		truck.Type,
		truck.Classification,
		truck.Status,
		truck.OwnerID,
		truck.ManagerID,
		truck.TrailerID,
		truck.Notes,
		truck.CreatedAt,
		truck.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTruckAlreadyExists
		}
		return err
	}

	return nil
}

func (r *truckRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks WHERE id = $1`
	return r.scanTruck(r.db.QueryRow(ctx, query, id))
}

func (r *truckRepository) GetByPlate(ctx context.Context, plate string) (*domain.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks WHERE plate = $1`
	return r.scanTruck(r.db.QueryRow(ctx, query, domain.NormalizePlate(plate)))
}

func (r *truckRepository) GetByTrailerID(ctx context.Context, trailerID uuid.UUID) (*domain.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks WHERE trailer_id = $1`
	return r.scanTruck(r.db.QueryRow(ctx, query, trailerID))
}

func (r *truckRepository) Update(ctx context.Context, truck *domain.Truck) error {
	// trailer_id и status намеренно не трогаем: переходы состояния
	// идут только через SetTrailer/SetStatus
	query := `
		UPDATE trucks
		SET plate = $2, year = $3, color = $4, flow = $5, type = $6,
			classification = $7, owner_id = $8, manager_id = $9, notes = $10, updated_at = $11
		WHERE id = $1
	`

	truck.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		truck.ID,
		truck.Plate,
		truck.Year,
		truck.Color,
		truck.Flow,
		truck.Type,
		truck.Classification,
		truck.OwnerID,
		truck.ManagerID,
		truck.Notes,
		truck.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTruckAlreadyExists
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTruckNotFound
	}

	return nil
}

func (r *truckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// drivers.truck_id обнуляется схемой (ON DELETE SET NULL)
	result, err := r.db.Exec(ctx, `DELETE FROM trucks WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTruckNotFound
	}

	return nil
}

func (r *truckRepository) List(ctx context.Context, limit, offset int) ([]*domain.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks ORDER BY plate LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trucks []*domain.Truck
	for rows.Next() {
		truck := &domain.Truck{}
		err := rows.Scan(
			&truck.ID,
			&truck.Plate,
			&truck.Year,
			&truck.Color,
			&truck.Flow,
			&truck.Type,
			&truck.Classification,
			&truck.Status,
			&truck.OwnerID,
			&truck.ManagerID,
			&truck.TrailerID,
			&truck.Notes,
			&truck.CreatedAt,
			&truck.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		trucks = append(trucks, truck)
	}

	return trucks, nil
}

func (r *truckRepository) SetTrailer(ctx context.Context, truckID uuid.UUID, trailerID *uuid.UUID) error {
	// Блокировка строки тягача сериализует конкурирующие переходы по одной
	// паре; гонку за один прицеп между разными тягачами ловит UNIQUE(trailer_id)
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var current *uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT trailer_id FROM trucks WHERE id = $1 FOR UPDATE`,
		truckID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTruckNotFound
		}
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE trucks SET trailer_id = $2, updated_at = $3 WHERE id = $1`,
		truckID, trailerID, time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTrailerAlreadyCoupled
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *truckRepository) SetStatus(ctx context.Context, truckID uuid.UUID, status domain.TruckStatus, clearManager bool) error {
	var query string
	if clearManager {
		query = `UPDATE trucks SET status = $2, manager_id = NULL, updated_at = $3 WHERE id = $1`
	} else {
		query = `UPDATE trucks SET status = $2, updated_at = $3 WHERE id = $1`
	}

	result, err := r.db.Exec(ctx, query, truckID, status, time.Now())
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTruckNotFound
	}

	return nil
}

func (r *truckRepository) ListRoster(ctx context.Context) ([]*domain.RosterEntry, error) {
	// Один join-запрос на весь парк; дубликатов по тягачу нет, так как
	// и прицеп, и водитель закреплены максимум за одним тягачом
	query := `
		SELECT t.id, t.plate,
			COALESCE(tr.plate, ''),
			COALESCE(d.name, ''), COALESCE(d.cpf, ''),
			t.type, t.flow,
			COALESCE(o.code, ''), COALESCE(o.name, ''),
			t.status
		FROM trucks t
		LEFT JOIN trailers tr ON tr.id = t.trailer_id
		LEFT JOIN drivers d ON d.truck_id = t.id
		LEFT JOIN owners o ON o.id = t.owner_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.RosterEntry
	for rows.Next() {
		entry := &domain.RosterEntry{}
		err := rows.Scan(
			&entry.TruckID,
			&entry.Plate,
			&entry.TrailerPlate,
			&entry.DriverName,
			&entry.DriverCPF,
			&entry.Type,
			&entry.Flow,
			&entry.OwnerCode,
			&entry.OwnerName,
			&entry.Status,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *truckRepository) scanTruck(row pgx.Row) (*domain.Truck, error) {
	truck := &domain.Truck{}
	err := row.Scan(
		&truck.ID,
		&truck.Plate,
		&truck.Year,
		&truck.Color,
		&truck.Flow,
		&truck.Type,
		&truck.Classification,
		&truck.Status,
		&truck.OwnerID,
		&truck.ManagerID,
		&truck.TrailerID,
		&truck.Notes,
		&truck.CreatedAt,
		&truck.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTruckNotFound
		}
		return nil, err
	}

	return truck, nil
}
