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

type trailerRepository struct {
	db *pgxpool.Pool
}

func NewTrailerRepository(db *pgxpool.Pool) repository.TrailerRepository {
	return &trailerRepository{db: db}
}

const trailerColumns = `
	id, plate, brand, model, year, color, type, classification, status,
	last_wash, next_wash, polyethylene, cones, tracker, easy_tarp, spare_tire,
	location, notes, created_at, updated_at
`

func (r *trailerRepository) Create(ctx context.Context, trailer *domain.Trailer) error {
	query := `
		INSERT INTO trailers (` + trailerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	trailer.ID = uuid.New()
	trailer.CreatedAt = time.Now()
	trailer.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		trailer.ID,
		trailer.Plate,
		trailer.Brand,
		trailer.Model,
		trailer.Year,
		trailer.Color,
		trailer.Type,
		trailer.Classification,
		trailer.Status,
		trailer.LastWash,
		trailer.NextWash,
		trailer.Polyethylene,
		trailer.Cones,
		trailer.Tracker,
		trailer.EasyTarp,
		trailer.SpareTire,
		trailer.Location,
		trailer.Notes,
		trailer.CreatedAt,
		trailer.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTrailerAlreadyExists
		}
		return err
	}

	return nil
}

func (r *trailerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trailer, error) {
	query := `SELECT ` + trailerColumns + ` FROM trailers WHERE id = $1`
	return r.scanTrailer(r.db.QueryRow(ctx, query, id))
}

func (r *trailerRepository) GetByPlate(ctx context.Context, plate string) (*domain.Trailer, error) {
	query := `SELECT ` + trailerColumns + ` FROM trailers WHERE plate = $1`
	return r.scanTrailer(r.db.QueryRow(ctx, query, domain.NormalizePlate(plate)))
}

func (r *trailerRepository) Update(ctx context.Context, trailer *domain.Trailer) error {
	query := `
		UPDATE trailers
		SET plate = $2, brand = $3, model = $4, year = $5, color = $6,
			type = $7, classification = $8, status = $9,
			last_wash = $10, next_wash = $11,
			polyethylene = $12, cones = $13, tracker = $14, easy_tarp = $15, spare_tire = $16,
			location = $17, notes = $18, updated_at = $19
		WHERE id = $1
	`

	trailer.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		trailer.ID,
		trailer.Plate,
		trailer.Brand,
		trailer.Model,
		trailer.Year,
		trailer.Color,
		trailer.Type,
		trailer.Classification,
		trailer.Status,
		trailer.LastWash,
		trailer.NextWash,
		trailer.Polyethylene,
		trailer.Cones,
		trailer.Tracker,
		trailer.EasyTarp,
		trailer.SpareTire,
		trailer.Location,
		trailer.Notes,
		trailer.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTrailerAlreadyExists
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTrailerNotFound
	}

	return nil
}

func (r *trailerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM trailers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTrailerNotFound
	}

	return nil
}

func (r *trailerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Trailer, error) {
	query := `SELECT ` + trailerColumns + ` FROM trailers ORDER BY plate LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectTrailers(rows)
}

func (r *trailerRepository) ListAvailable(ctx context.Context) ([]*domain.Trailer, error) {
	// Доступен только агрегируемый прицеп, не сцепленный ни с одним тягачом
	query := `
		SELECT ` + trailerColumns + `
		FROM trailers t
		WHERE t.classification = 'agregado'
		  AND NOT EXISTS (SELECT 1 FROM trucks WHERE trailer_id = t.id)
		ORDER BY t.plate
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectTrailers(rows)
}

func (r *trailerRepository) IsAvailable(ctx context.Context, plate string) (bool, error) {
	query := `
		SELECT t.classification = 'agregado'
		   AND NOT EXISTS (SELECT 1 FROM trucks WHERE trailer_id = t.id)
		FROM trailers t
		WHERE t.plate = $1
	`

	var available bool
	err := r.db.QueryRow(ctx, query, domain.NormalizePlate(plate)).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrTrailerNotFound
		}
		return false, err
	}

	return available, nil
}

func (r *trailerRepository) scanTrailer(row pgx.Row) (*domain.Trailer, error) {
	trailer := &domain.Trailer{}
	err := row.Scan(
		&trailer.ID,
		&trailer.Plate,
		&trailer.Brand,
		&trailer.Model,
		&trailer.Year,
		&trailer.Color,
		&trailer.Type,
		&trailer.Classification,
		&trailer.Status,
		&trailer.LastWash,
		&trailer.NextWash,
		&trailer.Polyethylene,
		&trailer.Cones,
		&trailer.Tracker,
		&trailer.EasyTarp,
		&trailer.SpareTire,
		&trailer.Location,
		&trailer.Notes,
		&trailer.CreatedAt,
		&trailer.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTrailerNotFound
		}
		return nil, err
	}

	return trailer, nil
}

func (r *trailerRepository) collectTrailers(rows pgx.Rows) ([]*domain.Trailer, error) {
	var trailers []*domain.Trailer
	for rows.Next() {
		trailer := &domain.Trailer{}
		err := rows.Scan(
			&trailer.ID,
			&trailer.Plate,
			&trailer.Brand,
			&trailer.Model,
			&trailer.Year,
			&trailer.Color,
			&trailer.Type,
			&trailer.Classification,
			&trailer.Status,
			&trailer.LastWash,
			&trailer.NextWash,
			&trailer.Polyethylene,
			&trailer.Cones,
			&trailer.Tracker,
			&trailer.EasyTarp,
			&trailer.SpareTire,
			&trailer.Location,
			&trailer.Notes,
			&trailer.CreatedAt,
			&trailer.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		trailers = append(trailers, trailer)
	}

	return trailers, nil
}
