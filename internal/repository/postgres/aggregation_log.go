package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/repository"
)

type aggregationLogRepository struct {
	db *pgxpool.Pool
}

func NewAggregationLogRepository(db *pgxpool.Pool) repository.AggregationLogRepository {
	return &aggregationLogRepository{db: db}
}

func (r *aggregationLogRepository) Create(ctx context.Context, entry *domain.AggregationLog) error {
	query := `
		INSERT INTO aggregation_logs (id, type, truck_id, truck_plate, prev_trailer_plate, new_trailer_plate, description, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	entry.ID = uuid.New()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.Type,
		entry.TruckID,
		entry.TruckPlate,
		entry.PrevTrailerPlate,
		entry.NewTrailerPlate,
		entry.Description,
		entry.Timestamp,
	)

	return err
}

func (r *aggregationLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AggregationLog, error) {
	query := `
		SELECT id, type, truck_id, truck_plate, prev_trailer_plate, new_trailer_plate, description, timestamp
		FROM aggregation_logs
		WHERE id = $1
	`

	entry := &domain.AggregationLog{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.Type,
		&entry.TruckID,
		&entry.TruckPlate,
		&entry.PrevTrailerPlate,
		&entry.NewTrailerPlate,
		&entry.Description,
		&entry.Timestamp,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAggregationLogNotFound
		}
		return nil, err
	}

	return entry, nil
}

func (r *aggregationLogRepository) List(ctx context.Context, filter domain.AggregationLogFilter) ([]*domain.AggregationLog, error) {
	// Условия собираются динамически, значения только через плейсхолдеры
	query := `
		SELECT id, type, truck_id, truck_plate, prev_trailer_plate, new_trailer_plate, description, timestamp
		FROM aggregation_logs
		WHERE 1=1
	`

	var args []interface{}
	argNum := 1

	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argNum)
		args = append(args, filter.Type)
		argNum++
	}

	if filter.Plate != "" {
		// Номер сверяется и с тягачом, и с прицепами записи
		plate := domain.NormalizePlate(filter.Plate)
		query += fmt.Sprintf(" AND (truck_plate = $%d OR prev_trailer_plate = $%d OR new_trailer_plate = $%d)", argNum, argNum, argNum)
		args = append(args, plate)
		argNum++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", argNum)
		args = append(args, *filter.From)
		argNum++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", argNum)
		args = append(args, *filter.To)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.AggregationLog
	for rows.Next() {
		entry := &domain.AggregationLog{}
		err := rows.Scan(
			&entry.ID,
			&entry.Type,
			&entry.TruckID,
			&entry.TruckPlate,
			&entry.PrevTrailerPlate,
			&entry.NewTrailerPlate,
			&entry.Description,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
