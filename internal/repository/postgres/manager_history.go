package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/repository"
)

type managerHistoryRepository struct {
	db *pgxpool.Pool
}

func NewManagerHistoryRepository(db *pgxpool.Pool) repository.ManagerHistoryRepository {
	return &managerHistoryRepository{db: db}
}

func (r *managerHistoryRepository) Open(ctx context.Context, managerID, truckID uuid.UUID, start time.Time) error {
	query := `
		INSERT INTO manager_history (id, manager_id, truck_id, start_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, uuid.New(), managerID, truckID, start, time.Now())
	return err
}

func (r *managerHistoryRepository) CloseOpen(ctx context.Context, managerID, truckID uuid.UUID, end time.Time) error {
	// Открытого периода может не быть (например, тягач создан без менеджера) -
	// нулевое число строк здесь не ошибка
	query := `
		UPDATE manager_history
		SET end_date = $3
		WHERE manager_id = $1 AND truck_id = $2 AND end_date IS NULL
	`

	_, err := r.db.Exec(ctx, query, managerID, truckID, end)
	return err
}

func (r *managerHistoryRepository) ListByTruck(ctx context.Context, truckID uuid.UUID) ([]*domain.ManagerHistory, error) {
	query := `
		SELECT id, manager_id, truck_id, start_date, end_date, created_at
		FROM manager_history
		WHERE truck_id = $1
		ORDER BY start_date DESC
	`

	rows, err := r.db.Query(ctx, query, truckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []*domain.ManagerHistory
	for rows.Next() {
		period := &domain.ManagerHistory{}
		err := rows.Scan(
			&period.ID,
			&period.ManagerID,
			&period.TruckID,
			&period.StartDate,
			&period.EndDate,
			&period.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}

	return periods, nil
}
