package domain

import (
	"time"

	"github.com/google/uuid"
)

// Manager - менеджер парка ("gestor")
type Manager struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	RevenueTarget float64   `json:"revenue_target,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Validate проверяет корректность данных менеджера
func (m *Manager) Validate() error {
	if m.Name == "" {
		return ErrInvalidManagerData
	}
	return nil
}

// ManagerHistory - период закрепления менеджера за тягачом.
// Открытый период имеет EndDate == nil; при смене менеджера или
// дезагрегации тягача период закрывается текущей датой.
type ManagerHistory struct {
	ID        uuid.UUID  `json:"id"`
	ManagerID uuid.UUID  `json:"manager_id"`
	TruckID   uuid.UUID  `json:"truck_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
