package domain

import (
	"time"

	"github.com/google/uuid"
)

// Driver - водитель ("motorista"). Водитель закреплен максимум за одним
// тягачом: ссылка TruckID держится уникальной на уровне схемы, переназначение
// на другой тягач молча снимает предыдущее закрепление.
type Driver struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CPF       string     `json:"cpf,omitempty"`
	WhatsApp  string     `json:"whatsapp,omitempty"`
	TruckID   *uuid.UUID `json:"truck_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Связанные данные (не хранятся в БД, заполняются при необходимости)
	Truck *Truck `json:"truck,omitempty"`
}

// Validate проверяет корректность данных водителя
func (d *Driver) Validate() error {
	if d.Name == "" {
		return ErrInvalidDriverData
	}
	return nil
}
