package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TruckFlow представляет поток перевозки (значения хранятся как в исходной базе)
type TruckFlow string

const (
	FlowSlag TruckFlow = "escoria"
	FlowOre  TruckFlow = "minerio"
)

// Display возвращает отображаемое название потока
func (f TruckFlow) Display() string {
	switch f {
	case FlowSlag:
		return "Escória"
	case FlowOre:
		return "Minério"
	default:
		return ""
	}
}

// TruckType представляет тип тягача
type TruckType string

const (
	// TruckTypeBiTruck - конструктивно не может нести прицеп
	TruckTypeBiTruck TruckType = "bi_truck"
	TruckTypeToco    TruckType = "toco"
	TruckTypeTrucado TruckType = "trucado"
)

// Display возвращает отображаемое название типа
func (t TruckType) Display() string {
	switch t {
	case TruckTypeBiTruck:
		return "Bi-truck"
	case TruckTypeToco:
		return "Toco"
	case TruckTypeTrucado:
		return "Trucado"
	default:
		return ""
	}
}

// TruckStatus представляет статус тягача в парке
type TruckStatus string

const (
	TruckStatusActive        TruckStatus = "ativo"
	TruckStatusStopped       TruckStatus = "parado"
	TruckStatusDisaggregated TruckStatus = "desagregado"
)

// Display возвращает отображаемое название статуса
func (s TruckStatus) Display() string {
	switch s {
	case TruckStatusActive:
		return "Ativo"
	case TruckStatusStopped:
		return "Parado"
	case TruckStatusDisaggregated:
		return "Desagregado"
	default:
		return ""
	}
}

// Valid проверяет, что статус входит в допустимый набор
func (s TruckStatus) Valid() bool {
	switch s {
	case TruckStatusActive, TruckStatusStopped, TruckStatusDisaggregated:
		return true
	}
	return false
}

// Classification представляет категорию принадлежности техники
type Classification string

const (
	ClassificationAggregated Classification = "agregado"
	ClassificationFleet      Classification = "frota"
	ClassificationThirdParty Classification = "terceiro"
)

// Truck - тягач ("cavalo"). Ссылка на прицеп живет на тягаче:
// обратная ссылка прицеп->тягач выводится запросом, поэтому двусторонняя
// согласованность держится самой схемой (UNIQUE на trailer_id).
type Truck struct {
	ID             uuid.UUID      `json:"id"`
	Plate          string         `json:"plate"`
	Year           int            `json:"year,omitempty"`
	Color          string         `json:"color,omitempty"`
	Flow           TruckFlow      `json:"flow,omitempty"`
	Type           TruckType      `json:"type,omitempty"`
	Classification Classification `json:"classification,omitempty"`
	Status         TruckStatus    `json:"status,omitempty"`
	OwnerID        *uuid.UUID     `json:"owner_id,omitempty"`
	ManagerID      *uuid.UUID     `json:"manager_id,omitempty"`
	TrailerID      *uuid.UUID     `json:"trailer_id,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	// Связанные данные (не хранятся в БД, заполняются при необходимости)
	Owner   *Owner   `json:"owner,omitempty"`
	Manager *Manager `json:"manager,omitempty"`
	Trailer *Trailer `json:"trailer,omitempty"`
	Driver  *Driver  `json:"driver,omitempty"`
}

// NormalizePlate нормализует номерной знак (убирает пробелы и дефисы, приводит к верхнему регистру)
func NormalizePlate(plate string) string {
	normalized := strings.ToUpper(strings.ReplaceAll(plate, " ", ""))
	normalized = strings.ReplaceAll(normalized, "-", "")
	return normalized
}

// CanCarryTrailer сообщает, может ли тягач данного типа нести прицеп
func (t *Truck) CanCarryTrailer() bool {
	return t.Type != TruckTypeBiTruck
}

// Validate проверяет корректность данных тягача
func (t *Truck) Validate() error {
	if t.Plate == "" {
		return ErrInvalidPlate
	}
	t.Plate = NormalizePlate(t.Plate)
	if len(t.Plate) < 5 || len(t.Plate) > 10 {
		return ErrInvalidPlate
	}
	if t.Status != "" && !t.Status.Valid() {
		return ErrInvalidStatus
	}
	// Bi-truck не может иметь прицеп (инвариант схемы агрегации)
	if t.TrailerID != nil && !t.CanCarryTrailer() {
		return ErrIncompatibleTruckType
	}
	return nil
}
