package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrailerType представляет тип/высоту прицепа
type TrailerType string

const (
	TrailerTypeLow        TrailerType = "baixa"
	TrailerTypeHigh       TrailerType = "alta"
	TrailerTypeKangaroo   TrailerType = "canguru"
	TrailerTypeVanderleia TrailerType = "vanderleia"
)

// TrailerStatus представляет статус прицепа
type TrailerStatus string

const (
	TrailerStatusActive  TrailerStatus = "ativo"
	TrailerStatusStopped TrailerStatus = "parado"
)

// Состояния оборудования прицепа (значения как в исходной базе)
type EquipmentState string

const (
	EquipmentYes        EquipmentState = "sim"
	EquipmentNo         EquipmentState = "nao"
	EquipmentHalf       EquipmentState = "metade"
	EquipmentDamaged    EquipmentState = "danificado"
	EquipmentNotWorking EquipmentState = "nao_funciona"
)

// WashInterval - фиксированный цикл мойки прицепа
const WashInterval = 30 * 24 * time.Hour

// Trailer - прицеп ("carreta"). Прицеп может быть сцеплен максимум
// с одним тягачом; сама ссылка хранится на стороне тягача.
type Trailer struct {
	ID             uuid.UUID      `json:"id"`
	Plate          string         `json:"plate"`
	Brand          string         `json:"brand,omitempty"`
	Model          string         `json:"model,omitempty"`
	Year           int            `json:"year,omitempty"`
	Color          string         `json:"color,omitempty"`
	Type           TrailerType    `json:"type,omitempty"`
	Classification Classification `json:"classification,omitempty"`
	Status         TrailerStatus  `json:"status,omitempty"`
	LastWash       *time.Time     `json:"last_wash,omitempty"`
	NextWash       *time.Time     `json:"next_wash,omitempty"`
	Polyethylene   EquipmentState `json:"polyethylene,omitempty"`
	Cones          EquipmentState `json:"cones,omitempty"`
	Tracker        EquipmentState `json:"tracker,omitempty"`
	EasyTarp       EquipmentState `json:"easy_tarp,omitempty"`
	SpareTire      EquipmentState `json:"spare_tire,omitempty"`
	Location       string         `json:"location,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// RecalcNextWash пересчитывает дату следующей мойки от последней (цикл 30 дней)
func (tr *Trailer) RecalcNextWash() {
	if tr.LastWash == nil {
		return
	}
	next := tr.LastWash.Add(WashInterval)
	tr.NextWash = &next
}

// CanAggregate сообщает, может ли прицеп участвовать в агрегации.
// Прицепы категорий "frota" и "terceiro" никогда не считаются доступными.
func (tr *Trailer) CanAggregate() bool {
	return tr.Classification == ClassificationAggregated
}

// Validate проверяет корректность данных прицепа
func (tr *Trailer) Validate() error {
	if tr.Plate == "" {
		return ErrInvalidPlate
	}
	tr.Plate = NormalizePlate(tr.Plate)
	if len(tr.Plate) < 5 || len(tr.Plate) > 10 {
		return ErrInvalidPlate
	}
	return nil
}
