package domain

import (
	"time"

	"github.com/google/uuid"
)

// AggregationLogType представляет тип события агрегации
type AggregationLogType string

const (
	LogTypeCouple       AggregationLogType = "acoplamento"
	LogTypeDecouple     AggregationLogType = "desacoplamento"
	LogTypeSwap         AggregationLogType = "troca"
	LogTypeDisaggregate AggregationLogType = "desagregacao"
)

// Valid проверяет, что тип события входит в допустимый набор
func (t AggregationLogType) Valid() bool {
	switch t {
	case LogTypeCouple, LogTypeDecouple, LogTypeSwap, LogTypeDisaggregate:
		return true
	}
	return false
}

// AggregationLog - неизменяемая запись о событии агрегации.
// Записи создаются только как побочный эффект перехода состояния;
// путей обновления или удаления не существует.
type AggregationLog struct {
	ID               uuid.UUID          `json:"id"`
	Type             AggregationLogType `json:"type"`
	TruckID          *uuid.UUID         `json:"truck_id,omitempty"`
	TruckPlate       string             `json:"truck_plate"`
	PrevTrailerPlate string             `json:"prev_trailer_plate,omitempty"`
	NewTrailerPlate  string             `json:"new_trailer_plate,omitempty"`
	Description      string             `json:"description,omitempty"`
	Timestamp        time.Time          `json:"timestamp"`
}

// Validate проверяет корректность записи лога
func (l *AggregationLog) Validate() error {
	if !l.Type.Valid() {
		return ErrInvalidLogData
	}
	if l.TruckPlate == "" {
		return ErrInvalidLogData
	}
	return nil
}

// AggregationLogFilter - параметры выборки журнала агрегации.
// Plate сопоставляется и с номером тягача, и с номерами прицепов в записи.
type AggregationLogFilter struct {
	Type   AggregationLogType
	Plate  string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
