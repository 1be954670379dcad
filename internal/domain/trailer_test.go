package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestTrailer_RecalcNextWash тестирует пересчет цикла мойки
func TestTrailer_RecalcNextWash(t *testing.T) {
	t.Run("следующая мойка через 30 дней", func(t *testing.T) {
		lastWash := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		tr := &Trailer{Plate: "ABC1D23", LastWash: &lastWash}

		tr.RecalcNextWash()

		if assert.NotNil(t, tr.NextWash) {
			assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), *tr.NextWash)
		}
	})

	t.Run("без последней мойки дата не меняется", func(t *testing.T) {
		tr := &Trailer{Plate: "ABC1D23"}

		tr.RecalcNextWash()

		assert.Nil(t, tr.NextWash)
	})

	t.Run("перезаписывает устаревшую дату", func(t *testing.T) {
		lastWash := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
		stale := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		tr := &Trailer{Plate: "ABC1D23", LastWash: &lastWash, NextWash: &stale}

		tr.RecalcNextWash()

		if assert.NotNil(t, tr.NextWash) {
			assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), *tr.NextWash)
		}
	})
}

// TestTrailer_CanAggregate тестирует доступность прицепа по классификации
func TestTrailer_CanAggregate(t *testing.T) {
	tests := []struct {
		name           string
		classification Classification
		want           bool
	}{
		{"агрегируемый прицеп", ClassificationAggregated, true},
		{"прицеп собственного парка", ClassificationFleet, false},
		{"прицеп третьей стороны", ClassificationThirdParty, false},
		{"без классификации", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Trailer{Plate: "ABC1D23", Classification: tt.classification}
			assert.Equal(t, tt.want, tr.CanAggregate())
		})
	}
}

// TestTrailer_Validate тестирует валидацию прицепа
func TestTrailer_Validate(t *testing.T) {
	tr := &Trailer{Plate: "abc-1d23"}
	assert.NoError(t, tr.Validate())
	assert.Equal(t, "ABC1D23", tr.Plate)

	empty := &Trailer{}
	assert.ErrorIs(t, empty.Validate(), ErrInvalidPlate)
}
