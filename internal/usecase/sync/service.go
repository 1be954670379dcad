// Package sync реализует зеркальную синхронизацию парка во внешний
// табличный sink: полный снимок, бизнес-сортировка, полная замена.
package sync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/infrastructure/sheets"
	"github.com/rodomax/fleet/internal/pkg/logger"
	"github.com/rodomax/fleet/internal/repository"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const fingerprintKey = "sync:roster:fingerprint"

// Заголовок листа на языке бизнеса
var sheetHeader = []interface{}{
	"PLACA", "CARRETA", "MOTORISTA", "CPF", "TIPO", "FLUXO",
	"CÓDIGO DO PROPRIETÁRIO", "PROPRIETÁRIO", "SITUAÇÃO",
}

// FingerprintCache хранит отпечаток последнего записанного снимка.
// Реализуется Redis-оберткой; nil-кэш отключает пропуск неизмененных снимков.
type FingerprintCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Result - итог одного прохода синхронизации
type Result struct {
	Rows     int           `json:"rows"`
	Skipped  bool          `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// Service выполняет проходы зеркальной синхронизации
type Service struct {
	truckRepo repository.TruckRepository
	sink      sheets.Client
	cache     FingerprintCache
	timeout   time.Duration
	collator  *collate.Collator
	logger    logger.Logger
}

// NewService создает новый экземпляр SyncService.
// Нулевой sink означает выключенную синхронизацию: проходы пропускаются.
func NewService(
	truckRepo repository.TruckRepository,
	sink sheets.Client,
	cache FingerprintCache,
	timeout time.Duration,
	logger logger.Logger,
) *Service {
	return &Service{
		truckRepo: truckRepo,
		sink:      sink,
		cache:     cache,
		timeout:   timeout,
		collator:  collate.New(language.BrazilianPortuguese, collate.IgnoreCase),
		logger:    logger,
	}
}

// SyncNow выполняет один синхронный проход: снимок парка, сортировка,
// полная замена содержимого sink. Чтение снимка и проверка доступности
// идут до Clear, чтобы отказ не оставил лист полупустым.
func (s *Service) SyncNow(ctx context.Context) (*Result, error) {
	if s.sink == nil {
		s.logger.Info("mirror sync disabled, pass skipped")
		return nil, domain.ErrSyncDisabled
	}

	start := time.Now()

	roster, err := s.truckRepo.ListRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	s.sortRoster(roster)
	rows := s.buildRows(roster)
	fp := fingerprint(rows)

	if s.cache != nil {
		prev, err := s.cache.Get(ctx, fingerprintKey)
		if err == nil && prev == fp {
			s.logger.Debug("roster unchanged, sink write skipped", map[string]interface{}{
				"fingerprint": fp,
			})
			return &Result{Rows: len(rows), Skipped: true, Duration: time.Since(start)}, nil
		}
	}

	// Clear и AppendRows живут под одним таймаутом: зависший Clear не
	// должен оставить лист пустым на неопределенное время
	syncCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.sink.Health(syncCtx); err != nil {
		return nil, err
	}

	if err := s.sink.Clear(syncCtx); err != nil {
		return nil, err
	}

	if err := s.sink.AppendRows(syncCtx, rows); err != nil {
		// Лист остался очищенным; следующий проход перезапишет его
		// полным снимком - sink самовосстанавливается
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, fingerprintKey, fp, 0); err != nil {
			s.logger.Warn("failed to store roster fingerprint", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	result := &Result{Rows: len(rows), Duration: time.Since(start)}

	s.logger.Info("mirror sync completed", map[string]interface{}{
		"rows":     result.Rows,
		"duration": result.Duration.String(),
	})

	return result, nil
}

// sortRoster упорядочивает снимок в бизнес-порядке листа:
// поток -> тип -> статус, дезагрегированные тягачи замыкают лист
// отдельной группой по номеру; внутри группы - по имени водителя.
func (s *Service) sortRoster(entries []*domain.RosterEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		aTrailing := a.Status == domain.TruckStatusDisaggregated
		bTrailing := b.Status == domain.TruckStatusDisaggregated
		if aTrailing != bTrailing {
			return bTrailing
		}
		if aTrailing {
			return a.Plate < b.Plate
		}

		if r := flowRank(a.Flow) - flowRank(b.Flow); r != 0 {
			return r < 0
		}
		if r := typeRank(a.Type) - typeRank(b.Type); r != 0 {
			return r < 0
		}
		if r := statusRank(a.Status) - statusRank(b.Status); r != 0 {
			return r < 0
		}

		// Тягачи без водителя уходят в конец своей группы
		if (a.DriverName == "") != (b.DriverName == "") {
			return b.DriverName == ""
		}
		if a.DriverName != b.DriverName {
			return s.collator.CompareString(a.DriverName, b.DriverName) < 0
		}

		return a.Plate < b.Plate
	})
}

// buildRows проецирует снимок в строки листа; пустые ячейки заполняются "-"
func (s *Service) buildRows(entries []*domain.RosterEntry) [][]interface{} {
	rows := make([][]interface{}, 0, len(entries)+1)
	rows = append(rows, sheetHeader)

	for _, e := range entries {
		rows = append(rows, []interface{}{
			cell(e.Plate),
			cell(e.TrailerPlate),
			cell(e.DriverName),
			cell(e.DriverCPF),
			cell(e.Type.Display()),
			cell(e.Flow.Display()),
			cell(e.OwnerCode),
			cell(e.OwnerName),
			cell(e.Status.Display()),
		})
	}

	return rows
}

func cell(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func flowRank(flow domain.TruckFlow) int {
	switch flow {
	case domain.FlowSlag:
		return 0
	case domain.FlowOre:
		return 1
	default:
		return 2
	}
}

func typeRank(t domain.TruckType) int {
	switch t {
	case domain.TruckTypeBiTruck:
		return 0
	case domain.TruckTypeToco:
		return 1
	case domain.TruckTypeTrucado:
		return 2
	default:
		return 3
	}
}

func statusRank(status domain.TruckStatus) int {
	switch status {
	case domain.TruckStatusActive:
		return 0
	case domain.TruckStatusStopped:
		return 1
	default:
		return 2
	}
}

// fingerprint считает SHA-256 отпечаток сериализованных строк листа
func fingerprint(rows [][]interface{}) string {
	var sb strings.Builder
	for _, row := range rows {
		for _, value := range row {
			fmt.Fprintf(&sb, "%v\x1f", value)
		}
		sb.WriteByte('\x1e')
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
