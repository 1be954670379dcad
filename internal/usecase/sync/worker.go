package sync

import (
	"context"
	"errors"
	"time"

	"github.com/rodomax/fleet/internal/domain"
	"github.com/rodomax/fleet/internal/pkg/logger"
)

// Syncer выполняет один проход зеркальной синхронизации
type Syncer interface {
	SyncNow(ctx context.Context) (*Result, error)
}

// Worker - единственная фоновая горутина синхронизации. Триггер -
// неблокирующая отправка в канал с буфером 1: всплеск мутаций парка
// коалесцируется в один проход, а проход и так снимает полное состояние.
type Worker struct {
	syncer   Syncer
	trigger  chan struct{}
	debounce time.Duration
	logger   logger.Logger
}

// NewWorker создает новый worker синхронизации
func NewWorker(syncer Syncer, debounce time.Duration, logger logger.Logger) *Worker {
	return &Worker{
		syncer:   syncer,
		trigger:  make(chan struct{}, 1),
		debounce: debounce,
		logger:   logger,
	}
}

// Trigger запрашивает проход синхронизации, никогда не блокируя вызывающего
func (w *Worker) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
		// Проход уже запрошен - полный снимок покроет и это изменение
	}
}

// Run обрабатывает триггеры до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("sync worker started", map[string]interface{}{
		"debounce": w.debounce.String(),
	})

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sync worker stopped")
			return
		case <-w.trigger:
			if !w.wait(ctx) {
				return
			}

			// Сливаем триггер, накопившийся за время дебаунса
			select {
			case <-w.trigger:
			default:
			}

			w.runPass(ctx)
		}
	}
}

// wait выдерживает дебаунс-паузу; false при отмене контекста
func (w *Worker) wait(ctx context.Context) bool {
	if w.debounce <= 0 {
		return true
	}

	timer := time.NewTimer(w.debounce)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (w *Worker) runPass(ctx context.Context) {
	result, err := w.syncer.SyncNow(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSyncDisabled) {
			return
		}
		// Sink самовосстанавливается: следующий триггер перезапишет его целиком
		w.logger.Error("sync pass failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if result.Skipped {
		w.logger.Debug("sync pass skipped, roster unchanged")
	}
}
