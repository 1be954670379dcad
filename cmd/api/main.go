package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	deliveryHTTP "github.com/rodomax/fleet/internal/delivery/http"
	"github.com/rodomax/fleet/internal/infrastructure/sheets"
	"github.com/rodomax/fleet/internal/pkg/config"
	"github.com/rodomax/fleet/internal/pkg/database"
	"github.com/rodomax/fleet/internal/pkg/logger"
	"github.com/rodomax/fleet/internal/pkg/redis"
	"github.com/rodomax/fleet/internal/repository"
	"github.com/rodomax/fleet/internal/repository/cached"
	"github.com/rodomax/fleet/internal/repository/postgres"
	"github.com/rodomax/fleet/internal/usecase/auditlog"
	"github.com/rodomax/fleet/internal/usecase/coupling"
	"github.com/rodomax/fleet/internal/usecase/fleet"
	syncuc "github.com/rodomax/fleet/internal/usecase/sync"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Инициализация logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	log.Info("Starting Fleet API server", map[string]interface{}{
		"version": "1.0.0",
	})

	// =========================================================================
	// Подключение к PostgreSQL
	// =========================================================================

	ctx := context.Background()
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer database.Close(db)

	log.Info("Connected to PostgreSQL", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	// =========================================================================
	// Подключение к Redis (опционально)
	// =========================================================================

	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis is not available, caching disabled", map[string]interface{}{
			"error": err.Error(),
		})
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info("Connected to Redis", map[string]interface{}{
			"address": cfg.Redis.Address(),
		})
	}

	// =========================================================================
	// Создание repositories
	// =========================================================================

	ownerRepo := postgres.NewOwnerRepository(db)
	managerRepo := postgres.NewManagerRepository(db)
	historyRepo := postgres.NewManagerHistoryRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	truckRepo := postgres.NewTruckRepository(db)
	logRepo := postgres.NewAggregationLogRepository(db)

	var trailerRepo repository.TrailerRepository = postgres.NewTrailerRepository(db)
	if redisClient != nil {
		trailerRepo = cached.NewTrailerRepository(trailerRepo, redisClient)
	}

	log.Info("Repositories initialized")

	// =========================================================================
	// Создание клиента табличного sink (опционально)
	// =========================================================================

	var sink sheets.Client
	if cfg.Sheets.Enabled {
		sink, err = sheets.NewClient(ctx, sheets.Config{
			CredentialsFile: cfg.Sheets.CredentialsFile,
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			WorksheetName:   cfg.Sheets.WorksheetName,
		}, log)
		if err != nil {
			log.Warn("Failed to create sheets client, mirror sync disabled", map[string]interface{}{
				"error": err.Error(),
			})
			sink = nil
		} else if err := sink.Health(ctx); err != nil {
			log.Warn("Mirror sink is not reachable", map[string]interface{}{
				"error": err.Error(),
			})
		}
	} else {
		log.Info("Mirror sync disabled by configuration")
	}

	// =========================================================================
	// Создание use case services
	// =========================================================================

	var fpCache syncuc.FingerprintCache
	if redisClient != nil {
		fpCache = redisClient
	}

	syncService := syncuc.NewService(truckRepo, sink, fpCache, cfg.Sheets.Timeout, log)
	syncWorker := syncuc.NewWorker(syncService, cfg.Sync.Debounce, log)

	couplingService := coupling.NewService(
		truckRepo,
		trailerRepo,
		driverRepo,
		ownerRepo,
		managerRepo,
		historyRepo,
		logRepo,
		syncWorker,
		log,
	)
	fleetService := fleet.NewService(
		ownerRepo,
		managerRepo,
		historyRepo,
		driverRepo,
		trailerRepo,
		truckRepo,
		syncWorker,
		log,
	)
	auditLogService := auditlog.NewService(logRepo, log)

	log.Info("Use case services initialized")

	// =========================================================================
	// Запуск sync worker
	// =========================================================================

	workerCtx, workerCancel := context.WithCancel(ctx)
	defer workerCancel()

	go syncWorker.Run(workerCtx)

	// Первый проход при старте выравнивает sink с текущим состоянием БД
	syncWorker.Trigger()

	// =========================================================================
	// Создание HTTP handlers
	// =========================================================================

	ownerHandler := deliveryHTTP.NewOwnerHandler(fleetService, log)
	managerHandler := deliveryHTTP.NewManagerHandler(fleetService, log)
	driverHandler := deliveryHTTP.NewDriverHandler(fleetService, couplingService, log)
	trailerHandler := deliveryHTTP.NewTrailerHandler(fleetService, log)
	truckHandler := deliveryHTTP.NewTruckHandler(fleetService, couplingService, log)
	logHandler := deliveryHTTP.NewLogHandler(auditLogService, log)
	syncHandler := deliveryHTTP.NewSyncHandler(syncService, log)

	log.Info("HTTP handlers initialized")

	// =========================================================================
	// Создание и настройка HTTP router
	// =========================================================================

	router := deliveryHTTP.NewRouter(
		ownerHandler,
		managerHandler,
		driverHandler,
		trailerHandler,
		truckHandler,
		logHandler,
		syncHandler,
		cfg,
		log,
	)

	handler := router.Setup()

	log.Info("HTTP router configured")

	// =========================================================================
	// Создание HTTP сервера
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// =========================================================================
	// Запуск сервера в goroutine
	// =========================================================================

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	// Канал для получения сигналов операционной системы
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Блокируемся до получения сигнала или ошибки сервера
	select {
	case err := <-serverErrors:
		log.Fatal("Server error", map[string]interface{}{
			"error": err.Error(),
		})

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		// Останавливаем фоновую синхронизацию
		workerCancel()

		// Даем серверу 30 секунд на graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})

			// Принудительное закрытие
			if err := srv.Close(); err != nil {
				log.Fatal("Failed to close server", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}
