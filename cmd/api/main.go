package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"github.com/rbnabilahpulunganadm/jumatberkah/internal/config"
	"github.com/rbnabilahpulunganadm/jumatberkah/internal/handler"
	"github.com/rbnabilahpulunganadm/jumatberkah/internal/lock"
	"github.com/rbnabilahpulunganadm/jumatberkah/internal/logger"
	"github.com/rbnabilahpulunganadm/jumatberkah/internal/repository"
	"github.com/rbnabilahpulunganadm/jumatberkah/internal/service"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, "jumatberkah-api")
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zlog.Sync()

	store, err := openStore(cfg)
	if err != nil {
		zlog.Fatal("store init failed", zap.Error(err))
	}
	if err := store.EnsureSchema(); err != nil {
		zlog.Fatal("schema init failed", zap.Error(err))
	}

	locker, err := openLocker(cfg)
	if err != nil {
		zlog.Fatal("lock init failed", zap.Error(err))
	}

	reservationService := service.NewReservationService(store, locker, cfg.Reservation.IDPrefix, zlog)
	queryService := service.NewQueryService(store)
	exportService := service.NewExportService(store)

	h := handler.NewHandler(reservationService, queryService, exportService, zlog)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), handler.RequestID(), handler.RequestLogger(zlog))

	api := router.Group("/api")
	{
		api.POST("/reservations", h.CreateReservation)
		api.GET("/reservations", h.ReadReservations)
		api.GET("/reservations/export", h.ExportReservations)
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	zlog.Info("reservation API listening",
		zap.String("port", cfg.HTTP.Port),
		zap.String("store", cfg.Store.Driver),
		zap.String("lock", cfg.Lock.Driver),
	)
	if err := router.Run(":" + cfg.HTTP.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func openStore(cfg *config.Config) (repository.RowStore, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := sqlx.Connect("postgres", cfg.DSN())
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresStore(db), nil
	case "pebble":
		return repository.OpenPebbleStore(cfg.Store.PebblePath, nil)
	case "memory":
		return repository.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %q", cfg.Store.Driver)
	}
}

func openLocker(cfg *config.Config) (lock.Locker, error) {
	switch cfg.Lock.Driver {
	case "mutex":
		return lock.NewMutexLocker(cfg.Lock.Wait), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return lock.NewRedisLocker(client, cfg.Lock.Key, cfg.Lock.TTL, cfg.Lock.Wait), nil
	default:
		return nil, fmt.Errorf("unknown lock driver: %q", cfg.Lock.Driver)
	}
}
