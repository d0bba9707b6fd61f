package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/jobs"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/notification"
	"github.com/BruksfildServices01/salon-scheduler/internal/payments"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/settings"
	ucscheduling "github.com/BruksfildServices01/salon-scheduler/internal/usecase/scheduling"
)

func main() {

	logging.Setup()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	settingsStore := settings.NewStore(db, rdb)

	var paymentProvider payments.Provider
	if cfg.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			logrus.WithError(err).Fatal("falha ao configurar Mercado Pago")
		}
		paymentProvider = mp
	} else {
		logrus.Warn("MP_ACCESS_TOKEN ausente: reservas com sinal não terão link de pagamento")
	}

	notifier := notification.NewDispatcher(notification.LogSender{})

	// Reaper roda em background cancelando holds vencidos de todos os tenants
	reaper, err := jobs.NewHoldReaper(
		ucscheduling.NewExpireHolds(infraRepo.NewSchedulingGormRepository(db)),
		time.Duration(cfg.Scheduling.ReaperIntervalSeconds)*time.Second,
	)
	if err != nil {
		logrus.WithError(err).Fatal("falha ao criar hold reaper")
	}
	reaper.Start()
	defer func() { _ = reaper.Stop() }()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, cfg, routes.Deps{
		DB:       db,
		Redis:    rdb,
		Settings: settingsStore,
		Notifier: notifier,
		Payments: paymentProvider,
	})

	logrus.WithField("addr", cfg.Addr()).Info("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
