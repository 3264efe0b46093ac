package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/trezcool/arifa/core"
	"github.com/trezcool/arifa/core/notification"
	emailsvc "github.com/trezcool/arifa/services/email"
	logsvc "github.com/trezcool/arifa/services/logger"
	smssvc "github.com/trezcool/arifa/services/sms"
	"github.com/trezcool/arifa/storage/database"
	sqlxrepos "github.com/trezcool/arifa/storage/database/sqlx"
	redisstore "github.com/trezcool/arifa/storage/redis"
)

func main() {
	stdLogger := log.New(os.Stdout, "WORKER : ", log.LstdFlags|log.Lshortfile)

	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewStdLogger(stdLogger)
	} else {
		logger = logsvc.NewRollbarLogger(stdLogger, core.Conf)
	}

	// set up stores
	db, err := database.Open(core.Conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer func() { _ = db.Close() }()

	rdb := redisstore.Open(core.Conf)
	defer func() { _ = rdb.Close() }()

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	smsSvc := smssvc.NewConsoleService() // TODO: wire an SMS gateway for PROD
	notifSvc := notification.NewService(sqlxrepos.NewNotificationRepository(db), mailSvc, smsSvc, logger)

	poller := NewPoller(
		sqlxrepos.NewDeadlineRepository(db),
		redisstore.NewFiredStore(rdb, core.Conf.Redis.FiredTTL),
		notifSvc,
		logger,
		PollerOptions{
			Interval:  core.Conf.Worker.PollInterval,
			Tolerance: core.Conf.Worker.Tolerance,
			Horizon:   core.Conf.Worker.Horizon,
			Expiry:    core.Conf.Notification.DefaultExpiry,
		},
	)
	consumer := NewConsumer(core.Conf, notifSvc, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 2)
	go func() { done <- poller.Run(ctx) }()
	go func() { done <- consumer.Run(ctx) }()

	// block until shutdown signal or worker failure
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-shutdown:
		logger.Info("shutting down on " + sig.String())
		cancel()
		<-done
		<-done
	case err := <-done:
		if err != nil {
			logger.Fatal("worker failed", err)
		}
	}
}
