package main

import (
	"log"
	"os"

	echoapi "github.com/trezcool/arifa/apps/api/echo"
	"github.com/trezcool/arifa/core"
	"github.com/trezcool/arifa/core/notification"
	emailsvc "github.com/trezcool/arifa/services/email"
	logsvc "github.com/trezcool/arifa/services/logger"
	smssvc "github.com/trezcool/arifa/services/sms"
	"github.com/trezcool/arifa/storage/database"
	sqlxrepos "github.com/trezcool/arifa/storage/database/sqlx"
)

func main() {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lshortfile)

	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewStdLogger(stdLogger)
	} else {
		logger = logsvc.NewRollbarLogger(stdLogger, core.Conf)
	}

	// set up DB
	db, err := database.Open(core.Conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer func() { _ = db.Close() }()

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	smsSvc := smssvc.NewConsoleService() // TODO: wire an SMS gateway for PROD
	notifSvc := notification.NewService(sqlxrepos.NewNotificationRepository(db), mailSvc, smsSvc, logger)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:  core.Conf.Server.Address,
			NotifSvc: notifSvc,
			Logger:   logger,
		},
	)
	app.Start()
}
