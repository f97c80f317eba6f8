package main

import (
	"log"
	"os"

	echoapi "github.com/ArthurFreire0/dashboard-School/apps/api/echo"
	"github.com/ArthurFreire0/dashboard-School/core"
	"github.com/ArthurFreire0/dashboard-School/core/report"
	logsvc "github.com/ArthurFreire0/dashboard-School/services/logger"
	"github.com/ArthurFreire0/dashboard-School/storage/database"
	sqliterepos "github.com/ArthurFreire0/dashboard-School/storage/database/sqlite"
)

// TODO: graceful shutdown
func main() {
	conf := core.NewConfig()
	std := log.New(os.Stdout, conf.AppName+" : ", log.LstdFlags|log.Lshortfile)

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(database.Migrate(db))

	// set up services
	reportSvc := report.NewService(conf.Report, sqliterepos.NewReportRepository(db), logger)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:   conf.Address,
			Conf:      conf,
			Logger:    logger,
			ReportSvc: reportSvc,
		},
	)
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
