package main

import (
	"log"
	"os"

	"github.com/ArthurFreire0/dashboard-School/core"
	"github.com/ArthurFreire0/dashboard-School/core/report"
	logsvc "github.com/ArthurFreire0/dashboard-School/services/logger"
	"github.com/ArthurFreire0/dashboard-School/storage/database"
	sqliterepos "github.com/ArthurFreire0/dashboard-School/storage/database/sqlite"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	// start CLI
	cli := commandLine{
		db:  db,
		svc: report.NewService(conf.Report, sqliterepos.NewReportRepository(db), logsvc.NewConsoleLogger(logger)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
