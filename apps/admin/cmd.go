package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/ArthurFreire0/dashboard-School/core/report"
)

var (
	readFileFunc = os.ReadFile // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db  *sqlx.DB
	svc *report.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate - create the database schema")
	fmt.Println("  ingest -file FILE [-variant university|school] - ingest a CSV upload")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ingestCmd := flag.NewFlagSet("ingest", flag.ExitOnError)
	ingestFile := ingestCmd.String("file", "", "Path to the CSV file to ingest.")
	ingestVariant := ingestCmd.String("variant", "university", "Source flavor: university or school.")

	switch args[1] {
	case "migrate":
		return cli.migrate()
	case "ingest":
		if err := ingestCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *ingestFile == "" {
			ingestCmd.Usage()
			return errHelp
		}
		switch *ingestVariant {
		case "university", "school":
			return cli.ingest(*ingestFile, *ingestVariant)
		default:
			ingestCmd.Usage()
			return errHelp
		}
	default:
		cli.printUsage()
		return errHelp
	}
}
