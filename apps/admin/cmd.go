package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/arifa/core/notification"
	sqlxrepos "github.com/trezcool/arifa/storage/database/sqlx"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db           *sqlx.DB
	deadlineRepo *sqlxrepos.DeadlineRepository
	notifRepo    notification.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (up, down, status, ...)")
	fmt.Println("  seeddemo - seed demo deadlines and notification settings")
	fmt.Println("  preview -due DUE_DATE [-title TITLE] [-offsets CSV] - print the reminder plan for a deadline")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	previewCmd := flag.NewFlagSet("preview", flag.ExitOnError)
	previewDue := previewCmd.String("due", "", "The deadline's due date in RFC3339 format; e.g. 2026-09-15T23:59:00Z.")
	previewTitle := previewCmd.String("title", "Demo Assignment", "The deadline's title.")
	previewOffsets := previewCmd.String("offsets", "", "Comma-separated reminder offsets; defaults derive from the due date.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seeddemo":
		return cli.seedDemo()
	case "preview":
		if err := previewCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *previewDue == "" {
			previewCmd.Usage()
			return errHelp
		}
		return cli.preview(*previewDue, *previewTitle, *previewOffsets)
	default:
		cli.printUsage()
		return errHelp
	}
}
