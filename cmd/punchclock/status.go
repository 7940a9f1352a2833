package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"punchclock/internal/domain/punch"
	idb "punchclock/internal/infra/database"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show the most recent punch record",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, db, err := setup(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
			defer cancel()

			rec, err := idb.NewSQLPunchRepository(db).MostRecent(ctx)
			if errors.Is(err, punch.ErrRecordNotFound) {
				fmt.Fprintln(cmd.Root().Writer, "No punch records yet.")
				return nil
			}
			if err != nil {
				return err
			}
			printRecord(cmd, rec)
			return nil
		},
	}
}

func printRecord(cmd *cli.Command, rec *punch.Record) {
	w := cmd.Root().Writer
	fmt.Fprintf(w, "Day:       %s (%s)\n", rec.Day, rec.Day.Weekday())

	switch {
	case !rec.IsWorkDay.Valid:
		fmt.Fprintln(w, "Work day:  not yet determined")
	case rec.IsWorkDay.Bool:
		fmt.Fprintln(w, "Work day:  yes")
	default:
		fmt.Fprintln(w, "Work day:  no")
	}

	for _, action := range punch.Actions {
		t, ok := rec.Punched(action)
		if !ok {
			fmt.Fprintf(w, "%-11s -\n", action.String()+":")
			continue
		}
		fmt.Fprintf(w, "%-11s %s (%s)\n", action.String()+":", t.Format("15:04:05"), humanize.Time(t))
	}
	fmt.Fprintf(w, "Worked:    %s\n", rec.Worked().Round(time.Minute))
}
