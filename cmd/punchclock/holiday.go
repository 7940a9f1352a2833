package main

import (
	"context"
	"fmt"

	"punchclock/internal/app"
	idb "punchclock/internal/infra/database"

	"cloud.google.com/go/civil"
	"github.com/urfave/cli/v3"
)

func holidayCommand() *cli.Command {
	return &cli.Command{
		Name:  "holiday",
		Usage: "manage the holiday calendar",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "mark a date as a holiday",
				ArgsUsage: "YYYY-MM-DD",
				Action: withHolidays(func(ctx context.Context, cmd *cli.Command, svc *app.HolidayService) error {
					day, err := dateArg(cmd)
					if err != nil {
						return err
					}
					h, err := svc.AddHoliday(ctx, day)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.Root().Writer, "Added holiday %s (id %d)\n", h.Date(), h.ID)
					return nil
				}),
			},
			{
				Name:      "remove",
				Usage:     "unmark a holiday",
				ArgsUsage: "YYYY-MM-DD",
				Action: withHolidays(func(ctx context.Context, cmd *cli.Command, svc *app.HolidayService) error {
					day, err := dateArg(cmd)
					if err != nil {
						return err
					}
					if err := svc.RemoveHoliday(ctx, day); err != nil {
						return err
					}
					fmt.Fprintf(cmd.Root().Writer, "Removed holiday %s\n", day)
					return nil
				}),
			},
			{
				Name:  "list",
				Usage: "list holidays",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "year", Usage: "only list holidays in this year"},
				},
				Action: withHolidays(func(ctx context.Context, cmd *cli.Command, svc *app.HolidayService) error {
					holidays, err := svc.ListHolidays(ctx, cmd.Int("year"))
					if err != nil {
						return err
					}
					if len(holidays) == 0 {
						fmt.Fprintln(cmd.Root().Writer, "No holidays.")
					}
					for _, h := range holidays {
						fmt.Fprintf(cmd.Root().Writer, "%s  %s\n", h.Date(), h.Date().Weekday())
					}
					return nil
				}),
			},
		},
	}
}

func withHolidays(fn func(context.Context, *cli.Command, *app.HolidayService) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, db, err := setup(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
		defer cancel()
		return fn(ctx, cmd, app.NewHolidayService(idb.NewSQLHolidayRepository(db)))
	}
}

func dateArg(cmd *cli.Command) (civil.Date, error) {
	if cmd.Args().Len() != 1 {
		return civil.Date{}, fmt.Errorf("expected exactly one YYYY-MM-DD argument")
	}
	day, err := civil.ParseDate(cmd.Args().First())
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q: %w", cmd.Args().First(), err)
	}
	return day, nil
}
