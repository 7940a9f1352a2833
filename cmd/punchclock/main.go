package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"punchclock/internal/app"
	"punchclock/internal/domain/notify"
	"punchclock/internal/infra/config"
	idb "punchclock/internal/infra/database"
	"punchclock/internal/infra/logger"
	inotify "punchclock/internal/infra/notify"
	"punchclock/internal/infra/portal"
	"punchclock/internal/infra/scheduler"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "punchclock",
		Usage: "clock in, take lunch and clock out on the timekeeping portal every work day",
		Commands: []*cli.Command{
			runCommand(),
			holidayCommand(),
			statusCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Get().Errorf("FATAL: %v", err)
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "run the punch scheduler until interrupted",
		Action: runScheduler,
	}
}

// setup loads configuration, initialises the global logger and opens the
// migrated database. Every command starts here.
func setup(ctx context.Context) (*config.AppConfig, *idb.DB, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("could not load application configuration: %w", err)
	}
	logger.Init(cfg)
	logger.Get().Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	db, err := idb.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to database: %w", err)
	}
	if err := idb.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("could not migrate database: %w", err)
	}
	logger.Get().Infof("Database connection established (%s).", db.Driver())
	return cfg, db, nil
}

func runScheduler(ctx context.Context, _ *cli.Command) error {
	cfg, db, err := setup(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	log := logger.Get()

	pager, err := inotify.New(cfg.Notify, log)
	if err != nil {
		return err
	}

	session, err := portal.NewDryRunSession(cfg.Portal.Username, cfg.Portal.LoginURL, cfg.Portal.LeaveDays, log)
	if err != nil {
		return fmt.Errorf("could not create portal session: %w", err)
	}
	client := app.NewPortalClient(session, cfg.Portal.Questions, cfg.Portal.Timeout)
	log.Info("Portal client initialized.")

	punches := idb.NewSQLPunchRepository(db)
	holidays := idb.NewSQLHolidayRepository(db)

	weekend, err := cfg.Weekend()
	if err != nil {
		return err
	}
	qualifier := app.NewDayQualifier(punches, holidays, client, weekend, cfg.Database.Timeout, log)
	gate := app.NewActionGate(cfg.Schedule.StartHour, windows(cfg.Schedule), nil)
	punchScheduler := app.NewPunchScheduler(punches, qualifier, gate, client, pager, app.SchedulerConfig{
		TickInterval: cfg.Schedule.TickInterval,
		IdleInterval: cfg.Schedule.IdleInterval,
		StoreTimeout: cfg.Database.Timeout,
	}, log)

	if cfg.Schedule.DigestCron != "" {
		digest := scheduler.NewDigestScheduler(
			app.NewDigestService(punches, pager, log),
			cfg.Schedule.DigestCron,
			cfg.Database.Timeout+cfg.Notify.Timeout,
			log,
		)
		if err := digest.Start(); err != nil {
			return err
		}
		defer digest.Stop()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Application setup complete. Punch scheduler is starting...")
	return supervise(ctx, punchScheduler.Run, pager)
}

// supervise runs loop and turns any failure that is not a shutdown into a
// single crash alert.
func supervise(ctx context.Context, loop func(context.Context) error, alerter notify.Notifier) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err == nil {
			return
		}
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			logger.Get().Info("Shutting down application...")
			err = nil
			return
		}
		alerter.Alert(context.Background(), fmt.Sprintf("PROGRAM CRASH, needs restart: %v", err))
	}()
	return loop(ctx)
}

func windows(s config.ScheduleConfig) app.Windows {
	return app.Windows{
		LunchStart: app.Window{Base: s.LunchStartAfter, JitterMin: s.LunchStartJitterMin, JitterMax: s.LunchStartJitterMax},
		LunchEnd:   app.Window{Base: s.LunchEndAfter, JitterMin: s.LunchEndJitterMin, JitterMax: s.LunchEndJitterMax},
		ClockOut:   app.Window{Base: s.ClockOutAfter, JitterMin: s.ClockOutJitterMin, JitterMax: s.ClockOutJitterMax},
	}
}
