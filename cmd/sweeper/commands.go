package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-VenueBookingService/internal/app"
	"github.com/m04kA/SMC-VenueBookingService/internal/config"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
)

type options struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "sweeper",
		Short:         "Background auto-cancellation jobs for venue bookings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to config.toml")

	root.AddCommand(newJobCmd(opts, "pending", "Cancel stale pending bookings and send warnings", func(a *app.App) job {
		return a.ExpirePending
	}))
	root.AddCommand(newJobCmd(opts, "payment", "Cancel bookings with expired payment deadline", func(a *app.App) job {
		return a.ExpirePayment
	}))
	root.AddCommand(newLoopCmd(opts))

	return root
}

// job одна задача автоотмены
type job interface {
	RunIfDue(ctx context.Context) int
	Run(ctx context.Context, now time.Time) int
}

func newJobCmd(opts *options, use, short string, pick func(a *app.App) job) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app.App) error {
				j := pick(a)

				var cancelled int
				if force {
					cancelled = j.Run(ctx, time.Now())
				} else {
					cancelled = j.RunIfDue(ctx)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: cancelled %d booking(s)\n", use, cancelled)
				return nil
			})
		},
	}
	c.Flags().BoolVar(&force, "force", false, "run even if the interval has not elapsed")
	return c
}

func newLoopCmd(opts *options) *cobra.Command {
	var tick time.Duration

	c := &cobra.Command{
		Use:   "loop",
		Short: "Run all jobs periodically until SIGINT/SIGTERM",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app.App) error {
				if tick > 0 {
					a.Config.Sweepers.LoopTick = config.Duration{Duration: tick}
				}

				ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				if err := a.SweepLoop().Run(ctx); err != nil && ctx.Err() == nil {
					return err
				}
				return nil
			})
		},
	}
	c.Flags().DurationVar(&tick, "tick", 0, "override sweepers.loop_tick")
	return c
}

func withApp(opts *options, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(context.Background(), a)
}
