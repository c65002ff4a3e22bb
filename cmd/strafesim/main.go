// Package main is the entry point for the strafe movement simulator.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/strafesim/internal/config"
	"github.com/Faultbox/strafesim/internal/engine/camera"
	"github.com/Faultbox/strafesim/internal/logger"
	"github.com/Faultbox/strafesim/internal/movement"
	"github.com/Faultbox/strafesim/internal/sim"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	opts := logger.Options{Level: cfg.Logging.Level, Console: os.Stdout, JSON: cfg.Logging.JSON}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.Setup(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("saving config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return
	}

	logger.Info("=== Strafe Simulator ===")
	logger.Sugar.Debugf("Config: %+v", cfg.Movement)

	if err := run(cfg); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	world, body, err := sim.BuildWorld(cfg, logger.Named("scenario"))
	if err != nil {
		return err
	}

	view := camera.NewFirstPerson()
	view.SetYaw(cfg.Scenario.InitialYaw)

	ctrl, err := movement.New(cfg.MovementParams(), body, world, view, logger.Named("movement"))
	if err != nil {
		return fmt.Errorf("creating controller: %w", err)
	}
	if cfg.Simulation.Noclip {
		ctrl.SetNoclip(true)
	}

	runner, err := sim.NewRunner(ctrl, world, view, sim.ScriptFromConfig(cfg.Scenario.Script), sim.Options{
		TickRate:  cfg.Physics.TickRate,
		FrameRate: cfg.Simulation.FrameRate,
	}, logger.Named("sim"))
	if err != nil {
		return err
	}

	stats, err := runner.Run(ctx, cfg.Simulation.Duration)
	if errors.Is(err, context.Canceled) {
		logger.Warn("interrupted", zap.Stringer("stats", stats))
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("done",
		zap.Stringer("stats", stats),
		zap.Stringer("controller", ctrl),
		zap.Float32("final_x", stats.FinalPosition.X),
		zap.Float32("final_y", stats.FinalPosition.Y),
		zap.Float32("final_z", stats.FinalPosition.Z),
	)
	return nil
}
