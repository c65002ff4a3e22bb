package config

import (
	"flag"
	"time"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagDuration = flag.Duration("duration", 0, "Simulated time to run")
	flagTickRate = flag.Int("tick-rate", 0, "Fixed updates per second")
	flagNoclip   = flag.Bool("noclip", false, "Start in noclip mode")
	flagLogFile  = flag.String("log-file", "", "Write logs to this file as well")
	flagSave     = flag.Bool("save-config", false, "Write the effective config to the user config dir and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether -save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagDuration > time.Duration(0) {
		cfg.Simulation.Duration = *flagDuration
	}
	if *flagTickRate > 0 {
		cfg.Physics.TickRate = *flagTickRate
	}
	if *flagNoclip {
		cfg.Simulation.Noclip = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
