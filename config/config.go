// Package config holds the run-time settings of the ls8 emulator.
//
// Settings come from the defaults, then an optional ls8.toml file in the
// per-user configuration folder, then command line flags.
package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shibukawa/configdir"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

const (
	VENDOR    = "ls8"
	FILE_NAME = "ls8.toml"
)

var (
	ErrClockHz = errors.New(f("clock_hz must be positive"))
	ErrTimer   = errors.New(f("timer_period must not be negative"))
)

// Duration is a time.Duration that decodes from a TOML string like "1s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the emulator configuration.
type Config struct {
	ClockHz     int      `toml:"clock_hz"`     // Instruction rate.
	TimerPeriod Duration `toml:"timer_period"` // Timer interrupt period, 0 disables.
	Keyboard    bool     `toml:"keyboard"`     // Deliver host key presses as interrupts.
	Verbose     bool     `toml:"verbose"`      // Trace every instruction.
}

// Default returns the built-in configuration.
func Default() (cfg Config) {
	cfg = Config{
		ClockHz:     1000,
		TimerPeriod: Duration{time.Second},
		Keyboard:    true,
	}
	return
}

// Validate checks the configuration for impossible values.
func (cfg *Config) Validate() (err error) {
	if cfg.ClockHz <= 0 {
		err = errors.Join(err, ErrClockHz)
	}
	if cfg.TimerPeriod.Duration < 0 {
		err = errors.Join(err, ErrTimer)
	}
	return
}

// Decode overlays settings from a TOML document.
func (cfg *Config) Decode(text string) (err error) {
	_, err = toml.Decode(text, cfg)
	return
}

// DecodeFile overlays settings from a TOML file. A missing file is not
// an error.
func (cfg *Config) DecodeFile(path string) (err error) {
	_, err = toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	return
}

// Path returns the location of the user's configuration file, or the
// empty string if none exists.
func Path() string {
	dirs := configdir.New(VENDOR, VENDOR)
	folder := dirs.QueryFolderContainsFile(FILE_NAME)
	if folder == nil {
		return ""
	}
	return folder.Path + string(os.PathSeparator) + FILE_NAME
}

// Load returns the default configuration overlaid with the user's
// configuration file, if any.
func Load() (cfg Config, err error) {
	cfg = Default()

	path := Path()
	if len(path) != 0 {
		err = cfg.DecodeFile(path)
		if err != nil {
			return
		}
	}

	err = cfg.Validate()
	return
}

// Flags registers command line overrides for the configuration.
func (cfg *Config) Flags(flags *flag.FlagSet) {
	flags.IntVar(&cfg.ClockHz, "hz", cfg.ClockHz, "Instructions per second")
	flags.DurationVar(&cfg.TimerPeriod.Duration, "timer", cfg.TimerPeriod.Duration, "Timer interrupt period, 0 to disable")
	flags.BoolVar(&cfg.Keyboard, "k", cfg.Keyboard, "Deliver key presses as interrupts")
	flags.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose mode")
}
