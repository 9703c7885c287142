package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal(1000, cfg.ClockHz)
	assert.Equal(time.Second, cfg.TimerPeriod.Duration)
	assert.True(cfg.Keyboard)
	assert.False(cfg.Verbose)
	assert.NoError(cfg.Validate())
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	err := cfg.Decode(`
clock_hz = 50
timer_period = "250ms"
verbose = true
`)
	assert.NoError(err)
	assert.Equal(50, cfg.ClockHz)
	assert.Equal(250*time.Millisecond, cfg.TimerPeriod.Duration)
	assert.True(cfg.Verbose)
	assert.True(cfg.Keyboard)
}

func TestDecode_BadDuration(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	err := cfg.Decode(`timer_period = "soon"`)
	assert.Error(err)
}

func TestDecodeFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, FILE_NAME)
	err := os.WriteFile(path, []byte("clock_hz = 10\nkeyboard = false\n"), 0o644)
	assert.NoError(err)

	cfg := Default()
	assert.NoError(cfg.DecodeFile(path))
	assert.Equal(10, cfg.ClockHz)
	assert.False(cfg.Keyboard)
}

func TestDecodeFile_Missing(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	err := cfg.DecodeFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.NoError(err)
	assert.Equal(Default(), cfg)
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.ClockHz = 0
	cfg.TimerPeriod.Duration = -time.Second
	err := cfg.Validate()
	assert.ErrorIs(err, ErrClockHz)
	assert.ErrorIs(err, ErrTimer)
}

func TestFlags(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Flags(fs)

	err := fs.Parse([]string{"-hz", "20", "-timer", "0", "-v"})
	assert.NoError(err)
	assert.Equal(20, cfg.ClockHz)
	assert.Equal(time.Duration(0), cfg.TimerPeriod.Duration)
	assert.True(cfg.Verbose)
}
