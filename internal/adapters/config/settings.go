package config

import (
	"runtime"
	"slices"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/zerr"
)

// Log formats accepted by HANDOFF_LOG_FORMAT.
const (
	LogFormatAuto   = "auto"
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// Settings are the process-level options read from HANDOFF_* variables.
type Settings struct {
	// Workers is the number of pipeline workers. Zero means one per CPU.
	Workers   int    `env:"WORKERS"    envDefault:"0"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"auto"`
	Manifest  string `env:"MANIFEST"   envDefault:"handoff.yaml"`
	// StateDir holds the digest history.
	StateDir string `env:"STATE_DIR" envDefault:".handoff"`
	// OTelEndpoint is an OTLP/HTTP collector URL. Empty disables export.
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// LoadSettings reads Settings from the process environment.
func LoadSettings() (Settings, error) {
	return parseSettings(env.Options{Prefix: domain.EnvPrefix})
}

// LoadSettingsFrom reads Settings from the given variables instead of the
// process environment.
func LoadSettingsFrom(environ map[string]string) (Settings, error) {
	return parseSettings(env.Options{Prefix: domain.EnvPrefix, Environment: environ})
}

func parseSettings(opts env.Options) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, zerr.Wrap(err, domain.ErrSettingsParseFailed.Error())
	}

	if s.Workers < 0 {
		return Settings{}, zerr.With(domain.ErrSettingsParseFailed, "workers", s.Workers)
	}
	if !slices.Contains([]string{LogFormatAuto, LogFormatPretty, LogFormatJSON}, s.LogFormat) {
		return Settings{}, zerr.With(domain.ErrSettingsParseFailed, "log_format", s.LogFormat)
	}

	return s, nil
}

// WorkerCount resolves Workers, mapping zero to the number of CPUs.
func (s Settings) WorkerCount() int {
	if s.Workers == 0 {
		return runtime.NumCPU()
	}
	return s.Workers
}
