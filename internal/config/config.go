// ABOUTME: Settings loading for termctl: YAML file decoded over built-in defaults
// ABOUTME: Uses gopkg.in/yaml.v3 with known-fields checking; Validate and Options convert to terminal tunables

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/termctl/internal/log"
	"github.com/mauromedda/termctl/pkg/term/key"
	"github.com/mauromedda/termctl/pkg/term/terminal"
)

// maxReadAhead matches the decoder's longest supported sequence.
const maxReadAhead = 16

// Settings holds the termctl configuration.
type Settings struct {
	Backend       string        `yaml:"backend"`
	EscapeWait    time.Duration `yaml:"escape_wait"`
	ReadAhead     int           `yaml:"read_ahead"`
	ReportTimeout time.Duration `yaml:"report_timeout"`
	ReportLimit   int           `yaml:"report_limit"`
	LogLevel      string        `yaml:"log_level"`
}

// Default returns the settings used when no file is present.
func Default() *Settings {
	return &Settings{
		Backend:       string(terminal.BackendAuto),
		EscapeWait:    key.DefaultEscapeWait,
		ReadAhead:     key.DefaultReadAhead,
		ReportTimeout: terminal.DefaultReportTimeout,
		ReportLimit:   terminal.DefaultReportLimit,
		LogLevel:      "info",
	}
}

// Load resolves the config file (see Path), decodes it over the defaults,
// expands ${VAR} references and validates the result. A missing default
// file is not an error; a missing file that was asked for explicitly is.
func Load(flagPath string) (*Settings, error) {
	path := Path(flagPath)
	explicit := flagPath != "" || os.Getenv(EnvConfigPath) != ""

	s, err := loadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			log.Debug("no config file at %s, using defaults", path)
			return Default(), nil
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}

	ResolveEnvVars(s)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return s, nil
}

// loadFile reads Settings from a YAML file, starting from Default.
func loadFile(path string) (*Settings, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected so a
// typo does not silently fall back to a default.
func Parse(data []byte) (*Settings, error) {
	s := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return s, nil
}

// Validate rejects values the terminal layer cannot honor.
func (s *Settings) Validate() error {
	var errs []error

	if _, err := terminal.ParseBackend(s.Backend); err != nil {
		errs = append(errs, err)
	}
	if s.EscapeWait < 0 {
		errs = append(errs, fmt.Errorf("escape_wait must not be negative, got %s", s.EscapeWait))
	}
	if s.ReportTimeout < 0 {
		errs = append(errs, fmt.Errorf("report_timeout must not be negative, got %s", s.ReportTimeout))
	}
	if s.ReadAhead < 1 || s.ReadAhead > maxReadAhead {
		errs = append(errs, fmt.Errorf("read_ahead must be between 1 and %d, got %d", maxReadAhead, s.ReadAhead))
	}
	if s.ReportLimit < 0 {
		errs = append(errs, fmt.Errorf("report_limit must not be negative, got %d", s.ReportLimit))
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// BackendName returns the parsed backend, falling back to auto.
func (s *Settings) BackendName() terminal.Backend {
	b, err := terminal.ParseBackend(s.Backend)
	if err != nil {
		return terminal.BackendAuto
	}
	return b
}

// Level returns the parsed log level, falling back to info.
func (s *Settings) Level() slog.Level {
	l, _ := log.ParseLevel(s.LogLevel)
	return l
}

// Options converts the tunables to terminal.Options. Zero durations and
// limits pick the terminal defaults.
func (s *Settings) Options() terminal.Options {
	return terminal.Options{
		EscapeWait:    s.EscapeWait,
		ReadAhead:     s.ReadAhead,
		ReportTimeout: s.ReportTimeout,
		ReportLimit:   s.ReportLimit,
	}
}
