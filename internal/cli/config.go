package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors RootOptions for the TOML config file.
type FileConfig struct {
	Format   string `toml:"format"`
	LogLevel string `toml:"log_level"`
	Verbose  *bool  `toml:"verbose"`
	Database string `toml:"db"`

	// State holds the default last applied counters for the check command.
	State struct {
		Primary   *int32 `toml:"primary"`
		Secondary *int32 `toml:"secondary"`
		Session   *int32 `toml:"session"`
	} `toml:"state"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
// Unknown keys are rejected.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields().Decode(&fc); err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.updseq/config.toml, or "" if the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".updseq", "config.toml")
	}
	return ""
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// ApplyFileConfig copies file values into opts, skipping flags set on the
// command line (changed).
func ApplyFileConfig(opts *RootOptions, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("format", fc.Format, &opts.Format)
	s.setString("log-level", fc.LogLevel, &opts.LogLevel)
	s.setBool("verbose", fc.Verbose, &opts.Verbose)
	s.setString("db", fc.Database, &opts.Database)

	s.setInt32("primary", fc.State.Primary, &opts.State.Primary)
	s.setInt32("secondary", fc.State.Secondary, &opts.State.Secondary)
	s.setInt32("session", fc.State.Session, &opts.State.Session)
}

// ApplyEnvConfig applies UPDSEQ_* environment variables. They override the
// config file but not flags set on the command line.
func ApplyEnvConfig(opts *RootOptions, changed map[string]bool, getenv func(string) string) error {
	s := newConfigSetter(changed)

	s.setString("format", getenv("UPDSEQ_FORMAT"), &opts.Format)
	s.setString("log-level", getenv("UPDSEQ_LOG_LEVEL"), &opts.LogLevel)
	s.setString("db", getenv("UPDSEQ_DB"), &opts.Database)

	if v := getenv("UPDSEQ_VERBOSE"); v != "" && !changed["verbose"] {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse UPDSEQ_VERBOSE: %w", err)
		}
		opts.Verbose = b
	}
	return nil
}

// configSetter applies configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setInt32 sets a counter from a pointer if not nil and flag not changed.
// Zero is a valid counter.
func (s *configSetter) setInt32(flag string, value *int32, dst *int32) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
