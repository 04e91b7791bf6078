package config

import (
	"fmt"
	"strings"
)

type ErrorKind string

const (
	ErrConfigNotFound ErrorKind = "config_not_found"
	ErrConfigInvalid  ErrorKind = "config_invalid"
	ErrConfigMissing  ErrorKind = "config_missing"
)

type ConfigError struct {
	Kind   ErrorKind
	Paths  []string
	Fields []string
	Err    error
}

func (e *ConfigError) Error() string {
	suffix := ""
	if len(e.Paths) > 0 {
		suffix = fmt.Sprintf(" (%s)", strings.Join(e.Paths, ", "))
	}
	switch e.Kind {
	case ErrConfigNotFound:
		return fmt.Sprintf("config file not found%s", suffix)
	case ErrConfigInvalid:
		return fmt.Sprintf("invalid config%s: %v", suffix, e.Err)
	case ErrConfigMissing:
		return fmt.Sprintf("missing or invalid configuration: %v (set it in the config file, %s_* environment variables or flags)",
			e.Err, EnvPrefix)
	default:
		return fmt.Sprintf("config error%s: %v", suffix, e.Err)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
