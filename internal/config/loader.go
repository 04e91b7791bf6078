package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvConfigPath   = "OPSVIEW_INVENTORY_CONFIG"
	LocalConfigFile = "opsview-inventory.yaml"
	GlobalConfigDir = ".config/opsview-inventory"
	GlobalConfig    = "config.yaml"
)

type Info struct {
	Source string
	Path   string
}

type LoadOptions struct {
	// Path is an explicit config file, usually from --config. It must exist.
	Path string
	// Flags are bound on top of the environment and the config file.
	Flags *pflag.FlagSet
	// WorkDir and HomeDir override the search locations; empty means the
	// process working directory and the user home directory.
	WorkDir string
	HomeDir string
}

// Load resolves the configuration from, in increasing priority, built-in
// defaults, the config file, OPSVIEW_* environment variables and flags the
// user set. The result is validated before it is returned.
func Load(fs afero.Fs, opts LoadOptions) (Config, Info, error) {
	v := viper.New()
	v.SetFs(fs)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	info, err := findConfigFile(fs, opts)
	if err != nil {
		return Config{}, info, err
	}
	if info.Path != "" {
		v.SetConfigFile(info.Path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, info, &ConfigError{Kind: ErrConfigInvalid, Paths: []string{info.Path}, Err: err}
		}
	}

	if opts.Flags != nil {
		for flagName, key := range FlagKeys {
			flag := opts.Flags.Lookup(flagName)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Config{}, info, &ConfigError{Kind: ErrConfigInvalid, Err: err}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, info, &ConfigError{Kind: ErrConfigInvalid, Paths: pathsOf(info), Err: err}
	}
	if err := Validate(cfg); err != nil {
		return cfg, info, err
	}
	return cfg, info, nil
}

func findConfigFile(fs afero.Fs, opts LoadOptions) (Info, error) {
	home := opts.HomeDir
	if home == "" {
		home, _ = os.UserHomeDir()
	}

	switch {
	case opts.Path != "":
		path := expandPath(opts.Path, home)
		info := Info{Source: "flag", Path: path}
		if ok, _ := afero.Exists(fs, path); !ok {
			return info, &ConfigError{Kind: ErrConfigNotFound, Paths: []string{path}}
		}
		return info, nil
	case os.Getenv(EnvConfigPath) != "":
		path := expandPath(os.Getenv(EnvConfigPath), home)
		info := Info{Source: "env", Path: path}
		if ok, _ := afero.Exists(fs, path); !ok {
			return info, &ConfigError{Kind: ErrConfigNotFound, Paths: []string{path}}
		}
		return info, nil
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir, _ = os.Getwd()
	}
	candidates := []string{filepath.Join(workDir, LocalConfigFile)}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, GlobalConfigDir, GlobalConfig))
	}
	for _, path := range candidates {
		if ok, _ := afero.Exists(fs, path); ok {
			return Info{Source: "default", Path: path}, nil
		}
	}
	return Info{Source: "none"}, nil
}

func pathsOf(info Info) []string {
	if info.Path == "" {
		return nil
	}
	return []string{info.Path}
}

func expandPath(path, home string) string {
	path = strings.TrimSpace(path)
	if path == "" || path[0] != '~' || home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func Describe(info Info) string {
	path := info.Path
	if path == "" {
		path = "(none)"
	}
	return "config source=" + info.Source + " path=" + path
}
