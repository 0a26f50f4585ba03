package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	AppName           = "sense-logger"
	DefaultConfigName = "config"
	ConfigEnvVar      = "SENSELOGGER_CONFIG"
	envPrefix         = "SENSELOGGER"
)

// ─── Sections ───────────────────────────────────────────────────────────

type StorageConfig struct {
	WorkingDir    string `yaml:"working_dir" mapstructure:"working_dir"`
	FinishedDir   string `yaml:"finished_dir" mapstructure:"finished_dir"`
	SessionPrefix string `yaml:"session_prefix" mapstructure:"session_prefix"`
	SyncEveryRow  bool   `yaml:"sync_every_row" mapstructure:"sync_every_row"`
}

type SamplingConfig struct {
	IntervalMs     int `yaml:"interval_ms" mapstructure:"interval_ms"`
	PollIntervalMs int `yaml:"poll_interval_ms" mapstructure:"poll_interval_ms"`
	StatsEverySec  int `yaml:"stats_every_sec" mapstructure:"stats_every_sec"`
}

type DisplayConfig struct {
	LowLight     bool `yaml:"low_light" mapstructure:"low_light"`
	SplashMs     int  `yaml:"splash_ms" mapstructure:"splash_ms"`
	LoggedHoldMs int  `yaml:"logged_hold_ms" mapstructure:"logged_hold_ms"`
	ScrollStepMs int  `yaml:"scroll_step_ms" mapstructure:"scroll_step_ms"`
}

type InputConfig struct {
	MaxEventsPerPoll int `yaml:"max_events_per_poll" mapstructure:"max_events_per_poll"`
}

type NetworkConfig struct {
	Interface string `yaml:"interface" mapstructure:"interface"`
}

type HardwareConfig struct {
	Simulate    bool   `yaml:"simulate" mapstructure:"simulate"`
	I2CBus      string `yaml:"i2c_bus" mapstructure:"i2c_bus"`
	Framebuffer string `yaml:"framebuffer" mapstructure:"framebuffer"`
	Joystick    string `yaml:"joystick" mapstructure:"joystick"`
}

type ShutdownConfig struct {
	Command []string `yaml:"command" mapstructure:"command"`
	Confirm bool     `yaml:"confirm" mapstructure:"confirm"`
}

type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	File       string `yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
}

// Config is the top-level structure of config.yaml.
type Config struct {
	Storage  StorageConfig  `yaml:"storage" mapstructure:"storage"`
	Sampling SamplingConfig `yaml:"sampling" mapstructure:"sampling"`
	Display  DisplayConfig  `yaml:"display" mapstructure:"display"`
	Input    InputConfig    `yaml:"input" mapstructure:"input"`
	Network  NetworkConfig  `yaml:"network" mapstructure:"network"`
	Hardware HardwareConfig `yaml:"hardware" mapstructure:"hardware"`
	Shutdown ShutdownConfig `yaml:"shutdown" mapstructure:"shutdown"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Debug    bool           `yaml:"debug" mapstructure:"debug"`
}

// NewDefaultConfig returns the settings used when no config file is found.
func NewDefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			WorkingDir:    ".",
			FinishedDir:   "Finished",
			SessionPrefix: "log",
			SyncEveryRow:  true,
		},
		Sampling: SamplingConfig{
			IntervalMs:     1000,
			PollIntervalMs: 50,
			StatsEverySec:  60,
		},
		Display: DisplayConfig{
			SplashMs:     5000,
			LoggedHoldMs: 2000,
			ScrollStepMs: 100,
		},
		Input: InputConfig{
			MaxEventsPerPoll: 8,
		},
		Network: NetworkConfig{
			Interface: "wlan0",
		},
		Shutdown: ShutdownConfig{
			Command: []string{"sudo", "shutdown", "-h", "now"},
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Validate rejects settings the polling loop cannot run with.
func (c *Config) Validate() error {
	if c.Sampling.IntervalMs <= 0 {
		return errors.Errorf("sampling.interval_ms must be positive, got %d", c.Sampling.IntervalMs)
	}
	if c.Sampling.PollIntervalMs <= 0 {
		return errors.Errorf("sampling.poll_interval_ms must be positive, got %d", c.Sampling.PollIntervalMs)
	}
	if c.Storage.SessionPrefix == "" {
		return errors.New("storage.session_prefix must not be empty")
	}
	if c.Storage.FinishedDir == "" {
		return errors.New("storage.finished_dir must not be empty")
	}
	if len(c.Shutdown.Command) == 0 {
		return errors.New("shutdown.command must not be empty")
	}
	if c.Input.MaxEventsPerPoll <= 0 {
		return errors.Errorf("input.max_events_per_poll must be positive, got %d", c.Input.MaxEventsPerPoll)
	}
	return nil
}

// ResolvePaths makes the working dir absolute and anchors a relative
// finished dir inside it.
func (c *Config) ResolvePaths() error {
	wd, err := filepath.Abs(c.Storage.WorkingDir)
	if err != nil {
		return errors.Wrap(err, "resolve working dir")
	}
	c.Storage.WorkingDir = wd
	if !filepath.IsAbs(c.Storage.FinishedDir) {
		c.Storage.FinishedDir = filepath.Join(wd, c.Storage.FinishedDir)
	}
	return nil
}

func configSearchPaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", AppName))
	}
	return append(paths, "/etc/"+AppName, "./")
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadConfig resolves the config file (flag, then env, then search paths),
// applies SENSELOGGER_* environment overrides and bound flags, and returns a
// validated Config. A missing config file is not an error.
func LoadConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Seed viper with the defaults so every key is known to AutomaticEnv and
	// a partial config file only overrides what it names.
	defaults, err := DumpConfig(NewDefaultConfig())
	if err != nil {
		return nil, errors.Wrap(err, "encode defaults")
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, errors.Wrap(err, "load defaults")
	}

	configFile := ""
	if cmd != nil {
		configFile, _ = cmd.Flags().GetString("config")
	}
	if configFile == "" {
		configFile = os.Getenv(ConfigEnvVar)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		for _, p := range configSearchPaths() {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if f := cmd.Flags().Lookup("debug"); f != nil {
			_ = v.BindPFlag("debug", f)
		}
		if f := cmd.Flags().Lookup("simulate"); f != nil {
			_ = v.BindPFlag("hardware.simulate", f)
		}
		if f := cmd.Flags().Lookup("dir"); f != nil {
			_ = v.BindPFlag("storage.working_dir", f)
		}
	}

	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
		L().Debug("no config file found, using defaults")
	} else {
		L().Debug("using config file %s", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile reads a single YAML file on top of the defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DumpConfig renders cfg as YAML.
func DumpConfig(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteConfig writes cfg to path, creating parent directories. An existing
// file is kept unless overwrite is set.
func WriteConfig(cfg *Config, path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.Errorf("config %s already exists (use --yes to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	buf, err := DumpConfig(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return os.WriteFile(path, buf, 0o644)
}
