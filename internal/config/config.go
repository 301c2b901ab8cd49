// Package config loads run settings from flags, environment and an optional
// YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/reoring/logcontract/report"
)

// DefaultLogName is the file name searched for when LOG_NAME is unset.
const DefaultLogName = "dbt.log"

// Driver names.
const (
	DriverGoJSON   = "gojson"
	DriverFastJSON = "fastjson"
)

// ErrNoLogDir is returned when no log directory was configured.
var ErrNoLogDir = errors.New("LOG_DIR is not set")

type Config struct {
	LogDir  string `mapstructure:"log_dir"`
	LogName string `mapstructure:"log_name"`
	Driver  string `mapstructure:"driver"`
	Format  string `mapstructure:"format"`
	Lang    string `mapstructure:"lang"`
	Verbose bool   `mapstructure:"verbose"`
}

// key -> environment variable. LOG_DIR and LOG_NAME keep the names the test
// harnesses already export.
var envKeys = map[string]string{
	"log_dir":  "LOG_DIR",
	"log_name": "LOG_NAME",
	"driver":   "LOGCONTRACT_DRIVER",
	"format":   "LOGCONTRACT_FORMAT",
	"lang":     "LOGCONTRACT_LANG",
	"verbose":  "LOGCONTRACT_VERBOSE",
}

// key -> flag name.
var flagKeys = map[string]string{
	"log_dir":  "log-dir",
	"log_name": "log-name",
	"driver":   "driver",
	"format":   "format",
	"lang":     "lang",
	"verbose":  "verbose",
}

// Load resolves the configuration and validates it. configFile may be empty;
// flags may be nil and flags missing from the set are not bound.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	c, err := Resolve(configFile, flags)
	if err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// Resolve is Load without validation, for commands such as schema that need
// output settings but no log directory.
func Resolve(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault("log_name", DefaultLogName)
	v.SetDefault("driver", DriverGoJSON)
	v.SetDefault("format", string(report.Text))
	v.SetDefault("lang", "en")

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind --%s: %w", name, err)
				}
			}
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.LogDir == "" {
		return ErrNoLogDir
	}
	if c.LogName == "" {
		return errors.New("LOG_NAME is empty")
	}
	switch c.Driver {
	case DriverGoJSON, DriverFastJSON:
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", c.Driver, DriverGoJSON, DriverFastJSON)
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	switch c.Lang {
	case "en", "ja":
	default:
		return fmt.Errorf("unknown language %q (want en or ja)", c.Lang)
	}
	return nil
}
