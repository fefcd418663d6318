package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-ini/ini"
	"github.com/kelseyhightower/envconfig"
)

const (
	envPrefix = "DR"

	DefaultConfFile = "dr.conf"
	DefaultVarFile  = "/var/lib/ovirt-ansible-disaster-recovery/mapping_vars.yml"

	validateSection = "validate_vars"
	varFileKey      = "var_file"
)

type Config struct {
	ConfFile          string        `envconfig:"CONF_FILE" default:"dr.conf"`
	VarFile           string        `envconfig:"VAR_FILE" default:""`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	Provider          string        `envconfig:"PROVIDER" default:"ovirt"`
	ConnectTimeout    time.Duration `envconfig:"CONNECT_TIMEOUT" default:"30s"`
	PrimaryPassword   string        `envconfig:"PRIMARY_PASSWORD" default:""`
	SecondaryPassword string        `envconfig:"SECONDARY_PASSWORD" default:""`
}

// Load builds the configuration from the DR_ environment variables and the
// [validate_vars] section of the conf file. confFile, when not empty, replaces
// DR_CONF_FILE. DR_VAR_FILE takes precedence over the conf file, and a conf
// file that does not exist leaves the default mapping file.
func Load(confFile string) (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}
	if confFile != "" {
		cfg.ConfFile = confFile
	}

	if cfg.VarFile == "" {
		varFile, err := readVarFile(cfg.ConfFile)
		if err != nil {
			return nil, err
		}
		cfg.VarFile = varFile
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive, got %s", c.ConnectTimeout)
	}
	if c.VarFile == "" {
		return fmt.Errorf("no mapping file configured")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("conf_file=%s var_file=%s log_level=%s provider=%s connect_timeout=%s", c.ConfFile, c.VarFile, c.LogLevel, c.Provider, c.ConnectTimeout)
}

func readVarFile(confFile string) (string, error) {
	if _, err := os.Stat(confFile); os.IsNotExist(err) {
		return DefaultVarFile, nil
	}

	f, err := ini.Load(confFile)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", confFile, err)
	}
	return f.Section(validateSection).Key(varFileKey).MustString(DefaultVarFile), nil
}
