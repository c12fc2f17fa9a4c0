package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dmingn/dtv-schedule-rss/internal/pkg/logging"
)

const (
	defaultCacheTTLSeconds = 3600

	// Env override for deployments that cannot edit the config file.
	envCacheTTLSeconds = "DTV_SCHEDULE_CACHE_TTL_SECONDS"
)

type Config struct {
	CacheTTLSeconds int `json:"cacheTTLSeconds" yaml:"cacheTTLSeconds"` // schedule cache TTL in seconds, default 3600

	Log *logging.LogConfig `json:"log,omitempty" yaml:"log,omitempty"` // log settings
}

func (c *Config) Validate() error {
	logger := zap.L()

	if v := os.Getenv(envCacheTTLSeconds); v != "" {
		ttl, err := strconv.Atoi(v)
		if err != nil {
			logger.Warn("The cache TTL env value is not a number. Skip it.",
				zap.String("env", envCacheTTLSeconds), zap.String("value", v))
		} else {
			c.CacheTTLSeconds = ttl
		}
	}

	if c.CacheTTLSeconds < 0 {
		return errors.New("cacheTTLSeconds cannot be negative")
	}
	if c.CacheTTLSeconds == 0 {
		c.CacheTTLSeconds = defaultCacheTTLSeconds
	}

	return nil
}

// CacheTTL returns the schedule cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func Load(fPath string) (*Config, error) {
	data, err := os.ReadFile(fPath)
	if err != nil {
		return nil, err
	}
	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func CreateDefaultCfg(fPath string) error {
	f, err := os.Create(fPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)

	defaultCfg := Config{
		CacheTTLSeconds: defaultCacheTTLSeconds,
		Log:             logging.DefaultConfig(),
	}

	return encoder.Encode(&defaultCfg)
}
