package configloader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"balance_ranker/internal/app/ranking"
	"balance_ranker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath   = "config/config.yml"
	DefaultPriceFeedURL = "https://interview.switcheo.com/prices.json"
	DefaultIconBaseURL  = "https://raw.githubusercontent.com/Switcheo/token-icons/main/tokens"
	// StaticPriceFeed as priceFeed.url serves priceFeed.static instead of calling out.
	StaticPriceFeed = "static"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// PriceFeedConfig configures the external price feed and its cache.
type PriceFeedConfig struct {
	URL                  string            `yaml:"url"`
	RequestTimeoutMillis int64             `yaml:"requestTimeoutMillis"`
	CacheTTLSeconds      int               `yaml:"cacheTTLSeconds"`
	RateLimitPerSecond   float64           `yaml:"rateLimitPerSecond"`
	RateLimitBurst       int               `yaml:"rateLimitBurst"`
	IconBaseURL          string            `yaml:"iconBaseURL"`
	Static               map[string]string `yaml:"static"`
}

// RankingConfig holds the chain priority table and the display eligibility rule.
type RankingConfig struct {
	Priorities  map[string]int `yaml:"priorities"`
	Eligibility string         `yaml:"eligibility"`
}

// BalancesConfig points at a YAML file of static balances.
type BalancesConfig struct {
	File string `yaml:"file"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines int `yaml:"maxConcurrentRoutines"`
	RPCCallTimeoutSeconds int `yaml:"rpcCallTimeoutSeconds"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Path     string `yaml:"path"`
	SpecFile string `yaml:"specFile"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig               `yaml:"server"`
	Logging     LoggingConfig              `yaml:"logging"`
	PriceFeed   PriceFeedConfig            `yaml:"priceFeed"`
	Ranking     RankingConfig              `yaml:"ranking"`
	Balances    BalancesConfig             `yaml:"balances"`
	Networks    []entity.NetworkDefinition `yaml:"networks"`
	Wallets     []string                   `yaml:"wallets"`
	Performance PerformanceConfig          `yaml:"performance"`
	Swagger     SwaggerConfig              `yaml:"swagger"`
}

// PathFromEnv returns CONFIG_PATH or the default location.
func PathFromEnv() string {
	if p, ok := os.LookupEnv("CONFIG_PATH"); ok && p != "" {
		return p
	}
	return DefaultConfigPath
}

// Load reads the YAML configuration file from the given path, applies defaults and validates it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	logrus.Info("Configuration loaded successfully.")
	return cfg, nil
}

// Parse unmarshals YAML configuration, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	c.Server.Port = strings.TrimPrefix(c.Server.Port, ":")
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.PriceFeed.URL == "" {
		c.PriceFeed.URL = DefaultPriceFeedURL
		logrus.Infof("priceFeed.url not set, defaulting to %s", c.PriceFeed.URL)
	}
	if c.PriceFeed.RequestTimeoutMillis <= 0 {
		c.PriceFeed.RequestTimeoutMillis = 10000
	}
	if c.PriceFeed.CacheTTLSeconds <= 0 {
		c.PriceFeed.CacheTTLSeconds = 60
		logrus.Infof("priceFeed.cacheTTLSeconds not set, defaulting to %d", c.PriceFeed.CacheTTLSeconds)
	}
	if c.PriceFeed.RateLimitPerSecond <= 0 {
		c.PriceFeed.RateLimitPerSecond = 2
	}
	if c.PriceFeed.RateLimitBurst <= 0 {
		c.PriceFeed.RateLimitBurst = 1
	}
	if c.PriceFeed.IconBaseURL == "" {
		c.PriceFeed.IconBaseURL = DefaultIconBaseURL
	}

	if len(c.Ranking.Priorities) == 0 {
		c.Ranking.Priorities = ranking.DefaultPriorities()
		logrus.Infof("ranking.priorities not set, using the default table of %d chains", len(c.Ranking.Priorities))
	}
	if c.Ranking.Eligibility == "" {
		c.Ranking.Eligibility = ranking.PolicyNonPositive
	}

	if c.Performance.MaxConcurrentRoutines <= 0 {
		c.Performance.MaxConcurrentRoutines = 4
	}
	if c.Performance.RPCCallTimeoutSeconds <= 0 {
		c.Performance.RPCCallTimeoutSeconds = 10
	}

	if c.Swagger.Path == "" {
		c.Swagger.Path = "/swagger"
	}
	if c.Swagger.SpecFile == "" {
		c.Swagger.SpecFile = "./docs/swagger.yaml"
	}
}

// Validate reports every configuration problem found, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ranking.PolicyByName(c.Ranking.Eligibility); err != nil {
		errs = append(errs, fmt.Errorf("ranking.eligibility: %w", err))
	}
	for chain := range c.Ranking.Priorities {
		if strings.TrimSpace(chain) == "" {
			errs = append(errs, errors.New("ranking.priorities: empty chain name"))
		}
	}
	if c.PriceFeed.URL == StaticPriceFeed && len(c.PriceFeed.Static) == 0 {
		errs = append(errs, errors.New("priceFeed.static must list prices when priceFeed.url is \"static\""))
	}
	for i, n := range c.Networks {
		if strings.TrimSpace(n.Name) == "" {
			errs = append(errs, fmt.Errorf("networks[%d]: name is required", i))
		}
	}
	for i, w := range c.Wallets {
		if !common.IsHexAddress(w) {
			errs = append(errs, fmt.Errorf("wallets[%d]: %q is not a hex address", i, w))
		}
	}
	if len(c.Networks) > 0 && len(c.Wallets) == 0 {
		logrus.Warn("networks are configured but no wallets are listed; EVM balances will be empty")
	}
	return errors.Join(errs...)
}
