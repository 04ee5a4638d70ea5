package infra

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration. Values are loaded from
// YAML and may be overridden by environment variables afterwards.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Market struct {
		// MinListingDeposit is the smallest anti-spam deposit accepted for
		// orders and auctions, in native currency units.
		MinListingDeposit int64 `yaml:"min_listing_deposit"`
		// AuctionDelay is the number of steps an auction stays open past a
		// late bid, for auctions that allow delay.
		AuctionDelay uint64 `yaml:"auction_delay"`
		// DefaultMinRaise seeds auctions submitted without an explicit
		// minimum raise fraction. Held as a string because yaml.v3 cannot
		// decode into decimal.Decimal; parsed by MinRaise.
		DefaultMinRaise string `yaml:"default_min_raise"`
	} `yaml:"market"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Logging struct {
		Level string `yaml:"level"`
		// Dir is where rotated log files go; empty disables file logging
		// and logs to stdout only.
		Dir string `yaml:"dir"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Market.MinListingDeposit < 0 {
		return fmt.Errorf("min_listing_deposit must not be negative")
	}
	if c.Market.DefaultMinRaise != "" {
		raise, err := decimal.NewFromString(c.Market.DefaultMinRaise)
		if err != nil {
			return fmt.Errorf("default_min_raise is not a decimal: %w", err)
		}
		if raise.IsNegative() {
			return fmt.Errorf("default_min_raise must not be negative")
		}
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	return nil
}

// MinRaise returns the parsed default minimum-raise fraction, zero when
// unset. Validate has already checked the string parses.
func (c *Config) MinRaise() decimal.Decimal {
	if c.Market.DefaultMinRaise == "" {
		return decimal.Zero
	}
	raise, err := decimal.NewFromString(c.Market.DefaultMinRaise)
	if err != nil {
		return decimal.Zero
	}
	return raise
}

// overrideWithEnv replaces config values from the environment when set.
func overrideWithEnv(cfg *Config) {
	if addr := os.Getenv("NFT_MARKET_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if path := os.Getenv("NFT_MARKET_DB"); path != "" {
		cfg.Database.Path = path
	}
	if level := os.Getenv("NFT_MARKET_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if dep := os.Getenv("NFT_MARKET_MIN_DEPOSIT"); dep != "" {
		if v, err := strconv.ParseInt(dep, 10, 64); err == nil {
			cfg.Market.MinListingDeposit = v
		}
	}
}
