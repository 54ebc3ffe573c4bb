// Package config loads service settings from an optional file, a .env file
// and LOANPLANNER_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"loan-planner/logger"
)

const EnvPrefix = "LOANPLANNER"

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       logger.Config   `mapstructure:"log"`
	Limits    LimitsConfig    `mapstructure:"limits"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RateLimitConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Refill   time.Duration `mapstructure:"refill"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LimitsConfig bounds what a single request may ask for.
type LimitsConfig struct {
	MaxLoanAmount float64 `mapstructure:"max_loan_amount"`
	MaxTermYears  int     `mapstructure:"max_term_years"`
	// decimal, 10 means 1000% a year
	MaxAnnualRate float64 `mapstructure:"max_annual_rate"`
	// simulations kept in the in-memory history, 0 for no cap
	MaxHistory int `mapstructure:"max_history"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("rate_limit.capacity", 5)
	v.SetDefault("rate_limit.refill", time.Minute)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/loan-planner.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 10)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", true)

	v.SetDefault("limits.max_loan_amount", 1_000_000_000.0)
	v.SetDefault("limits.max_term_years", 50)
	v.SetDefault("limits.max_annual_rate", 10.0)
	v.SetDefault("limits.max_history", 1000)
}

// Load reads the configuration. path may be empty, in which case only
// defaults, .env and the environment apply.
func Load(path string) (Config, error) {
	// .env es opcional, pero si existe debe ser válido
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.Refill <= 0 {
		errs = append(errs, errors.New("rate_limit.capacity and rate_limit.refill must be positive"))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
	}
	if c.Limits.MaxLoanAmount <= 0 || c.Limits.MaxTermYears <= 0 || c.Limits.MaxAnnualRate <= 0 {
		errs = append(errs, errors.New("limits must be positive"))
	}
	if c.Limits.MaxHistory < 0 {
		errs = append(errs, errors.New("limits.max_history cannot be negative"))
	}
	return errors.Join(errs...)
}
