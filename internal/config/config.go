package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the runtime configuration of the portfolio front end.
type Config struct {
	API          APIConfig          `mapstructure:"api"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Server       ServerConfig       `mapstructure:"server"`
	Storage      StorageConfig      `mapstructure:"storage"`
	UI           UIConfig           `mapstructure:"ui"`
	Integrations IntegrationsConfig `mapstructure:"integrations"`
	DevAPI       DevAPIConfig       `mapstructure:"devapi"`
	SMTP         SMTPConfig         `mapstructure:"smtp"`
}

type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	StaleTime     time.Duration `mapstructure:"staleTime"`
	CacheTime     time.Duration `mapstructure:"cacheTime"`
	SweepInterval time.Duration `mapstructure:"sweepInterval"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	// MetricsToken guards /metrics when set.
	MetricsToken string `mapstructure:"metricsToken"`
}

// StorageConfig points at the sqlite file that stands in for durable client
// storage (auth token, theme preference).
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type UIConfig struct {
	MobileBreakpoint int           `mapstructure:"mobileBreakpoint"`
	CarouselInterval time.Duration `mapstructure:"carouselInterval"`
}

// IntegrationsConfig carries keys for the map and payment widgets. Neither
// widget is rendered; the keys are passed through to templates only.
type IntegrationsConfig struct {
	MapsKey    string `mapstructure:"mapsKey"`
	PaymentKey string `mapstructure:"paymentKey"`
}

type DevAPIConfig struct {
	ContentDir string `mapstructure:"contentDir"`
	Port       string `mapstructure:"port"`
	Watch      bool   `mapstructure:"watch"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	To   string `mapstructure:"to"`
}

// Enabled reports whether credentials are present.
func (s SMTPConfig) Enabled() bool {
	return s.User != "" && s.Pass != ""
}

const (
	EnvPrefix      = "PORTFOLIO"
	DefaultAPIURL  = "https://api.yourportfolio.com"
	configFileName = "portfolio"
)

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.timeout", 10*time.Second)

	v.SetDefault("cache.staleTime", 5*time.Minute)
	v.SetDefault("cache.cacheTime", 15*time.Minute)
	v.SetDefault("cache.sweepInterval", time.Minute)

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.metricsToken", "")
	v.SetDefault("storage.path", "portfolio.db")

	v.SetDefault("ui.mobileBreakpoint", 768)
	v.SetDefault("ui.carouselInterval", 8*time.Second)

	v.SetDefault("integrations.mapsKey", "")
	v.SetDefault("integrations.paymentKey", "")

	v.SetDefault("devapi.contentDir", "content")
	v.SetDefault("devapi.port", "8081")
	v.SetDefault("devapi.watch", true)

	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.to", "")
}

// Load reads configuration with precedence env > file > defaults. An empty
// cfgFile searches the working directory for portfolio.yaml; a missing file is
// only an error when cfgFile was given explicitly.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacySMTPEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// PORT is honoured the way hosting platforms set it.
	if port := os.Getenv("PORT"); port != "" && os.Getenv(EnvPrefix+"_SERVER_PORT") == "" {
		cfg.Server.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindLegacySMTPEnv keeps the plain SMTP_* and TO_EMAIL variables working
// next to their PORTFOLIO_SMTP_* forms.
func bindLegacySMTPEnv(v *viper.Viper) {
	for key, legacy := range map[string]string{
		"smtp.host": "SMTP_HOST",
		"smtp.port": "SMTP_PORT",
		"smtp.user": "SMTP_USER",
		"smtp.pass": "SMTP_PASS",
		"smtp.to":   "TO_EMAIL",
	} {
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), legacy)
	}
}

// Default returns the configuration with only defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.url must be an absolute URL, got %q", c.API.URL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if c.Cache.StaleTime < 0 {
		return errors.New("cache.staleTime cannot be negative")
	}
	if c.Cache.CacheTime < c.Cache.StaleTime {
		return fmt.Errorf("cache.cacheTime (%s) must not be shorter than cache.staleTime (%s)", c.Cache.CacheTime, c.Cache.StaleTime)
	}
	if c.Cache.SweepInterval <= 0 {
		return errors.New("cache.sweepInterval must be positive")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.UI.MobileBreakpoint <= 0 {
		return errors.New("ui.mobileBreakpoint must be positive")
	}
	if c.UI.CarouselInterval <= 0 {
		return errors.New("ui.carouselInterval must be positive")
	}
	return nil
}
