package config

import (
	"fmt"
	"strings"
	"time"

	libconfig "busreserva/backend/libs/config"
)

// Session store drivers.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// HTTPConfig is the browser-facing listener.
type HTTPConfig struct {
	Port string `yaml:"port" env:"WEB_CLIENT_HTTP_PORT"`
}

// APIConfig points at the reservation API.
type APIConfig struct {
	BaseURL string `yaml:"baseUrl" env:"RESERVATION_API_URL"`
}

// HTTPClientConfig tunes upstream calls.
type HTTPClientConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds" env:"WEB_CLIENT_HTTP_TIMEOUT"`
}

// SessionConfig selects where browser sessions live.
type SessionConfig struct {
	Driver       string        `yaml:"driver" env:"SESSION_DRIVER"`
	Secret       string        `yaml:"secret" env:"SESSION_SECRET"`
	CookieName   string        `yaml:"cookieName" env:"SESSION_COOKIE_NAME"`
	CookieSecure bool          `yaml:"cookieSecure" env:"SESSION_COOKIE_SECURE"`
	TTL          time.Duration `yaml:"ttl" env:"SESSION_TTL"`
}

// RedisConfig is used by the redis session driver.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

// DatabaseConfig is used by the postgres session driver.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_DSN"`
}

// DisplayConfig controls how data is presented.
type DisplayConfig struct {
	Timezone    string `yaml:"timezone" env:"DISPLAY_TIMEZONE"`
	DefaultSeat int    `yaml:"defaultSeat" env:"DEFAULT_SEAT"`
}

// WSConfig tunes the session event stream.
type WSConfig struct {
	PingIntervalSeconds int `yaml:"pingIntervalSeconds" env:"WS_PING_INTERVAL"`
	WriteTimeoutSeconds int `yaml:"writeTimeoutSeconds" env:"WS_WRITE_TIMEOUT"`
}

// Config defines web client configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	API        APIConfig        `yaml:"api"`
	HTTPClient HTTPClientConfig `yaml:"httpClient"`
	Session    SessionConfig    `yaml:"session"`
	Redis      RedisConfig      `yaml:"redis"`
	Database   DatabaseConfig   `yaml:"database"`
	Display    DisplayConfig    `yaml:"display"`
	WS         WSConfig         `yaml:"ws"`
}

// Load configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP:       HTTPConfig{Port: "8081"},
		API:        APIConfig{BaseURL: "http://localhost:8080"},
		HTTPClient: HTTPClientConfig{TimeoutSeconds: 10},
		Session:    SessionConfig{Driver: DriverMemory, CookieName: "sid"},
		Redis:      RedisConfig{Addr: "localhost:6379"},
		Display:    DisplayConfig{Timezone: "Local", DefaultSeat: 1},
		WS:         WSConfig{PingIntervalSeconds: 30, WriteTimeoutSeconds: 10},
	}

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Session.Driver = strings.ToLower(strings.TrimSpace(c.Session.Driver))
	switch c.Session.Driver {
	case DriverMemory, DriverRedis:
	case DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("config: database dsn required for %s session driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("config: unknown session driver %q", c.Session.Driver)
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("config: api base url required")
	}
	if c.Display.DefaultSeat <= 0 {
		c.Display.DefaultSeat = 1
	}
	return nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8081"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// HTTPTimeout returns http client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPClient.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.HTTPClient.TimeoutSeconds) * time.Second
}

// PingInterval returns how often open pages are pinged.
func (c *Config) PingInterval() time.Duration {
	if c.WS.PingIntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.WS.PingIntervalSeconds) * time.Second
}

// WriteTimeout bounds a single websocket write.
func (c *Config) WriteTimeout() time.Duration {
	if c.WS.WriteTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.WS.WriteTimeoutSeconds) * time.Second
}
