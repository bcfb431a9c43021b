package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (marketplace defaults, timeouts), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	CORS   CORSConfig
	Log    LogConfig
	JWT    JWTConfig
	Market MarketConfig
	Geo    GeoConfig
	Notify NotifyConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/London"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"Europe/London"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// MarketConfig holds the marketplace-wide defaults. A lead may override the
// purchase cap per row; everything else is global.
type MarketConfig struct {
	DefaultMaxPurchases int     `envconfig:"LEAD_MAX_PURCHASES" default:"6"`
	DefaultRadiusMiles  float64 `envconfig:"MATCH_RADIUS_MILES" default:"15"`
	// Discount percentages per membership tier. Product-owned numbers, so
	// configuration rather than constants. Unlimited is always free and is
	// not configurable.
	BasicDiscountPct   float64 `envconfig:"DISCOUNT_BASIC_PCT" default:"0"`
	PremiumDiscountPct float64 `envconfig:"DISCOUNT_PREMIUM_PCT" default:"0"`
}

type GeoConfig struct {
	ProviderURL     string        `envconfig:"GEO_PROVIDER_URL" default:"https://api.postcodes.io"`
	RequestTimeout  time.Duration `envconfig:"GEO_REQUEST_TIMEOUT" default:"5s"`
	RequestsPerSec  float64       `envconfig:"GEO_REQUESTS_PER_SEC" default:"10"`
	DefaultPostcode string        `envconfig:"GEO_DEFAULT_POSTCODE" default:"LS1"`
}

type NotifyConfig struct {
	QueueSize   int    `envconfig:"NOTIFY_QUEUE_SIZE" default:"256"`
	Workers     int    `envconfig:"NOTIFY_WORKERS" default:"4"`
	SMSURL      string `envconfig:"SMS_PROVIDER_URL" default:""`
	SMSAPIKey   string `envconfig:"SMS_API_KEY" default:""`
	SMSFrom     string `envconfig:"SMS_FROM" default:"LeadMarket"`
	EmailURL    string `envconfig:"EMAIL_PROVIDER_URL" default:""`
	EmailAPIKey string `envconfig:"EMAIL_API_KEY" default:""`
	EmailFrom   string `envconfig:"EMAIL_FROM" default:"no-reply@leadmarket.example"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Europe/London",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "Europe/London",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "24h",
		},
		Market: MarketConfig{
			DefaultMaxPurchases: 6,
			DefaultRadiusMiles:  15,
		},
		Geo: GeoConfig{
			DefaultPostcode: "LS1",
			RequestTimeout:  5 * time.Second,
			RequestsPerSec:  10,
		},
		Notify: NotifyConfig{
			QueueSize: 16,
			Workers:   1,
		},
	}
}
