package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Zoho     Zoho     `mapstructure:",squash"`
	Vat      Vat      `mapstructure:",squash"`
	ZohoSync ZohoSync `mapstructure:",squash"`
	Supabase Supabase `mapstructure:",squash"`
	Redis    Redis    `mapstructure:",squash"`
	Render   Render   `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Zoho struct {
	APIBase      string        `mapstructure:"zoho_api_base"`
	AccountsURL  string        `mapstructure:"zoho_accounts_url"`
	ClientID     string        `mapstructure:"zoho_client_id"`
	ClientSecret string        `mapstructure:"zoho_client_secret"`
	RefreshToken string        `mapstructure:"zoho_refresh_token"`
	PageSize     int           `mapstructure:"zoho_page_size"`
	MaxPages     int           `mapstructure:"zoho_max_pages"`
	SafetyMargin time.Duration `mapstructure:"zoho_token_safety_margin"`
	HTTPTimeout  time.Duration `mapstructure:"zoho_http_timeout"`
}

// Vat holds the UAE VAT registration thresholds, expressed in the reporting currency.
type Vat struct {
	ReportingCurrency string  `mapstructure:"vat_reporting_currency"`
	Threshold         float64 `mapstructure:"vat_threshold"`
	WarnAt            float64 `mapstructure:"vat_warn_at"`
}

type ZohoSync struct {
	CronSchedule      string `mapstructure:"zoho_sync_cron"`
	MaxConcurrentJobs int    `mapstructure:"zoho_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"zoho_sync_enabled"`
}

type Supabase struct {
	URL                 string        `mapstructure:"supabase_url"`
	ServiceKey          string        `mapstructure:"supabase_service_key"`
	JWTSecret           string        `mapstructure:"supabase_jwt_secret"`
	ProfileTriggerDelay time.Duration `mapstructure:"profile_trigger_delay"`
	RoleCacheTTL        time.Duration `mapstructure:"role_cache_ttl"`
}

type Redis struct {
	Addr        string `mapstructure:"redis_addr"`
	Password    string `mapstructure:"redis_password"`
	DB          int    `mapstructure:"redis_db"`
	TokenPrefix string `mapstructure:"redis_token_prefix"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/portal?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "")

	viper.SetDefault("ZOHO_API_BASE", "https://www.zohoapis.com/books/v3")
	viper.SetDefault("ZOHO_ACCOUNTS_URL", "https://accounts.zoho.com/oauth/v2/token")
	viper.SetDefault("ZOHO_CLIENT_ID", "")
	viper.SetDefault("ZOHO_CLIENT_SECRET", "")
	viper.SetDefault("ZOHO_REFRESH_TOKEN", "")
	viper.SetDefault("ZOHO_PAGE_SIZE", 200)
	viper.SetDefault("ZOHO_MAX_PAGES", 1000)
	viper.SetDefault("ZOHO_TOKEN_SAFETY_MARGIN", "60s")
	viper.SetDefault("ZOHO_HTTP_TIMEOUT", "30s")

	viper.SetDefault("VAT_REPORTING_CURRENCY", "AED")
	viper.SetDefault("VAT_THRESHOLD", 375000)
	viper.SetDefault("VAT_WARN_AT", 300000)

	viper.SetDefault("ZOHO_SYNC_CRON", "0 2 * * *") // every day at 02:00
	viper.SetDefault("ZOHO_SYNC_MAX_CONCURRENT_JOBS", 5)
	viper.SetDefault("ZOHO_SYNC_ENABLED", false)

	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_SERVICE_KEY", "")
	viper.SetDefault("SUPABASE_JWT_SECRET", "")
	viper.SetDefault("PROFILE_TRIGGER_DELAY", "800ms")
	viper.SetDefault("ROLE_CACHE_TTL", "1m")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_TOKEN_PREFIX", "portal")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Using environment loaded by godotenv (viper could not read .env): ", err)
	} else {
		logrus.Info(".env read by viper")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.Render.ServiceID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		secretsByName, err := NewRenderClient(config).ListSecrets(ctx, config.Render.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("config: loading secrets from render: %w", err)
		}
		config.ApplySecrets(secretsByName)
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// ApplySecrets fills credentials that were not provided through the environment.
// Values already set in the environment win over the secret store.
func (c *Config) ApplySecrets(secretsByName map[string]string) {
	fill := func(target *string, name string) {
		if *target != "" {
			return
		}
		if value, ok := secretsByName[name]; ok {
			*target = strings.TrimSpace(value)
		}
	}

	fill(&c.Zoho.ClientID, "zoho_client_id")
	fill(&c.Zoho.ClientSecret, "zoho_client_secret")
	fill(&c.Zoho.RefreshToken, "zoho_refresh_token")
	fill(&c.Supabase.ServiceKey, "supabase_service_key")
	fill(&c.Supabase.JWTSecret, "supabase_jwt_secret")
	fill(&c.Database.Password, "database_password")
	fill(&c.Redis.Password, "redis_password")
}

// Validate checks the settings every command needs to talk to Zoho.
func (c *Config) Validate() error {
	if c.Zoho.ClientID == "" || c.Zoho.ClientSecret == "" || c.Zoho.RefreshToken == "" {
		return fmt.Errorf("config: zoho client id, client secret and refresh token are required")
	}
	if c.Vat.WarnAt > c.Vat.Threshold {
		return fmt.Errorf("config: VAT_WARN_AT (%.2f) must not exceed VAT_THRESHOLD (%.2f)", c.Vat.WarnAt, c.Vat.Threshold)
	}
	if c.Zoho.PageSize <= 0 || c.Zoho.MaxPages <= 0 {
		return fmt.Errorf("config: ZOHO_PAGE_SIZE and ZOHO_MAX_PAGES must be positive")
	}
	return nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug(".env loaded from: ", location)
			return
		}
	}

	logrus.Debug("No .env file found, relying on process environment")
}
