package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverGoOra  = "oracle"
	DriverGodror = "godror"
)

type Config struct {
	DB       DBConfig
	Server   ServerConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Google   OAuthProviderConfig
	LinkedIn OAuthProviderConfig
	Frontend FrontendConfig
	Auth     AuthConfig
	Session  SessionConfig
	CacheTTL CacheTTLConfig
	LLM      LLMConfig
	Logger   LoggerConfig
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// OAuthProviderConfig holds the client registration for one social provider.
type OAuthProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Configured reports whether real credentials were supplied.
func (c OAuthProviderConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type FrontendConfig struct {
	BaseURL         string
	SuccessRedirect string
	FailureRedirect string
}

type AuthConfig struct {
	// LinkSocialByEmail lets a social login attach to an existing local
	// account whose email equals the provider email.
	LinkSocialByEmail bool
	BcryptCost        int
}

type SessionConfig struct {
	SweepSchedule   string
	InactiveTimeout time.Duration
}

type CacheTTLConfig struct {
	ShareSlug   time.Duration
	Leaderboard time.Duration
}

type LLMConfig struct {
	Provider  string // "", "ollama" or "openai"
	ServerURL string
	Model     string
	APIKey    string
}

type LoggerConfig struct {
	Level string
	Env   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", DriverGoOra)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 1521)
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("jwt.secret", "changeme")
	v.SetDefault("jwt.access_token_ttl", "168h")
	v.SetDefault("jwt.refresh_token_ttl", "720h")
	v.SetDefault("google.redirect_url", "http://localhost:3000/api/auth/google/callback")
	v.SetDefault("linkedin.redirect_url", "http://localhost:3000/api/auth/linkedin/callback")
	v.SetDefault("frontend.base_url", "http://localhost:8888")
	v.SetDefault("frontend.success_redirect", "http://localhost:8888/auth/social/callback")
	v.SetDefault("frontend.failure_redirect", "http://localhost:8888/auth/login")
	v.SetDefault("auth.link_social_by_email", true)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("session.sweep_schedule", "@every 2m")
	v.SetDefault("session.inactive_timeout", "2m")
	v.SetDefault("cache_ttl.share_slug", "24h")
	v.SetDefault("cache_ttl.leaderboard", "10m")
	v.SetDefault("llm.model", "qwen3:0.6b")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
}

func LoadConfig() (*Config, error) {
	// A .env file is optional; real environment variables always win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		DB: DBConfig{
			Driver:   v.GetString("db.driver"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: v.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey:       v.GetString("jwt.secret"),
			AccessTokenTTL:  v.GetDuration("jwt.access_token_ttl"),
			RefreshTokenTTL: v.GetDuration("jwt.refresh_token_ttl"),
		},
		Google: OAuthProviderConfig{
			ClientID:     v.GetString("google.client_id"),
			ClientSecret: v.GetString("google.client_secret"),
			RedirectURL:  v.GetString("google.redirect_url"),
		},
		LinkedIn: OAuthProviderConfig{
			ClientID:     v.GetString("linkedin.client_id"),
			ClientSecret: v.GetString("linkedin.client_secret"),
			RedirectURL:  v.GetString("linkedin.redirect_url"),
		},
		Frontend: FrontendConfig{
			BaseURL:         v.GetString("frontend.base_url"),
			SuccessRedirect: v.GetString("frontend.success_redirect"),
			FailureRedirect: v.GetString("frontend.failure_redirect"),
		},
		Auth: AuthConfig{
			LinkSocialByEmail: v.GetBool("auth.link_social_by_email"),
			BcryptCost:        v.GetInt("auth.bcrypt_cost"),
		},
		Session: SessionConfig{
			SweepSchedule:   v.GetString("session.sweep_schedule"),
			InactiveTimeout: v.GetDuration("session.inactive_timeout"),
		},
		CacheTTL: CacheTTLConfig{
			ShareSlug:   v.GetDuration("cache_ttl.share_slug"),
			Leaderboard: v.GetDuration("cache_ttl.leaderboard"),
		},
		LLM: LLMConfig{
			Provider:  v.GetString("llm.provider"),
			ServerURL: v.GetString("llm.server"),
			Model:     v.GetString("llm.model"),
			APIKey:    v.GetString("llm.api_key"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides maps the flat environment names used by deployments onto
// the nested config keys.
func applyEnvOverrides(cfg *Config) {
	overrideString := func(key string, dst *string) {
		if val := os.Getenv(key); val != "" {
			*dst = val
		}
	}
	overrideInt := func(key string, dst *int) {
		if val := os.Getenv(key); val != "" {
			if n, err := strconv.Atoi(val); err == nil {
				*dst = n
			}
		}
	}

	overrideString("DB_DRIVER", &cfg.DB.Driver)
	overrideString("DB_HOST", &cfg.DB.Host)
	overrideInt("DB_PORT", &cfg.DB.Port)
	overrideString("DB_USER", &cfg.DB.User)
	overrideString("DB_PASSWORD", &cfg.DB.Password)
	overrideString("DB_NAME", &cfg.DB.DBName)
	overrideInt("SERVER_PORT", &cfg.Server.Port)
	overrideInt("PORT", &cfg.Server.Port)
	overrideString("REDIS_ADDRESS", &cfg.Redis.Address)
	overrideString("REDIS_PASSWORD", &cfg.Redis.Password)
	overrideInt("REDIS_DB", &cfg.Redis.DB)
	overrideString("JWT_SECRET", &cfg.JWT.SecretKey)
	overrideString("GOOGLE_CLIENT_ID", &cfg.Google.ClientID)
	overrideString("GOOGLE_CLIENT_SECRET", &cfg.Google.ClientSecret)
	overrideString("GOOGLE_CALLBACK_URL", &cfg.Google.RedirectURL)
	overrideString("LINKEDIN_CLIENT_ID", &cfg.LinkedIn.ClientID)
	overrideString("LINKEDIN_CLIENT_SECRET", &cfg.LinkedIn.ClientSecret)
	overrideString("LINKEDIN_CALLBACK_URL", &cfg.LinkedIn.RedirectURL)
	overrideString("FRONTEND_BASE_URL", &cfg.Frontend.BaseURL)
	overrideString("FRONTEND_SUCCESS_REDIRECT", &cfg.Frontend.SuccessRedirect)
	overrideString("FRONTEND_FAILURE_REDIRECT", &cfg.Frontend.FailureRedirect)
	overrideString("AI_API_KEY", &cfg.LLM.APIKey)
	overrideString("LLM_SERVER", &cfg.LLM.ServerURL)
	overrideString("LLM_PROVIDER", &cfg.LLM.Provider)
	overrideString("LOG_LEVEL", &cfg.Logger.Level)
	overrideString("ENV", &cfg.Logger.Env)

	if val := os.Getenv("LINK_SOCIAL_BY_EMAIL"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Auth.LinkSocialByEmail = b
		}
	}
}

// GetDSN returns the connection string for the configured Oracle driver.
func (c *Config) GetDSN() string {
	if c.DB.Driver == DriverGodror {
		return fmt.Sprintf(`user="%s" password="%s" connectString="%s:%d/%s"`,
			c.DB.User,
			c.DB.Password,
			c.DB.Host,
			c.DB.Port,
			c.DB.DBName,
		)
	}
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
