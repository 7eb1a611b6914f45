package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type OAuthProvider struct {
	ClientID     string `mapstructure:"client_id"`
	AuthorizeURL string `mapstructure:"authorize_url"`
	RedirectURI  string `mapstructure:"redirect_uri"`
	Scope        string `mapstructure:"scope"`
}

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		Environment        string   `mapstructure:"environment"` // development or production
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
		CorsMaxAgeSeconds  int      `mapstructure:"cors_max_age_seconds"` // preflight cache
	} `mapstructure:"server"`

	Upstream struct {
		BaseURL string `mapstructure:"base_url"` // backend API root, e.g. http://api:8000
	} `mapstructure:"upstream"`

	Session struct {
		CookieName      string `mapstructure:"cookie_name"`
		MaxAgeMinutes   int    `mapstructure:"max_age_minutes"`
		RememberMeDays  int    `mapstructure:"remember_me_days"`
		StateMaxAgeSecs int    `mapstructure:"state_max_age_secs"` // OAuth state cookie lifetime
	} `mapstructure:"session"`

	Redis struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`

	Cache struct {
		ReferenceTTLMinutes int `mapstructure:"reference_ttl_minutes"`
	} `mapstructure:"cache"`

	OAuth map[string]OAuthProvider `mapstructure:"oauth"`
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Content-Type", "Authorization"})
	v.SetDefault("server.cors_max_age_seconds", 300)
	v.SetDefault("upstream.base_url", "http://localhost:8000")
	v.SetDefault("session.cookie_name", "vibe_hr_token")
	v.SetDefault("session.max_age_minutes", 480)
	v.SetDefault("session.remember_me_days", 30)
	v.SetDefault("session.state_max_age_secs", 300)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("cache.reference_ttl_minutes", 10)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override upstream settings from API_* environment variables
	if base := os.Getenv("API_BASE_URL"); base != "" {
		cfg.Upstream.BaseURL = base
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Server.Environment = env
	}

	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Server.Port = n
		}
	}

	// Override Redis settings from REDIS_* environment variables
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Redis.Port = n
		}
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}

	// OAuth client IDs come from the environment, never from the config file
	for name, p := range cfg.OAuth {
		if id := os.Getenv("OAUTH_" + envKey(name) + "_CLIENT_ID"); id != "" {
			p.ClientID = id
			cfg.OAuth[name] = p
		}
	}

	return &cfg
}

func envKey(provider string) string {
	out := make([]byte, 0, len(provider))
	for i := 0; i < len(provider); i++ {
		c := provider[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
