package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	LLM struct {
		Provider    string        `yaml:"provider" default:"claude"`
		APIKey      string        `yaml:"api_key"`
		Model       string        `yaml:"model" default:"claude-3-haiku-20240307"`
		MaxTokens   int           `yaml:"max_tokens" default:"8192"`
		Temperature float32       `yaml:"temperature" default:"0.2"`
		Timeout     time.Duration `yaml:"timeout" default:"120s"`
	} `yaml:"llm"`

	ImageGen struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url" default:"https://api.openai.com/v1"`
		Model   string        `yaml:"model" default:"dall-e-3"`
		Size    string        `yaml:"size" default:"1024x1024"`
		Quality string        `yaml:"quality" default:"standard"`
		Timeout time.Duration `yaml:"timeout" default:"120s"`
	} `yaml:"imagegen"`

	Wizard struct {
		Store        string        `yaml:"store" default:"redis"` // redis, postgres or memory
		StepTTL      time.Duration `yaml:"step_ttl" default:"24h"`
		DashboardURL string        `yaml:"dashboard_url" default:"/dashboard"`
		MaxUploadMB  int           `yaml:"max_upload_mb" default:"8"`
	} `yaml:"wizard"`

	Auth struct {
		JWTSecret     string `yaml:"jwt_secret"`
		WebhookSecret string `yaml:"webhook_secret"`
	} `yaml:"auth"`

	Enrich struct {
		RateLimit    int           `yaml:"rate_limit" default:"12"` // requests per minute per identity
		Burst        int           `yaml:"burst" default:"3"`
		MaxFailures  int           `yaml:"max_failures" default:"5"`
		ResetTimeout time.Duration `yaml:"reset_timeout" default:"30s"`
	} `yaml:"enrich"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Postgres struct {
		Host     string `yaml:"host" default:"localhost"`
		Port     int    `yaml:"port" default:"5432"`
		User     string `yaml:"user" default:"postgres"`
		Password string `yaml:"password"`
		DBName   string `yaml:"db_name" default:"onboarding"`
		SSLMode  string `yaml:"ssl_mode" default:"disable"`
	} `yaml:"postgres"`

	Storage struct {
		Spaces struct {
			BucketURL       string `yaml:"bucket_url"`
			CDNEndpoint     string `yaml:"cdn_endpoint"`
			AccessKeyID     string `yaml:"access_key_id"`
			AccessKeySecret string `yaml:"access_key_secret"`
			Region          string `yaml:"region" default:"nyc3"`
			BucketName      string `yaml:"bucket_name" default:"talentmesh-assets"`
		} `yaml:"spaces"`
	} `yaml:"storage"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.LLM.Provider = "claude"
	config.LLM.Model = "claude-3-haiku-20240307"
	config.LLM.MaxTokens = 8192
	config.LLM.Temperature = 0.2
	config.LLM.Timeout = 120 * time.Second

	config.ImageGen.BaseURL = "https://api.openai.com/v1"
	config.ImageGen.Model = "dall-e-3"
	config.ImageGen.Size = "1024x1024"
	config.ImageGen.Quality = "standard"
	config.ImageGen.Timeout = 120 * time.Second

	config.Wizard.Store = "redis"
	config.Wizard.StepTTL = 24 * time.Hour
	config.Wizard.DashboardURL = "/dashboard"
	config.Wizard.MaxUploadMB = 8

	config.Enrich.RateLimit = 12
	config.Enrich.Burst = 3
	config.Enrich.MaxFailures = 5
	config.Enrich.ResetTimeout = 30 * time.Second

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Postgres.Host = "localhost"
	config.Postgres.Port = 5432
	config.Postgres.User = "postgres"
	config.Postgres.DBName = "onboarding"
	config.Postgres.SSLMode = "disable"

	config.Storage.Spaces.Region = "nyc3"
	config.Storage.Spaces.BucketName = "talentmesh-assets"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if apiKey := os.Getenv("IMAGEGEN_API_KEY"); apiKey != "" {
		c.ImageGen.APIKey = apiKey
	}

	if baseURL := os.Getenv("IMAGEGEN_BASE_URL"); baseURL != "" {
		c.ImageGen.BaseURL = baseURL
	}

	if model := os.Getenv("IMAGEGEN_MODEL"); model != "" {
		c.ImageGen.Model = model
	}

	if store := os.Getenv("WIZARD_STORE"); store != "" {
		c.Wizard.Store = store
	}

	if ttl := os.Getenv("WIZARD_STEP_TTL"); ttl != "" {
		if duration, err := time.ParseDuration(ttl); err == nil {
			c.Wizard.StepTTL = duration
		}
	}

	if dashboardURL := os.Getenv("WIZARD_DASHBOARD_URL"); dashboardURL != "" {
		c.Wizard.DashboardURL = dashboardURL
	}

	if secret := os.Getenv("AUTH_JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}

	if secret := os.Getenv("AUTH_WEBHOOK_SECRET"); secret != "" {
		c.Auth.WebhookSecret = secret
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if host := os.Getenv("DB_HOST"); host != "" {
		c.Postgres.Host = host
	}

	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Postgres.Port = p
		}
	}

	if user := os.Getenv("DB_USER"); user != "" {
		c.Postgres.User = user
	}

	if password := os.Getenv("DB_PASSWORD"); password != "" {
		c.Postgres.Password = password
	}

	if name := os.Getenv("DB_NAME"); name != "" {
		c.Postgres.DBName = name
	}

	// Spaces configuration
	if bucketURL := os.Getenv("BUCKET_URL"); bucketURL != "" {
		c.Storage.Spaces.BucketURL = bucketURL
	}

	if cdnEndpoint := os.Getenv("BUCKET_CDN_ENDPOINT"); cdnEndpoint != "" {
		c.Storage.Spaces.CDNEndpoint = cdnEndpoint
	}

	if accessKeyID := os.Getenv("BUCKET_ACCESS_KEY_ID"); accessKeyID != "" {
		c.Storage.Spaces.AccessKeyID = accessKeyID
	}

	if accessKeySecret := os.Getenv("BUCKET_ACCESS_KEY_SECRET"); accessKeySecret != "" {
		c.Storage.Spaces.AccessKeySecret = accessKeySecret
	}

	if region := os.Getenv("BUCKET_REGION"); region != "" {
		c.Storage.Spaces.Region = region
	}

	if bucketName := os.Getenv("BUCKET_NAME"); bucketName != "" {
		c.Storage.Spaces.BucketName = bucketName
	}

	if rateLimit := os.Getenv("ENRICH_RATE_LIMIT"); rateLimit != "" {
		if limit, err := strconv.Atoi(rateLimit); err == nil {
			c.Enrich.RateLimit = limit
		}
	}
}

// PostgresDSN builds the DSN for the durable store and user records
func (c *Config) PostgresDSN() string {
	dsn := "host=" + c.Postgres.Host +
		" user=" + c.Postgres.User +
		" dbname=" + c.Postgres.DBName +
		" port=" + strconv.Itoa(c.Postgres.Port) +
		" sslmode=" + c.Postgres.SSLMode
	if c.Postgres.Password != "" {
		dsn += " password=" + c.Postgres.Password
	}
	return dsn
}
