package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting for the server. Values come from (in
// order of precedence) environment variables, an optional .env file, and the
// defaults below.
type Config struct {
	AppName      string `mapstructure:"APP_NAME"`
	AppPort      int    `mapstructure:"APP_PORT"`
	BaseURL      string `mapstructure:"BASE_URL"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`

	// Inference providers. A provider whose key is empty is wired with a
	// client that fails on first use; the registry still lists its models.
	OpenAIAPIKey     string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `mapstructure:"OPENAI_BASE_URL"`
	GoogleAPIKey     string `mapstructure:"GOOGLE_API_KEY"`
	AnthropicAPIKey  string `mapstructure:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string `mapstructure:"ANTHROPIC_BASE_URL"`

	// Retrieval. Mode "remote" talks to the hosted knowledge-base service;
	// "local" serves retrievals from an embedded chromem-go index.
	RetrievalMode   string `mapstructure:"RETRIEVAL_MODE"`
	RetrievalURL    string `mapstructure:"RETRIEVAL_URL"`
	RetrievalAPIKey string `mapstructure:"RETRIEVAL_API_KEY"`
	LocalIndexPath  string `mapstructure:"LOCAL_INDEX_PATH"`
	EmbeddingModel  string `mapstructure:"EMBEDDING_MODEL"`

	// GenerationTimeout bounds how long a dispatched generation may stay
	// unfinalized before its pending message is marked failed.
	GenerationTimeout time.Duration `mapstructure:"GENERATION_TIMEOUT"`

	// SMTP delivery for transactional mail.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_NAME", "Tenant Chat")
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("BASE_URL", "http://localhost:8000")
	viper.SetDefault("DATABASE_PATH", "/data/tenantchat.db")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("OPENAI_BASE_URL", "")
	viper.SetDefault("ANTHROPIC_BASE_URL", "")
	viper.SetDefault("RETRIEVAL_MODE", "remote")
	viper.SetDefault("RETRIEVAL_URL", "https://api.ragie.ai")
	viper.SetDefault("LOCAL_INDEX_PATH", "/data/index")
	viper.SetDefault("EMBEDDING_MODEL", "text-embedding-3-small")
	viper.SetDefault("GENERATION_TIMEOUT", 120*time.Second)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("MAIL_FROM", "no-reply@localhost")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
