package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedconfig "helpdesk/internal/shared/config"
	"helpdesk/internal/shared/utils"
)

type Config struct {
	Server   sharedconfig.ServerConfig   `mapstructure:"server"`
	Database sharedconfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedconfig.LoggerConfig   `mapstructure:"logger"`
	Auth     sharedconfig.AuthConfig     `mapstructure:"auth"`
	Redis    sharedconfig.RedisConfig    `mapstructure:"redis"`
	Email    sharedconfig.EmailConfig    `mapstructure:"email"`
	Identity sharedconfig.IdentityConfig `mapstructure:"identity"`
	Mailbox  sharedconfig.MailboxConfig  `mapstructure:"mailbox"`
	LLM      sharedconfig.LLMConfig      `mapstructure:"llm"`
	Storage  sharedconfig.StorageConfig  `mapstructure:"storage"`
	Ingest   sharedconfig.IngestConfig   `mapstructure:"ingest"`
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads configuration for the given environment. Files are looked up
// as configs/config.{env}.yaml with configs/config.yaml as fallback, and any
// key can be overridden through HELPDESK_ environment variables
// (e.g. HELPDESK_DATABASE_PASSWORD).
func Load(env string) (*Config, error) {
	var loadErr error
	once.Do(func() {
		v := viper.New()
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")

		v.SetEnvPrefix("HELPDESK")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setDefaults(v)

		v.SetConfigName(fmt.Sprintf("config.%s", env))
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				loadErr = fmt.Errorf("read config: %w", err)
				return
			}
			v.SetConfigName("config")
			if err := v.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					loadErr = fmt.Errorf("read config: %w", err)
					return
				}
			}
		}

		c := &Config{}
		if err := v.Unmarshal(c); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}
		if err := utils.ValidateStruct(c); err != nil {
			loadErr = fmt.Errorf("validate config: %w", err)
			return
		}
		cfg = c
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return cfg, nil
}

// Get returns the loaded configuration. It panics when called before Load.
func Get() *Config {
	if cfg == nil {
		panic("config: Get called before Load")
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "helpdesk")
	v.SetDefault("database.database", "helpdesk")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.jwt.access_exp_minutes", 60)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.from_name", "Helpdesk")
	v.SetDefault("email.workers", 4)
	v.SetDefault("email.queue_size", 256)

	v.SetDefault("identity.timeout_seconds", 10)
	v.SetDefault("mailbox.timeout_seconds", 30)
	v.SetDefault("storage.timeout_seconds", 30)

	v.SetDefault("llm.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("llm.extract_model", "openai/gpt-4o-mini")
	v.SetDefault("llm.summary_model", "openai/gpt-4o-mini")
	v.SetDefault("llm.title_model", "openai/gpt-4o-mini")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.timeout_seconds", 60)

	v.SetDefault("ingest.lookback_hours", 24)
	v.SetDefault("ingest.poll_interval_minutes", 5)
	v.SetDefault("ingest.fetch_limit", 50)
	v.SetDefault("ingest.suppressed_prefixes", []string{
		"Undeliverable",
		"Automatic reply",
		"Out of Office",
	})
}
