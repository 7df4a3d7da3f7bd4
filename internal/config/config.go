package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Cron    CronConfig    `mapstructure:"cron"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Ingest  IngestConfig  `mapstructure:"ingest"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	Agents  AgentsConfig  `mapstructure:"agents"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Rescore  string `mapstructure:"rescore"`
	RunPrune string `mapstructure:"run_prune"`
}

// FeedConfig points at the external social-platform API, a black-box source
// of posts and search results.
type FeedConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type IngestConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	PageSize     int           `mapstructure:"page_size"`
}

type ScoringConfig struct {
	KeywordsPath string `mapstructure:"keywords_path"`
	// RescoreOnStart runs one full scoring pass during startup.
	RescoreOnStart bool `mapstructure:"rescore_on_start"`
	// RunRetention is how long completed score-run records are kept.
	RunRetention time.Duration `mapstructure:"run_retention"`
}

type AgentsConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	APIBase string        `mapstructure:"api_base"`
	Roster  []AgentConfig `mapstructure:"roster"`
}

type AgentConfig struct {
	Name         string        `mapstructure:"name"`
	Strategy     string        `mapstructure:"strategy"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxMarkets   int           `mapstructure:"max_markets"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POSTMARKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.rescore", "@every 30m")
	v.SetDefault("cron.run_prune", "@every 6h")
	v.SetDefault("feed.base_url", "http://localhost:9090")
	v.SetDefault("feed.timeout", "15s")
	v.SetDefault("ingest.enabled", true)
	v.SetDefault("ingest.poll_interval", "10m")
	v.SetDefault("ingest.page_size", 100)
	v.SetDefault("scoring.keywords_path", "config/keywords.yaml")
	v.SetDefault("scoring.rescore_on_start", true)
	v.SetDefault("scoring.run_retention", "168h")
	v.SetDefault("agents.enabled", false)
	v.SetDefault("agents.api_base", "http://localhost:8080")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
