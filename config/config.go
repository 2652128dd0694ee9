package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger    `mapstructure:"logger"`
	DB        Database  `mapstructure:"database"`
	API       API       `mapstructure:"api"`
	Engine    Engine    `mapstructure:"engine"`
	Scheduler Scheduler `mapstructure:"scheduler"`
	Cache     Cache     `mapstructure:"cache"`
	PriceFeed PriceFeed `mapstructure:"pricefeed"`
	Alert     Alert     `mapstructure:"alert"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

// Engine holds the startup defaults for the auto-profit engine. Risk
// parameters can be changed later through the config update endpoint.
type Engine struct {
	InitialCapital   float64 `mapstructure:"initial_capital"`
	DailyGoal        float64 `mapstructure:"daily_goal"`
	ProfitTarget     float64 `mapstructure:"profit_target"`
	StopLoss         float64 `mapstructure:"stop_loss"`
	TrailingStop     bool    `mapstructure:"trailing_stop"`
	MaxRiskPerTrade  float64 `mapstructure:"max_risk_per_trade"`
	AutoCompound     bool    `mapstructure:"auto_compound"`
	MaxOpenPositions int     `mapstructure:"max_open_positions"`
}

type Scheduler struct {
	MonitorInterval time.Duration `mapstructure:"monitor_interval"`
	DailyResetCron  string        `mapstructure:"daily_reset_cron"`
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type PriceFeed struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
}

type Alert struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

func Load() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)

	// Engine defaults mirror a conservative intraday profile: $100 daily
	// goal, 3% target, 1.5% stop, 2% risk per trade, at most 3 open trades.
	viper.SetDefault("engine.initial_capital", 10000)
	viper.SetDefault("engine.daily_goal", 100)
	viper.SetDefault("engine.profit_target", 3)
	viper.SetDefault("engine.stop_loss", 1.5)
	viper.SetDefault("engine.trailing_stop", true)
	viper.SetDefault("engine.max_risk_per_trade", 2)
	viper.SetDefault("engine.auto_compound", true)
	viper.SetDefault("engine.max_open_positions", 3)

	viper.SetDefault("scheduler.monitor_interval", 5*time.Second)
	viper.SetDefault("scheduler.daily_reset_cron", "0 0 * * *")
	viper.SetDefault("scheduler.max_concurrency", 5)

	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)

	viper.SetDefault("pricefeed.base_url", "https://api.binance.com")
	viper.SetDefault("pricefeed.timeout", 10*time.Second)
	viper.SetDefault("pricefeed.max_request_per_min", 60)
}
