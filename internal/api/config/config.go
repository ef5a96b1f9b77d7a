package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetEnvPrefix("TRIPMATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.query_timeout_ms", 3000)
	viper.SetDefault("database.max_idle", 10)
	viper.SetDefault("database.max_open", 50)
	viper.SetDefault("database.max_lifetime", 30)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.slow_sql_ms", 200)
	viper.SetDefault("log.slow_redis_ms", 100)
	viper.SetDefault("log.slow_es_ms", 500)
	viper.SetDefault("jwt.expire_hours", 24)
	viper.SetDefault("elastic.indices.place_index", "places")
	viper.SetDefault("tour_api.page_size", 100)
	viper.SetDefault("tour_api.timeout", 10)
	viper.SetDefault("cron.index_sync", "0 */1 * * * *")
	viper.SetDefault("cron.score_reconcile", "0 30 3 * * *")
	viper.SetDefault("cron.metric_snapshot", "0 55 23 * * *")
	viper.SetDefault("cron.place_import", "0 0 4 * * *")
}
