package config

// Config 配置主体
type Config struct {
	Server             ServerConfig       `mapstructure:"server"`
	DB                 DBConfig           `mapstructure:"database"`
	Redis              RedisConfig        `mapstructure:"redis"`
	Log                LogConfig          `mapstructure:"log"`
	Logstash           LogstashConfig     `mapstructure:"logstash"`
	JWT                JWTConfig          `mapstructure:"jwt"`
	Elastic            ElasticConfig      `mapstructure:"elastic"`
	Kafka              KafkaConfig        `mapstructure:"kafka"`
	KafkaPlaceConsumer KafkaPlaceConsumer `mapstructure:"kafka_place_consumer"`
	TourAPI            TourAPIConfig      `mapstructure:"tour_api"`
	Cron               CronConfig         `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port           int `mapstructure:"port"`
	QueryTimeoutMs int `mapstructure:"query_timeout_ms"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogConfig 日志级别与慢操作阈值
type LogConfig struct {
	Level       string `mapstructure:"level"`
	SlowSQLMs   int    `mapstructure:"slow_sql_ms"`
	SlowRedisMs int    `mapstructure:"slow_redis_ms"`
	SlowESMs    int    `mapstructure:"slow_es_ms"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	PlaceIndex string `mapstructure:"place_index"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// KafkaPlaceConsumer Canal 推送的景点/分类表变更
type KafkaPlaceConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// TourAPIConfig 公共旅游数据接口
type TourAPIConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	BaseURL    string `mapstructure:"base_url"`
	ServiceKey string `mapstructure:"service_key"`
	PageSize   int    `mapstructure:"page_size"`
	Timeout    int    `mapstructure:"timeout"`
}

// CronConfig 定时任务表达式（带秒）
type CronConfig struct {
	IndexSync      string `mapstructure:"index_sync"`
	ScoreReconcile string `mapstructure:"score_reconcile"`
	MetricSnapshot string `mapstructure:"metric_snapshot"`
	PlaceImport    string `mapstructure:"place_import"`
}
