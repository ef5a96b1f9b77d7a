package logger

import (
	"Tripmate/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"time"
)

const serviceName = "tripmate"

var LogWriter io.Writer = os.Stdout

// InitLogger 初始化全局 slog，Logstash 可达时同时上报，返回的函数用于关闭远程连接
func InitLogger() func() {
	level := parseLevel(config.Cfg.Log.Level)
	cfg := config.Cfg.Logstash

	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: level})
	var finalHandler log.Handler = hStdout

	var conn net.Conn
	var err error
	if cfg.Address != "" {
		conn, err = net.DialTimeout("tcp", cfg.Address, 3*time.Second)
	}
	if conn != nil && err == nil {
		hRemote := log.NewJSONHandler(conn, &log.HandlerOptions{Level: level}).
			WithAttrs([]log.Attr{
				log.String("target_index", cfg.Index),
				log.String("log_token", cfg.Token),
			})

		finalHandler = &TeeHandler{
			handlers: []log.Handler{hStdout, &RemoteFilterHandler{next: hRemote}},
		}
		LogWriter = io.MultiWriter(os.Stdout, conn)
	} else {
		LogWriter = os.Stdout
	}

	logger := log.New(&ContextHandler{finalHandler}).With(log.String("service", serviceName))
	log.SetDefault(logger)
	if conn == nil {
		log.Warn("Logstash unavailable, logging to stdout only", "addr", cfg.Address, "err", err)
		return func() {}
	}
	return func() { _ = conn.Close() }
}

func parseLevel(s string) log.Level {
	var level log.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return log.LevelInfo
	}
	return level
}

// slowThreshold 配置值为 0 时使用默认阈值
func slowThreshold(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "...[truncated]"
}
