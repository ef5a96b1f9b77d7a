package logger

import (
	"Tripmate/internal/api/config"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLog struct {
	Time        string `json:"time"`
	Level       string `json:"level"`
	Msg         string `json:"msg"`
	Service     string `json:"service"`
	TraceID     string `json:"trace_id"`
	LogToken    string `json:"log_token,omitempty"`
	TargetIndex string `json:"target_index,omitempty"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	ClientIP    string `json:"client_ip"`
	Status      int    `json:"status"`
	Latency     string `json:"latency"`
}

// SetupGin 注册访问日志与 Recovery，skipPaths 不写访问日志
func SetupGin(r *gin.Engine, skipPaths ...string) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: skipPaths,
		Formatter: formatAccessLog,
	}))

	r.Use(gin.Recovery())
}

func formatAccessLog(p gin.LogFormatterParams) string {
	entry := accessLog{
		Time:     p.TimeStamp.Format(time.RFC3339),
		Level:    "INFO",
		Msg:      "GIN_ACCESS",
		Service:  serviceName,
		TraceID:  accessTraceID(p),
		Method:   p.Method,
		Path:     p.Path,
		ClientIP: p.ClientIP,
		Status:   p.StatusCode,
		Latency:  p.Latency.String(),
	}
	if p.StatusCode >= 500 {
		entry.Level = "ERROR"
	}
	if config.Cfg != nil {
		entry.LogToken = config.Cfg.Logstash.Token
		entry.TargetIndex = config.Cfg.Logstash.Index
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return ""
	}
	return string(b) + "\n"
}

func accessTraceID(p gin.LogFormatterParams) string {
	if p.Keys != nil {
		if id, ok := p.Keys[TraceIDKey].(string); ok && id != "" {
			return id
		}
	}
	if p.Request != nil {
		if id, ok := p.Request.Context().Value(TraceIDKey).(string); ok {
			return id
		}
	}
	return ""
}
