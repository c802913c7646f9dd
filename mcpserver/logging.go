package mcpserver

import (
	"time"

	"go.uber.org/zap"

	"github.com/SamuelRCrider/xplicit-go/core"
)

// argumentLimit truncates long string arguments such as lyrics in logs
const argumentLimit = 100

// RequestLogger logs tool calls and their results
type RequestLogger struct {
	logger *zap.Logger
}

// NewRequestLogger creates a new request logger
func NewRequestLogger(logger *zap.Logger) *RequestLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestLogger{logger: logger}
}

// LogRequest logs an incoming tool call
func (l *RequestLogger) LogRequest(requestID, tool string, args map[string]interface{}) {
	safe := make(map[string]interface{}, len(args))
	for k, v := range args {
		if s, ok := v.(string); ok {
			v = core.Truncate(s, argumentLimit)
		}
		safe[k] = v
	}

	l.logger.Info("tool request",
		zap.String("request_id", requestID),
		zap.String("tool", tool),
		zap.Any("arguments", safe))
}

// LogResponse logs the outcome of a tool call
func (l *RequestLogger) LogResponse(requestID, tool string, duration time.Duration, err error) {
	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("tool", tool),
		zap.Duration("duration", duration),
	}
	if err != nil {
		l.logger.Warn("tool failed", append(fields, zap.Error(err))...)
		return
	}
	l.logger.Info("tool completed", fields...)
}
