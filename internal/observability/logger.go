package observability

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// NoticeLogger returns a child logger with notice-context fields.
func NoticeLogger(base *zap.Logger, noticeID string, workspaceID int64) *zap.Logger {
	return base.With(
		zap.String("notice_id", noticeID),
		zap.Int64("workspace_id", workspaceID),
	)
}
