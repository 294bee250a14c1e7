// Package testutil builds the console loggers shared by this repo's test
// suite and its demo CLI (cmd/scroogecoind), which doesn't warrant a
// separate construction path of its own.
package testutil

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewSimpleLogger builds a development-mode console logger named root,
// defaulting to info level (debug lowers the threshold). Block and
// transaction ids are logged as long hashes, so a compact time layout keeps
// the rest of a log line readable.
func NewSimpleLogger(root string, debug bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("04:05.000")
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	lvl := zapcore.InfoLevel
	if debug {
		lvl = zapcore.DebugLevel
	}
	log = log.WithOptions(zap.IncreaseLevel(lvl), zap.AddStacktrace(zapcore.FatalLevel))
	return log.Sugar().Named(root)
}
