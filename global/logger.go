package global

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a SugaredLogger writing to the given outputs ("stderr",
// "stdout" or a file path) at the given level. name, if non-empty, is
// attached as the logger's name and prefixed to every line.
func NewLogger(name string, level zapcore.Level, outputs []string, timeLayout string) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	if timeLayout != "" {
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var cores []zapcore.Core
	for _, out := range outputs {
		ws, closeFn := openSink(out)
		_ = closeFn
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			ws,
			level,
		))
	}
	logger := zap.New(zapcore.NewTee(cores...))
	if name != "" {
		logger = logger.Named(name)
	}
	return logger.Sugar()
}

func openSink(out string) (zapcore.WriteSyncer, func() error) {
	switch out {
	case "", "stderr":
		return zapcore.Lock(os.Stderr), os.Stderr.Sync
	case "stdout":
		return zapcore.Lock(os.Stdout), os.Stdout.Sync
	default:
		f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zapcore.Lock(os.Stderr), os.Stderr.Sync
		}
		return zapcore.Lock(f), f.Sync
	}
}
