package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultService = "voice-tutor"

type Options struct {
	Verbose bool
	JSON    bool
	// Service tags every entry; defaults to "voice-tutor".
	Service string
}

// New builds the process logger. Entries go to stderr; JSON output is meant
// for log collectors, the console encoder for a terminal.
func New(opts Options) *zap.Logger {
	return newLogger(opts, zapcore.Lock(os.Stderr))
}

func newLogger(opts Options, out zapcore.WriteSyncer) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder

	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	zapOpts := []zap.Option{zap.ErrorOutput(out)}
	if opts.Verbose {
		zapOpts = append(zapOpts, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	service := opts.Service
	if service == "" {
		service = defaultService
	}
	return zap.New(zapcore.NewCore(enc, out, level), zapOpts...).
		With(zap.String("service", service))
}

// WithRequest scopes logger to one HTTP request or WebSocket session.
func WithRequest(logger *zap.Logger, requestID string) *zap.Logger {
	logger = OrNop(logger)
	if requestID == "" {
		return logger
	}
	return logger.With(zap.String("request_id", requestID))
}

// OrNop lets packages accept a nil logger.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
