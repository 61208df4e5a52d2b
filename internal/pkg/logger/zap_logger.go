package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ILogger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
	Sync() error
}

type ZapLogger struct {
	logger   *zap.Logger
	filePath string
}

var _ ILogger = (*ZapLogger)(nil)

// NewNopLogger discards everything. Used by tests and tools.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{logger: zap.NewNop()}
}

// Options controls where a ZapLogger writes and how much.
type Options struct {
	// FilePath receives rotated JSON lines. Empty disables the file sink.
	FilePath string
	// Console adds a stdout sink: JSON when Production, colored text otherwise.
	Console    bool
	Production bool
	// Level is the console threshold ("debug", "info", "warn", "error").
	// The file sink never records below info.
	Level string
}

// New builds a logger from opts. Unparsable levels fall back to debug.
func New(opts Options) *ZapLogger {
	var cores []zapcore.Core

	if opts.FilePath != "" {
		cores = append(cores, zapcore.NewCore(jsonEncoder(), zapcore.AddSync(rotator(opts.FilePath)), zap.InfoLevel))
	}

	if opts.Console {
		encoder := jsonEncoder()
		if !opts.Production {
			encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), ParseLevel(opts.Level)))
	}

	if len(cores) == 0 {
		return NewNopLogger()
	}

	// Skip 1 so caller points at the wrapper's caller
	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &ZapLogger{logger: l, filePath: opts.FilePath}
}

// ParseLevel maps a LOG_LEVEL string to a zap level, defaulting to debug.
func ParseLevel(level string) zapcore.Level {
	level = strings.TrimSpace(level)
	if level == "" {
		// zapcore maps "" to info
		return zap.DebugLevel
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.DebugLevel
	}
	return lvl
}

func rotator(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// NewZapLogger writes to logFilePath and stdout at debug level.
func NewZapLogger(logFilePath string, isProd bool) *ZapLogger {
	return New(Options{FilePath: logFilePath, Console: true, Production: isProd, Level: "debug"})
}

// NewIsolatedLogger writes only to logFilePath, keeping websocket connection
// churn out of the main log.
func NewIsolatedLogger(logFilePath string) *ZapLogger {
	return New(Options{FilePath: logFilePath})
}

func fields(module string, details map[string]interface{}) []zap.Field {
	if details == nil {
		details = map[string]interface{}{}
	}
	return []zap.Field{zap.String("module", module), zap.Any("details", details)}
}

func (l *ZapLogger) Debug(module, message string, details map[string]interface{}) {
	l.logger.Debug(message, fields(module, details)...)
}

func (l *ZapLogger) Info(module, message string, details map[string]interface{}) {
	l.logger.Info(message, fields(module, details)...)
}

func (l *ZapLogger) Warn(module, message string, details map[string]interface{}) {
	l.logger.Warn(message, fields(module, details)...)
}

func (l *ZapLogger) Error(module, message string, details map[string]interface{}) {
	fs := fields(module, details)
	// Lift the error out of details so log search can filter on it.
	if err, ok := details["error"]; ok {
		fs = append(fs, zap.Any("error_ref", err))
	}
	l.logger.Error(message, fs...)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
