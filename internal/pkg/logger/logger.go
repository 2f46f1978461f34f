package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// ZapLogger é a implementação concreta da interface Logger sobre o zap,
// com saída JSON estruturada.
type ZapLogger struct {
	z *zap.Logger
}

// NewLogger cria e retorna uma nova instância do Logger.
// Esta função é chamada no main.go e o logger é injetado nas camadas.
func NewLogger(level string) Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.MessageKey = "message"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		parseLevel(level),
	)

	return &ZapLogger{z: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
}

// NewNop retorna um Logger que descarta tudo. Usado em testes.
func NewNop() Logger {
	return &ZapLogger{z: zap.NewNop()}
}

// parseLevel traduz o LOG_LEVEL da configuração; valores desconhecidos viram "info".
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return zf
}

// Implementações da Interface Logger

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.z.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.z.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.z.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error) {
	l.z.Error(msg, zap.Error(err))
}

// Fatal registra o erro e encerra o processo.
func (l *ZapLogger) Fatal(msg string, err error) {
	l.z.Fatal(msg, zap.Error(err))
}

// Sync descarrega buffers pendentes; chamado no encerramento do main.
func (l *ZapLogger) Sync() error {
	return l.z.Sync()
}
