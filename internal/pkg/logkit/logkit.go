// Package logkit builds the application zap logger: readable console
// output, plus a JSON file sink under the configured log directory.
package logkit

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFilePerm = 0o644

// New creates the process logger. In development the console core logs at
// debug with colored levels; in production at info with JSON. The file
// sink is best-effort: an unwritable log directory downgrades to
// console-only rather than failing startup.
func New(dev bool, dir string) (*zap.Logger, error) {
	var consoleEnc zapcore.Encoder
	level := zap.InfoLevel
	if dev {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEnc = zapcore.NewConsoleEncoder(cfg)
		level = zap.DebugLevel
	} else {
		consoleEnc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stdout), level),
	}

	if file, err := openLogFile(dir); err == nil {
		fileEnc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEnc, zapcore.Lock(file), zap.InfoLevel))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func openLogFile(dir string) (*os.File, error) {
	if dir == "" {
		return nil, fmt.Errorf("no log directory configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "app.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePerm)
}
