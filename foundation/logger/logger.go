// Package logger provides a convience function to constructing a logger
// for use. This is required not just for applications but for testing.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jrick/logrotate/rotator"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs a Sugared Logger that writes to stdout and
// provides human readable timestamps.
func New(service string) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.InitialFields = map[string]any{
		"service": service,
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}

// =============================================================================

// FileConfig represents the settings for writing the log to a rotated file.
type FileConfig struct {
	Path        string
	ThresholdKB int64
	MaxRolls    int
}

// NewWithFile constructs a Sugared Logger that writes to stdout and to a file
// that is rotated once it grows past the threshold. The returned closer
// must be called to flush and close the file.
func NewWithFile(service string, cfg FileConfig) (*zap.SugaredLogger, io.Closer, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	r, err := rotator.New(cfg.Path, cfg.ThresholdKB, false, cfg.MaxRolls)
	if err != nil {
		return nil, nil, fmt.Errorf("creating file rotator: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	writers := zapcore.NewMultiWriteSyncer(
		zapcore.Lock(zapcore.AddSync(os.Stdout)),
		zapcore.Lock(zapcore.AddSync(r)),
	)

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writers, zap.InfoLevel)

	log := zap.New(core, zap.AddCaller(), zap.Fields(zap.String("service", service)))

	return log.Sugar(), r, nil
}
