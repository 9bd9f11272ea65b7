// Package logger holds the process-wide zap sugared logger.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	once   sync.Once

	level       = os.Getenv("LOG_LEVEL")
	environment = os.Getenv("ENVIRONMENT")
)

// IsTest switches to a development logger on stdout for test runs
var IsTest bool

// Configure sets the level and environment used to build the logger. It only
// has an effect before the first call to GetLogger.
func Configure(logLevel, env string) {
	if logLevel != "" {
		level = logLevel
	}
	if env != "" {
		environment = env
	}
}

func build() {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	switch {
	case IsTest:
		cfg = zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stdout"}
	case environment == "production":
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	zapLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	logger = zapLogger.Sugar()
}

// GetLogger returns the shared logger, building it on first use
func GetLogger() *zap.SugaredLogger {
	once.Do(build)
	return logger
}

// Close flushes buffered entries
func Close() error {
	if logger == nil || IsTest {
		return nil
	}
	if err := logger.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "Error syncing logger: %v\n", err)
		return err
	}
	return nil
}

// MaskSSN keeps only the last four digits of a social security number
func MaskSSN(ssn string) string {
	if len(ssn) < 4 {
		return strings.Repeat("*", len(ssn))
	}
	return "***-**-" + ssn[len(ssn)-4:]
}

// MaskFileName hides the middle of an uploaded file name, which often holds
// a taxpayer's name.
func MaskFileName(name string) string {
	r := []rune(name)
	if len(r) < 8 {
		return name
	}
	return string(r[:3]) + "..." + string(r[len(r)-4:])
}
