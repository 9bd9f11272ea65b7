package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultServerPort        = "8080"
	DefaultTessdataPrefix    = "/usr/share/tesseract-ocr/4.00/tessdata"
	DefaultOCRLanguage       = "eng"
	DefaultMaxFileSize       = 10 * 1024 * 1024 // 10 MB
	DefaultWorkerConcurrency = 4
	DefaultMinTextLayerChars = 20
	DefaultLogLevel          = "info"
	DefaultEnvironment       = "development"
	DefaultAllowedOrigins    = "*"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	OCRLanguage       string
	PaddleOCRURL      string // empty disables the PaddleOCR fallback
	MaxFileSize       int64
	WorkerConcurrency int
	MinTextLayerChars int
	LogLevel          string
	Environment       string
	AllowedOrigins    []string
}

// LoadConfig reads configuration from command line flags and the environment
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load reads configuration from args and the environment. Flags win over
// environment variables, which win over defaults.
func Load(args []string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("server_port", DefaultServerPort)
	v.SetDefault("tessdata_prefix", DefaultTessdataPrefix)
	v.SetDefault("ocr_language", DefaultOCRLanguage)
	v.SetDefault("paddleocr_api_url", "")
	v.SetDefault("max_file_size", DefaultMaxFileSize)
	v.SetDefault("worker_concurrency", DefaultWorkerConcurrency)
	v.SetDefault("min_text_layer_chars", DefaultMinTextLayerChars)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("environment", DefaultEnvironment)
	v.SetDefault("allowed_origins", DefaultAllowedOrigins)

	flags := pflag.NewFlagSet("ocr-financial-aid", pflag.ContinueOnError)
	flags.String("port", DefaultServerPort, "HTTP server port")
	flags.String("tessdata", DefaultTessdataPrefix, "Tesseract tessdata directory")
	flags.String("lang", DefaultOCRLanguage, "Tesseract language")
	flags.String("paddle-url", "", "PaddleOCR API URL (empty disables it)")
	flags.Int64("max-file-size", DefaultMaxFileSize, "Maximum upload size in bytes")
	flags.Int("workers", DefaultWorkerConcurrency, "Documents processed in parallel per batch")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	bindings := map[string]string{
		"server_port":        "port",
		"tessdata_prefix":    "tessdata",
		"ocr_language":       "lang",
		"paddleocr_api_url":  "paddle-url",
		"max_file_size":      "max-file-size",
		"worker_concurrency": "workers",
		"log_level":          "log-level",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	cfg := &Config{
		ServerPort:        v.GetString("server_port"),
		TesseractDataPath: v.GetString("tessdata_prefix"),
		OCRLanguage:       v.GetString("ocr_language"),
		PaddleOCRURL:      v.GetString("paddleocr_api_url"),
		MaxFileSize:       v.GetInt64("max_file_size"),
		WorkerConcurrency: v.GetInt("worker_concurrency"),
		MinTextLayerChars: v.GetInt("min_text_layer_chars"),
		LogLevel:          v.GetString("log_level"),
		Environment:       v.GetString("environment"),
		AllowedOrigins:    splitList(v.GetString("allowed_origins")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.ServerPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %q", c.ServerPort)
	}
	if c.MaxFileSize <= 0 {
		return errors.New("max file size must be positive")
	}
	if c.WorkerConcurrency < 1 {
		return errors.New("worker concurrency must be at least 1")
	}
	if c.MinTextLayerChars < 0 {
		return errors.New("min text layer chars cannot be negative")
	}
	return nil
}

// PaddleEnabled reports whether the PaddleOCR fallback is configured
func (c *Config) PaddleEnabled() bool {
	return c.PaddleOCRURL != ""
}

// splitList parses a comma separated environment value
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
