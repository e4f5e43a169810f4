package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the advisor.
type Config struct {
	DataFile      string
	LogLevel      string
	SimOrigin     string
	PredictWindow int
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	dataFile := getStr("DATA_FILE", "data/20200317.csv")

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	simOrigin := getStr("SIM_ORIGIN", "simuser")

	predictWindow, err := getInt("PREDICT_WINDOW", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid PREDICT_WINDOW: %w", err)
	}
	if predictWindow < 1 {
		return nil, fmt.Errorf("invalid PREDICT_WINDOW: %d, must be >= 1", predictWindow)
	}

	return &Config{
		DataFile:      dataFile,
		LogLevel:      logLevel,
		SimOrigin:     simOrigin,
		PredictWindow: predictWindow,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
