package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func GetEnvInt(key string, fallback int) (int, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return value, nil
}

func GetEnvFloat(key string, fallback float64) (float64, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, raw)
	}
	return value, nil
}

func GetEnvUint64(key string, fallback uint64) (uint64, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
	}
	return value, nil
}

// GetEnvBool treats "true", "1" and "yes" as true.
func GetEnvBool(key string, fallback bool) bool {
	raw := strings.ToLower(GetEnv(key, ""))
	switch raw {
	case "":
		return fallback
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
