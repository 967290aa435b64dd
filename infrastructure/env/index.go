package env

import (
	"os"
	"strconv"
	"strings"

	"github.com/Sahithi-Kallem/invisiface/infrastructure/logger"
	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file from the working directory if one exists.
// Variables already present in the process environment win.
func LoadEnv(files ...string) {
	err := godotenv.Load(files...)
	if err != nil {
		logger.Info("error loading env variables")
	}
}

func GetString(key string, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

func GetInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetString(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func GetFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(GetString(key, ""), 64)
	if err != nil {
		return fallback
	}
	return value
}

// GetList splits a comma separated variable, dropping empty entries.
func GetList(key string, fallback []string) []string {
	raw := GetString(key, "")
	if raw == "" {
		return fallback
	}
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
