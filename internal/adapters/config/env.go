package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

func getIntEnv(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getStringEnv(key string, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func getBoolEnv(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value == "true"
}

func getDecimalEnv(key string, defaultValue decimal.Decimal) decimal.Decimal {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return defaultValue
	}
	return d
}
