package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadConfig reads the trigger rate limit from the environment.
//
//	TRIGGER_RATE_LIMIT_ENABLED    default true
//	TRIGGER_RATE_LIMIT            runs per window per client, default 30
//	TRIGGER_RATE_LIMIT_WINDOW     default 1h
//	TRIGGER_RATE_LIMIT_BURST      default 3
//	TRIGGER_RATE_LIMIT_WHITELIST  comma-separated client IPs
func LoadConfig() *Config {
	if !getEnvBool("TRIGGER_RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	limit := getEnvInt("TRIGGER_RATE_LIMIT", 30)
	window := getEnvDuration("TRIGGER_RATE_LIMIT_WINDOW", time.Hour)
	burst := getEnvInt("TRIGGER_RATE_LIMIT_BURST", 3)

	return &Config{
		Enabled:         true,
		Rules:           TriggerRules(limit, window, burst),
		IdleTTL:         2 * window,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       parseIPList(os.Getenv("TRIGGER_RATE_LIMIT_WHITELIST")),
	}
}

// TriggerRules limits both ways of starting a sync. They share nothing:
// each endpoint has its own bucket per client.
func TriggerRules(limit int, window time.Duration, burst int) []Rule {
	return []Rule{
		{Path: "/process", Method: "GET", Limit: limit, Window: window, Burst: burst},
		{Path: "/process/stream", Method: "POST", Limit: limit, Window: window, Burst: burst},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
