package config

import "os"

// AppName doubles as the PostgreSQL schema the app runs in.
const AppName = "planner"

// GetEnv returns the value of an environment variable or a fallback when the
// variable is unset or empty.
func GetEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
