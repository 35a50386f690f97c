package common

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env from the working directory if it exists. Variables
// already set in the environment win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing")
	}
}

func EnvOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// EnvInt returns fallback when key is unset or not a number.
func EnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
