package main

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Endpoint string
	Timeout  time.Duration

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	ServerAddr string
}

func loadConfig() Config {
	return Config{
		Endpoint:      getEnv("JOKE_ENDPOINT", defaultEndpoint),
		Timeout:       getEnvDuration("JOKE_TIMEOUT", 0),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),
	}
}

func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// getEnv wrapper
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid %s %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid %s %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
