package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerPort      = 8080
	defaultMaxParticipants = 20
	defaultClientTimeout   = 15 * time.Second
)

// Config хранит все конфигурационные параметры приложения.
// Собирается один раз при старте и передаётся явно через конструкторы —
// внутри бизнес-логики никакие глобальные переменные не читаются.
type Config struct {
	BackendAPIURL      string
	ServerPort         int
	MaxParticipants    int
	ClientTimeout      time.Duration
	RedisURL           string // пусто — черновики хранятся в памяти процесса
	CORSAllowedOrigins []string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	apiURL := os.Getenv("BACKEND_API_URL")
	if apiURL == "" {
		return nil, fmt.Errorf("BACKEND_API_URL environment variable is not set")
	}
	apiURL = strings.TrimRight(apiURL, "/")

	port := defaultServerPort
	if portStr := os.Getenv("SERVER_PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
		}
		if p <= 0 || p > 65535 {
			return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", p)
		}
		port = p
	}

	maxParticipants := defaultMaxParticipants
	if maxStr := os.Getenv("MAX_PARTICIPANTS"); maxStr != "" {
		m, err := strconv.Atoi(maxStr)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_PARTICIPANTS environment variable: %w", err)
		}
		if m <= 0 {
			return nil, fmt.Errorf("MAX_PARTICIPANTS must be positive, got %d", m)
		}
		maxParticipants = m
	}

	timeout := defaultClientTimeout
	if timeoutStr := os.Getenv("HTTP_CLIENT_TIMEOUT"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid HTTP_CLIENT_TIMEOUT environment variable: %q", timeoutStr)
		}
		timeout = time.Duration(seconds) * time.Second
	}

	var origins []string
	if originsStr := os.Getenv("CORS_ALLOWED_ORIGINS"); originsStr != "" {
		for _, o := range strings.Split(originsStr, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := &Config{
		BackendAPIURL:      apiURL,
		ServerPort:         port,
		MaxParticipants:    maxParticipants,
		ClientTimeout:      timeout,
		RedisURL:           os.Getenv("REDIS_URL"),
		CORSAllowedOrigins: origins,
	}

	return cfg, nil
}
