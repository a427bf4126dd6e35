package config

import (
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig описывает конфигурацию сервисов.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`

	API struct {
		// BaseURL пустой по умолчанию: запросы идут на тот же origin.
		BaseURL string        `envconfig:"API_BASE_URL" default:""`
		Token   string        `envconfig:"API_TOKEN"`
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"0s"`
	} `envconfig:""`

	Store struct {
		Driver     string `envconfig:"STORE_DRIVER" default:"memory"`
		Namespace  string `envconfig:"STORE_NAMESPACE" default:"default"`
		SQLitePath string `envconfig:"SQLITE_PATH"`
		QuotaBytes int    `envconfig:"STORE_QUOTA_BYTES" default:"5242880"`
	} `envconfig:""`

	PGDSN string `envconfig:"PG_DSN"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`
}

// Load загружает конфиг из окружения.
func Load() AppConfig {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}

// Parse читает конфиг из окружения и возвращает ошибку вместо завершения процесса.
func Parse() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
