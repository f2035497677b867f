package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = "3000"
	defaultServiceName    = "showtracker"
	defaultLogDir         = "logs"
	defaultLogBufferSize  = 100
	defaultMaxOpenDBConns = 10
)

// Config содержит параметры конфигурации приложения
type Config struct {
	DBURL          string   // Строка подключения к базе данных
	DBMaxOpenConns int      // Максимальное число соединений в пуле
	Port           string   // Порт HTTP сервера
	GRPCPort       string   // Порт gRPC health сервиса (пусто - выключен)
	ServiceName    string   // Имя сервиса
	KafkaBrokers   []string // Список брокеров Kafka (пусто - логи в Kafka не отправляются)
	KafkaTopic     string   // Тема Kafka
	LogDir         string   // Каталог для файловых логов
	LogBufferSize  int      // Размер буфера для логов
	MetricsEnabled bool     // Публиковать ли /metrics
}

// HTTPAddr возвращает адрес для HTTP listener
func (c *Config) HTTPAddr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// GRPCAddr возвращает адрес для gRPC listener или пустую строку
func (c *Config) GRPCAddr() string {
	if c.GRPCPort == "" {
		return ""
	}
	return ":" + strings.TrimPrefix(c.GRPCPort, ":")
}

// KafkaEnabled сообщает, настроена ли отправка логов в Kafka
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.KafkaTopic != ""
}

// LoadConfig загружает конфигурацию из .env файла (если он есть) и окружения
func LoadConfig() (*Config, error) {
	// .env необязателен, переменные могут прийти из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv собирает конфигурацию из переменных окружения процесса
func FromEnv() (*Config, error) {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("missing required environment variable: %s", "DB_URL")
	}

	cfg := &Config{
		DBURL:          dbURL,
		DBMaxOpenConns: intOrDefault("DB_MAX_OPEN_CONNS", defaultMaxOpenDBConns),
		Port:           stringOrDefault("PORT", defaultPort),
		GRPCPort:       os.Getenv("GRPC_PORT"),
		ServiceName:    stringOrDefault("SERVICE_NAME", defaultServiceName),
		KafkaTopic:     os.Getenv("KAFKA_TOPIC"),
		LogDir:         stringOrDefault("LOG_DIR", defaultLogDir),
		LogBufferSize:  intOrDefault("LOG_BUFFER_SIZE", defaultLogBufferSize),
		MetricsEnabled: true,
	}

	// Преобразуем KAFKA_BROKERS в []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, broker := range strings.Split(raw, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("invalid KAFKA_BROKERS value")
		}
	}

	if raw := os.Getenv("METRICS_ENABLED"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid METRICS_ENABLED value: %w", err)
		}
		cfg.MetricsEnabled = enabled
	}

	return cfg, nil
}

func stringOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intOrDefault возвращает значение по умолчанию, если переменная не задана корректно
func intOrDefault(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
