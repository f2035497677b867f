package main

import (
	"log"

	"github.com/watchlist-kata/showtracker/api/server"
	"github.com/watchlist-kata/showtracker/internal/config"
	"github.com/watchlist-kata/showtracker/pkg/logger"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Инициализация кастомного логгера
	customLogger, err := logger.NewLogger(logger.Options{
		ServiceName:  cfg.ServiceName,
		LogDir:       cfg.LogDir,
		BufferSize:   cfg.LogBufferSize,
		KafkaBrokers: cfg.KafkaBrokers,
		KafkaTopic:   cfg.KafkaTopic,
	})
	if err != nil {
		log.Fatal(err)
	}

	// Запуск сервера
	err = server.RunServer(cfg, customLogger)
	logger.Close(customLogger)
	if err != nil {
		log.Fatal(err)
	}
}
