package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"minibot/internal/config"
	"minibot/internal/dashboard"
	"minibot/internal/database"
	"minibot/internal/logger"
)

func main() {
	// Получаем порт из переменной окружения
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Получаем хост из переменной окружения
	host := os.Getenv("HOST")
	if host == "" {
		host = "0.0.0.0"
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}
	loggerManager := logger.NewWriterLogger(os.Stderr)

	// Подключаемся к базе данных
	dbManager, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN, loggerManager)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer dbManager.Close()

	server, err := dashboard.NewServer(dbManager, 30, loggerManager)
	if err != nil {
		log.Fatalf("Ошибка шаблона: %v", err)
	}

	fmt.Printf("🚀 minibot dashboard запущен на порту %s\n", port)
	fmt.Printf("📊 База данных: %s\n", cfg.DatabaseDriver)
	fmt.Printf("🌐 Откройте http://localhost:%s в браузере\n", port)

	if err := http.ListenAndServe(host+":"+port, server.Handler()); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
