package main

import (
	"fmt"
	"log"
	"os"

	"minibot/internal/config"
	"minibot/internal/database"
	"minibot/internal/logger"
)

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	db, dialect, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе (%s): %v", cfg.DatabaseDriver, err)
	}
	dbManager := database.NewDatabaseManager(db, dialect, logger.NewWriterLogger(os.Stderr))
	defer dbManager.Close()

	// Создаём таблицы status, actions и minigame_runs
	if err := dbManager.EnsureSchema(); err != nil {
		log.Fatalf("Ошибка создания таблиц: %v", err)
	}
	fmt.Println("Таблицы status, actions и minigame_runs созданы")

	if err := dbManager.UpdateStatus(database.StatusIdle); err != nil {
		log.Fatalf("Ошибка записи начального статуса: %v", err)
	}
	fmt.Println("Инициализация базы завершена!")
}
