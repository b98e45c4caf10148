package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"minibot/internal/config"
	"minibot/internal/database"
	"minibot/internal/logger"
	"minibot/internal/types"

	"github.com/google/uuid"
)

func main() {
	fmt.Println("🧪 Тестирование системы статусов minibot")

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	// Подключаемся к базе данных
	dbManager, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN, logger.NewWriterLogger(os.Stderr))
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer dbManager.Close()

	fmt.Println("✅ Подключение к базе данных установлено")

	session := uuid.New()
	for _, m := range types.Minigames {
		status := database.RunningStatus(m)
		fmt.Printf("📝 Обновляем статус на: %s\n", status)

		if err := dbManager.UpdateStatus(status); err != nil {
			log.Printf("❌ Ошибка обновления статуса %s: %v", status, err)
			continue
		}

		started := time.Now()
		// Пауза вместо настоящей мини-игры
		time.Sleep(2 * time.Second)

		dbManager.SaveRunAsync(database.RunRecord{
			SessionID: session,
			Minigame:  m,
			Result:    "solved",
			StartedAt: started,
			Duration:  time.Since(started),
		})
		fmt.Printf("✅ Статус %s установлен\n", status)
	}

	dbManager.WaitForAsyncOperations()
	if err := dbManager.UpdateStatus(database.StatusIdle); err != nil {
		log.Printf("❌ Ошибка обновления статуса: %v", err)
	}

	fmt.Println("🎉 Тестирование завершено!")
	fmt.Println("🌐 Откройте веб-интерфейс http://localhost:8080 для просмотра статусов")
}
