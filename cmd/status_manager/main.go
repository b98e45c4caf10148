package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"minibot/internal/config"
	"minibot/internal/database"
	"minibot/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Использование: status_manager <команда> [аргументы]")
		fmt.Println("Команды:")
		fmt.Println("  status <новый_статус> - обновить статус")
		fmt.Println("  action <действие> - добавить действие (stop, start:<мини-игра>)")
		fmt.Println("  show - показать текущий статус и последние действия")
		fmt.Println("  runs [N] - последние N прогонов мини-игр")
		return
	}

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

	command := os.Args[1]

	switch command {
	case "status":
		if len(os.Args) < 3 {
			fmt.Println("Ошибка: укажите новый статус")
			return
		}
		newStatus := os.Args[2]
		if err := dbManager.UpdateStatus(newStatus); err != nil {
			log.Fatalf("Ошибка обновления статуса: %v", err)
		}
		fmt.Printf("Статус обновлен на: %s\n", newStatus)

	case "action":
		if len(os.Args) < 3 {
			fmt.Println("Ошибка: укажите действие")
			return
		}
		action, err := database.ParseAction(os.Args[2])
		if err != nil {
			log.Fatalf("Ошибка: %v", err)
		}
		if err := dbManager.AddAction(action.String()); err != nil {
			log.Fatalf("Ошибка добавления действия: %v", err)
		}
		fmt.Printf("Действие добавлено: %s\n", action)

	case "show":
		status, err := dbManager.GetLatestStatus()
		if err != nil {
			log.Fatalf("Ошибка получения статуса: %v", err)
		}
		actions, err := dbManager.RecentActions(10)
		if err != nil {
			log.Fatalf("Ошибка получения действий: %v", err)
		}
		fmt.Printf("Текущий статус: %s (обновлен: %s)\n", status.CurrentStatus, status.UpdatedAt.Format("2006-01-02 15:04:05"))
		fmt.Println("Последние действия:")
		for _, action := range actions {
			mark := " "
			if action.Executed {
				mark = "✓"
			}
			fmt.Printf("  %s %s (%s)\n", mark, action.Action, action.CreatedAt.Format("2006-01-02 15:04:05"))
		}

	case "runs":
		limit := 20
		if len(os.Args) >= 3 {
			if limit, err = strconv.Atoi(os.Args[2]); err != nil {
				log.Fatalf("Ошибка: некорректное число %q", os.Args[2])
			}
		}
		runs, err := dbManager.RecentRuns(limit)
		if err != nil {
			log.Fatalf("Ошибка получения прогонов: %v", err)
		}
		for _, run := range runs {
			fmt.Printf("  %s %-10s %-11s %6.1fs  %s\n",
				run.StartedAt.Format("2006-01-02 15:04:05"), run.Minigame, run.Result, run.Duration.Seconds(), run.SessionID)
		}

	default:
		fmt.Printf("Неизвестная команда: %s\n", command)
	}
}
