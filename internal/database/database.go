package database

import (
	"database/sql"
	"fmt"
	"sync"

	"minibot/internal/logger"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// DatabaseManager содержит функции для работы с базой данных
type DatabaseManager struct {
	db      *sql.DB
	dialect Dialect
	logger  *logger.LoggerManager
	wg      sync.WaitGroup // для ожидания завершения асинхронных операций
}

// NewDatabaseManager создает новый экземпляр DatabaseManager
func NewDatabaseManager(db *sql.DB, dialect Dialect, loggerManager *logger.LoggerManager) *DatabaseManager {
	return &DatabaseManager{
		db:      db,
		dialect: dialect,
		logger:  loggerManager,
	}
}

// Open подключается к базе (mysql или sqlite) и проверяет соединение
func Open(driver, dsn string) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("база данных недоступна: %w", err)
	}
	return db, dialect, nil
}

// Connect открывает базу и создаёт таблицы при необходимости
func Connect(driver, dsn string, loggerManager *logger.LoggerManager) (*DatabaseManager, error) {
	db, dialect, err := Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	manager := NewDatabaseManager(db, dialect, loggerManager)
	if err := manager.EnsureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return manager, nil
}

// EnsureSchema создаёт таблицы status, actions и minigame_runs, если их нет
func (h *DatabaseManager) EnsureSchema() error {
	for _, stmt := range h.dialect.Schema() {
		if _, err := h.db.Exec(stmt); err != nil {
			return fmt.Errorf("ошибка создания таблицы: %w", err)
		}
	}
	return nil
}

// Close ждёт асинхронные записи и закрывает соединение
func (h *DatabaseManager) Close() error {
	h.WaitForAsyncOperations()
	return h.db.Close()
}

// WaitForAsyncOperations ожидает завершения всех асинхронных операций сохранения
func (h *DatabaseManager) WaitForAsyncOperations() {
	h.wg.Wait()
}
