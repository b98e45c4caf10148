package database

import "fmt"

// Dialect различия схемы между MySQL и SQLite
type Dialect interface {
	DriverName() string
	Schema() []string
}

type mysqlDialect struct{}

func (mysqlDialect) DriverName() string { return "mysql" }

func (mysqlDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS status (
			id INT AUTO_INCREMENT PRIMARY KEY,
			current_status VARCHAR(64) NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS actions (
			id INT AUTO_INCREMENT PRIMARY KEY,
			action VARCHAR(64) NOT NULL,
			executed TINYINT(1) NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS minigame_runs (
			id INT AUTO_INCREMENT PRIMARY KEY,
			session_id CHAR(36) NOT NULL,
			minigame VARCHAR(32) NOT NULL,
			result VARCHAR(16) NOT NULL,
			started_at_ms BIGINT NOT NULL,
			duration_ms BIGINT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}
}

type sqliteDialect struct{}

func (sqliteDialect) DriverName() string { return "sqlite" }

func (sqliteDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS status (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			current_status TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS actions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			action TEXT NOT NULL,
			executed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS minigame_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			minigame TEXT NOT NULL,
			result TEXT NOT NULL,
			started_at_ms INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
}

// DialectFor диалект по имени драйвера из конфига
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "mysql":
		return mysqlDialect{}, nil
	case "sqlite":
		return sqliteDialect{}, nil
	}
	return nil, fmt.Errorf("неизвестный драйвер базы данных %q", driver)
}
