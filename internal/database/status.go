package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// UpdateStatus записывает новый статус бота
func (h *DatabaseManager) UpdateStatus(status string) error {
	if _, err := h.db.Exec("INSERT INTO status (current_status) VALUES (?)", status); err != nil {
		return fmt.Errorf("ошибка обновления статуса: %w", err)
	}
	return nil
}

// GetLatestStatus последний записанный статус
func (h *DatabaseManager) GetLatestStatus() (Status, error) {
	var status Status
	err := h.db.QueryRow("SELECT id, current_status, updated_at FROM status ORDER BY id DESC LIMIT 1").
		Scan(&status.ID, &status.CurrentStatus, &status.UpdatedAt)
	if err != nil {
		return Status{}, fmt.Errorf("ошибка чтения статуса: %w", err)
	}
	return status, nil
}

// AddAction ставит удалённую команду в очередь
func (h *DatabaseManager) AddAction(action string) error {
	if _, err := h.db.Exec("INSERT INTO actions (action) VALUES (?)", action); err != nil {
		return fmt.Errorf("ошибка добавления действия: %w", err)
	}
	return nil
}

// GetLatestUnexecutedAction последнее невыполненное действие; пустая строка если таких нет
func (h *DatabaseManager) GetLatestUnexecutedAction() (string, int, error) {
	var (
		id     int
		action string
	)
	err := h.db.QueryRow("SELECT id, action FROM actions WHERE executed = 0 ORDER BY id DESC LIMIT 1").Scan(&id, &action)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("ошибка чтения действий: %w", err)
	}
	return action, id, nil
}

// MarkActionAsExecuted помечает действие выполненным
func (h *DatabaseManager) MarkActionAsExecuted(id int) error {
	if _, err := h.db.Exec("UPDATE actions SET executed = 1 WHERE id = ?", id); err != nil {
		return fmt.Errorf("ошибка пометки действия %d: %w", id, err)
	}
	return nil
}

// RecentActions последние limit действий, новые первыми
func (h *DatabaseManager) RecentActions(limit int) ([]ActionRecord, error) {
	rows, err := h.db.Query("SELECT id, action, executed, created_at FROM actions ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения действий: %w", err)
	}
	defer rows.Close()

	var actions []ActionRecord
	for rows.Next() {
		var a ActionRecord
		if err := rows.Scan(&a.ID, &a.Action, &a.Executed, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения действия: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
