package database

import (
	"fmt"
	"time"

	"minibot/internal/types"

	"github.com/google/uuid"
)

// SaveRun записывает результат мини-игры в журнал
func (h *DatabaseManager) SaveRun(run RunRecord) error {
	_, err := h.db.Exec(
		"INSERT INTO minigame_runs (session_id, minigame, result, started_at_ms, duration_ms) VALUES (?, ?, ?, ?, ?)",
		run.SessionID.String(), run.Minigame.String(), run.Result, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("ошибка записи результата %s: %w", run.Minigame, err)
	}
	return nil
}

// SaveRunAsync записывает результат в фоне, не задерживая бота
func (h *DatabaseManager) SaveRunAsync(run RunRecord) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if err := h.SaveRun(run); err != nil {
			h.logger.LogError(err, "Ошибка асинхронного сохранения результата мини-игры")
			return
		}
		h.logger.Debug("💾 Результат %s (%s) сохранён", run.Minigame, run.Result)
	}()
}

// RecentRuns последние limit записей журнала, новые первыми
func (h *DatabaseManager) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := h.db.Query(
		"SELECT session_id, minigame, result, started_at_ms, duration_ms FROM minigame_runs ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			session, name         string
			run                   RunRecord
			startedMs, durationMs int64
		)
		if err := rows.Scan(&session, &name, &run.Result, &startedMs, &durationMs); err != nil {
			return nil, fmt.Errorf("ошибка чтения записи журнала: %w", err)
		}
		if run.SessionID, err = uuid.Parse(session); err != nil {
			return nil, fmt.Errorf("сессия %q: %w", session, err)
		}
		if run.Minigame, err = types.ParseMinigame(name); err != nil {
			return nil, err
		}
		run.StartedAt = time.UnixMilli(startedMs)
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
