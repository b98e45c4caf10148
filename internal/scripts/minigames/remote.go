package minigames

import (
	"context"
	"time"

	"minibot/internal/database"
	"minibot/internal/interrupt"
	"minibot/internal/logger"
)

// ActionSource очередь удалённых команд
type ActionSource interface {
	GetLatestUnexecutedAction() (string, int, error)
	MarkActionAsExecuted(id int) error
	UpdateStatus(status string) error
}

// RemoteControl опрашивает таблицу actions и управляет запуском бота
type RemoteControl struct {
	source   ActionSource
	control  *interrupt.RunControl
	interval time.Duration
	logger   *logger.LoggerManager
}

// NewRemoteControl создает новый экземпляр RemoteControl
func NewRemoteControl(source ActionSource, control *interrupt.RunControl, interval time.Duration, loggerManager *logger.LoggerManager) *RemoteControl {
	if interval <= 0 {
		interval = time.Second
	}
	return &RemoteControl{
		source:   source,
		control:  control,
		interval: interval,
		logger:   loggerManager,
	}
}

// Poll обрабатывает одно невыполненное действие, если оно есть
func (r *RemoteControl) Poll() error {
	text, id, err := r.source.GetLatestUnexecutedAction()
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	// помечаем сразу, чтобы не выполнить команду дважды
	if err := r.source.MarkActionAsExecuted(id); err != nil {
		r.logger.LogError(err, "Ошибка пометки действия как выполненного")
	}

	action, err := database.ParseAction(text)
	if err != nil {
		r.logger.Error("⚠️ Действие %d пропущено: %v", id, err)
		return nil
	}

	switch action.Kind {
	case database.ActionStop:
		r.logger.Info("🛑 Обнаружено действие 'stop' в базе данных (ID: %d)", id)
		r.control.Stop()
		if err := r.source.UpdateStatus(database.StatusStopped); err != nil {
			r.logger.LogError(err, "Ошибка обновления статуса на stopped")
		}
	case database.ActionStart:
		r.logger.Info("🚀 Действие '%s' из базы данных (ID: %d)", action, id)
		r.control.Start(action.Minigame)
	}
	return nil
}

// Run опрашивает очередь до отмены ctx; ошибки чтения логируются и не останавливают опрос
func (r *RemoteControl) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.Poll(); err != nil {
				r.logger.LogError(err, "Ошибка проверки действий в базе данных")
			}
		}
	}
}
