package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// LogLevel представляет уровень логирования
type LogLevel string

const (
	DEBUG LogLevel = "DEBUG"
	INFO  LogLevel = "INFO"
	ERROR LogLevel = "ERROR"
)

// LoggerManager управляет логированием в файл и консоль
type LoggerManager struct {
	file   *os.File
	logger *log.Logger
}

// NewLoggerManager создает новый экземпляр LoggerManager
func NewLoggerManager(logFilePath string) (*LoggerManager, error) {
	// Создаем директорию для логов, если её нет
	logDir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории для логов: %w", err)
	}

	// Открываем файл для записи (создаем, если не существует)
	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла логов: %w", err)
	}

	manager := NewWriterLogger(io.MultiWriter(file, os.Stdout))
	manager.file = file
	return manager, nil
}

// NewWriterLogger создает LoggerManager без файла, пишущий в w
func NewWriterLogger(w io.Writer) *LoggerManager {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           log.DebugLevel,
	})
	return &LoggerManager{logger: logger}
}

// Discard логгер для тестов
func Discard() *LoggerManager {
	return NewWriterLogger(io.Discard)
}

// Close закрывает файл логов
func (l *LoggerManager) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// logWithLevel записывает сообщение с указанным уровнем
func (l *LoggerManager) logWithLevel(level LogLevel, format string, args ...interface{}) {
	switch level {
	case DEBUG:
		l.logger.Debugf(format, args...)
	case ERROR:
		l.logger.Errorf(format, args...)
	default:
		l.logger.Infof(format, args...)
	}
}

// Debug записывает отладочное сообщение
func (l *LoggerManager) Debug(format string, args ...interface{}) {
	l.logWithLevel(DEBUG, format, args...)
}

// Info записывает информационное сообщение
func (l *LoggerManager) Info(format string, args ...interface{}) {
	l.logWithLevel(INFO, format, args...)
}

// Error записывает сообщение об ошибке
func (l *LoggerManager) Error(format string, args ...interface{}) {
	l.logWithLevel(ERROR, format, args...)
}

// LogError записывает ошибку с дополнительной информацией
func (l *LoggerManager) LogError(err error, context string) {
	if err != nil {
		l.Error("%s: %v", context, err)
	}
}
