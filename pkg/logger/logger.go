package logger

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Logger обертка над zerolog с printf-style методами
// Пишет в файл, если передан путь, иначе в stdout (console writer)
type Logger struct {
	log  zerolog.Logger
	file *os.File
}

// New создает новый логгер
// filePath - путь к файлу логов ("" = stdout), level - debug/info/warn/error
func New(filePath, level string) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger: invalid log level %q: %w", level, err)
	}

	l := &Logger{}

	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		l.file = f
		l.log = zerolog.New(f).Level(lvl).With().Timestamp().Logger()
		return l, nil
	}

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}
	l.log = zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	return l, nil
}

// Debug логирует сообщение уровня debug
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log.Debug().Msgf(format, v...)
}

// Info логирует сообщение уровня info
func (l *Logger) Info(format string, v ...interface{}) {
	l.log.Info().Msgf(format, v...)
}

// Warn логирует сообщение уровня warn
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log.Warn().Msgf(format, v...)
}

// Error логирует сообщение уровня error
func (l *Logger) Error(format string, v ...interface{}) {
	l.log.Error().Msgf(format, v...)
}

// Fatal логирует сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log.Fatal().Msgf(format, v...)
}

// Close закрывает файл логов, если он был открыт
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
