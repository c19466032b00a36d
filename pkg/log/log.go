// Package log provides functionality for logging commands, errors and
// informational messages to separate JSON log files.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"homescout/client-app/pkg/model"
)

// Fields carries structured key/value pairs attached to a log message.
type Fields map[string]interface{}

// logMessage represents a message to be logged
type logMessage struct {
	Level   LogLevel
	Content string
	Fields  Fields
	Context context.Context
}

// Logger routes messages through a buffered channel to command, error and
// info log files.
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	commandFile   *os.File
	errorFile     *os.File
	infoFile      *os.File
	logChan       chan logMessage
	done          chan struct{}
	wg            sync.WaitGroup
	level         LogLevel
}

// NewLogger creates a new Logger instance writing to the log folder and file
// names from the configuration. Messages above the given level are dropped.
func NewLogger(cfg *model.Config, level LogLevel) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	commandFile, err := openLogFile(cfg.LogFolder, cfg.CommandLog)
	if err != nil {
		return nil, fmt.Errorf("failed to open command log file: %w", err)
	}

	errorFile, err := openLogFile(cfg.LogFolder, cfg.ErrorLog)
	if err != nil {
		commandFile.Close()
		return nil, fmt.Errorf("failed to open error log file: %w", err)
	}

	infoFile, err := openLogFile(cfg.LogFolder, cfg.InfoLog)
	if err != nil {
		commandFile.Close()
		errorFile.Close()
		return nil, fmt.Errorf("failed to open info log file: %w", err)
	}

	logger := &Logger{
		commandLogger: slog.New(slog.NewJSONHandler(commandFile, &slog.HandlerOptions{Level: slog.LevelInfo})),
		errorLogger:   slog.New(slog.NewJSONHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelWarn})),
		infoLogger:    slog.New(slog.NewJSONHandler(infoFile, &slog.HandlerOptions{Level: slog.LevelDebug})),
		commandFile:   commandFile,
		errorFile:     errorFile,
		infoFile:      infoFile,
		logChan:       make(chan logMessage, 100),
		done:          make(chan struct{}),
		level:         level,
	}

	// Start the logging goroutine
	logger.wg.Add(1)
	go logger.processLogs()

	return logger, nil
}

func openLogFile(folder, name string) (*os.File, error) {
	return os.OpenFile(filepath.Join(folder, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// processLogs handles incoming log messages
func (l *Logger) processLogs() {
	defer l.wg.Done()
	for {
		select {
		case msg := <-l.logChan:
			args := fieldsToArgs(msg.Fields)
			switch msg.Level {
			case LevelCommand:
				l.commandLogger.InfoContext(msg.Context, msg.Content, args...)
			case LevelError:
				l.errorLogger.ErrorContext(msg.Context, msg.Content, args...)
			case LevelWarn:
				l.errorLogger.WarnContext(msg.Context, msg.Content, args...)
			case LevelInfo:
				l.infoLogger.InfoContext(msg.Context, msg.Content, args...)
			case LevelDebug:
				l.infoLogger.DebugContext(msg.Context, msg.Content, args...)
			}
		case <-l.done:
			return
		}
	}
}

// fieldsToArgs converts Fields to slog arguments
func fieldsToArgs(fields Fields) []any {
	if len(fields) == 0 {
		return nil
	}
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return args
}

func (l *Logger) log(ctx context.Context, level LogLevel, msg string, fields Fields) {
	if level > l.level && level != LevelCommand {
		return
	}
	select {
	case l.logChan <- logMessage{Level: level, Content: msg, Fields: fields, Context: ctx}:
	case <-l.done:
	}
}

// Command logs an executed user command to the command log.
func (l *Logger) Command(ctx context.Context, command string) {
	l.log(ctx, LevelCommand, command, nil)
}

// Error logs an error message.
func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelError, msg, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelWarn, msg, fields)
}

// Info logs an informational message.
func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelInfo, msg, fields)
}

// Debug logs a debug message.
func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelDebug, msg, fields)
}

// Close stops the logging goroutine and closes all log files
func (l *Logger) Close() error {
	close(l.done)
	l.wg.Wait() // Wait for the logging goroutine to finish

	if err := l.commandFile.Close(); err != nil {
		return fmt.Errorf("failed to close command log file: %w", err)
	}

	if err := l.errorFile.Close(); err != nil {
		return fmt.Errorf("failed to close error log file: %w", err)
	}

	if err := l.infoFile.Close(); err != nil {
		return fmt.Errorf("failed to close info log file: %w", err)
	}

	return nil
}
