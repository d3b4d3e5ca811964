package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/apimgr/moviesaver/src/paths"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level    string // debug, info, warn, error (default: warn)
	File     string // Log file path (empty = {log_dir}/cli.log)
	MaxSize  int    // Max log file size in MB (default: 10)
	MaxFiles int    // Max log files to keep (default: 5)
}

// GetLogConfig returns logging configuration from viper
func GetLogConfig() LogConfig {
	return LogConfig{
		Level:    viper.GetString("logging.level"),
		File:     viper.GetString("logging.file"),
		MaxSize:  viper.GetInt("logging.max_size"),
		MaxFiles: viper.GetInt("logging.max_files"),
	}
}

// parseLevel maps a config level name to slog, defaulting to warn
func parseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newLogger builds a JSON logger over a rotating file.
// The caller owns the returned writer.
func newLogger(cfg LogConfig) (*slog.Logger, *lumberjack.Logger, error) {
	logPath := cfg.File
	if logPath == "" {
		logPath = paths.LogFile()
		if err := paths.CheckUserDir(logPath); err != nil {
			return nil, nil, err
		}
	}
	logPath = paths.ExpandHome(logPath)

	if err := paths.EnsureFile(logPath); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 10
	}
	maxFiles := cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = 5
	}

	rotatingWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSize, // MB
		MaxBackups: maxFiles,
		MaxAge:     30, // days
		Compress:   true,
	}

	handler := slog.NewJSONHandler(rotatingWriter, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	return slog.New(handler), rotatingWriter, nil
}

var (
	logWriter *lumberjack.Logger
	logMu     sync.Mutex
)

// ReopenLogs starts a new log file, for use after external rotation
func ReopenLogs() error {
	logMu.Lock()
	defer logMu.Unlock()
	if logWriter == nil {
		return nil
	}
	return logWriter.Rotate()
}

// initLogging replaces the process logger from the current config.
// A log file that cannot be opened is not fatal: errOut gets a warning and
// records go to errOut as text.
func initLogging(errOut io.Writer) *slog.Logger {
	cfg := GetLogConfig()
	if debug {
		cfg.Level = "debug"
	}

	logMu.Lock()
	defer logMu.Unlock()
	if logWriter != nil {
		logWriter.Close()
		logWriter = nil
	}

	l, w, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "Warning: could not initialize log file: %v\n", err)
		return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: parseLevel(cfg.Level)}))
	}
	logWriter = w
	return l
}
