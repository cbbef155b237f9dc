// Package logging provides component loggers for groom. Log lines go to a
// size-rotated file and, optionally, to stderr at a separate level.
//
// Basic usage:
//
//	if err := logging.Init(logging.Config{Level: "info"}); err != nil {
//	    return err
//	}
//	defer logging.Close()
//
//	logger := logging.Get("scanner")
//	logger.Info("scan started", "root", "/home/user/project")
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jamesainslie/groom/pkg/groom/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents a logging level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) charm() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a string into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// Config configures the logging system.
type Config struct {
	// Level is the file log level (debug, info, warn, error).
	Level string

	// Path is the log file path. Empty uses DefaultLogPath().
	Path string

	// MaxSize is the size in megabytes at which the file is rotated.
	MaxSize int

	// MaxBackups is how many rotated files are kept. Zero keeps all.
	MaxBackups int

	// MaxAge is how many days rotated files are kept. Zero keeps them forever.
	MaxAge int

	// Compress gzips rotated files.
	Compress bool

	// ConsoleLevel enables stderr output at the given level.
	// Empty disables console output.
	ConsoleLevel string

	// Console overrides the console writer. Defaults to os.Stderr.
	Console io.Writer
}

// Logger is a component logger that writes to the log file and, when
// enabled, to the console.
type Logger struct {
	file      *log.Logger
	console   *log.Logger
	component string
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.file.Debug(msg, args...)
	if l.console != nil {
		l.console.Debug(msg, args...)
	}
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.file.Info(msg, args...)
	if l.console != nil {
		l.console.Info(msg, args...)
	}
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.file.Warn(msg, args...)
	if l.console != nil {
		l.console.Warn(msg, args...)
	}
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.file.Error(msg, args...)
	if l.console != nil {
		l.console.Error(msg, args...)
	}
}

// With returns a logger carrying additional key/value context.
func (l *Logger) With(args ...interface{}) *Logger {
	out := &Logger{
		file:      l.file.With(args...),
		component: l.component,
	}
	if l.console != nil {
		out.console = l.console.With(args...)
	}
	return out
}

type state struct {
	mu           sync.RWMutex
	initialized  bool
	writer       *lumberjack.Logger
	level        Level
	console      io.Writer
	consoleLevel Level
	runID        string
	loggers      map[string]*Logger
}

var globalState = &state{
	loggers: make(map[string]*Logger),
}

// Init initializes the logging system. Before Init is called every logger
// writes to io.Discard.
func Init(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	var console io.Writer
	consoleLevel := LevelWarn
	if cfg.ConsoleLevel != "" {
		consoleLevel, err = ParseLevel(cfg.ConsoleLevel)
		if err != nil {
			return fmt.Errorf("parsing console level: %w", err)
		}
		console = cfg.Console
		if console == nil {
			console = os.Stderr
		}
	}

	path := cfg.Path
	if path == "" {
		path = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if globalState.writer != nil {
		if err := globalState.writer.Close(); err != nil {
			return fmt.Errorf("closing existing writer: %w", err)
		}
	}

	globalState.writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	globalState.level = level
	globalState.console = console
	globalState.consoleLevel = consoleLevel
	globalState.initialized = true

	globalState.refresh()

	return nil
}

// WithRun tags every logger, existing and future, with a run identifier so
// lines from one invocation can be correlated in the shared log file.
func WithRun(id string) {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	globalState.runID = id
	globalState.refresh()
}

// Get returns the logger for a component, creating it on first use.
func Get(component string) *Logger {
	globalState.mu.RLock()
	if logger, ok := globalState.loggers[component]; ok {
		globalState.mu.RUnlock()
		return logger
	}
	globalState.mu.RUnlock()

	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if logger, ok := globalState.loggers[component]; ok {
		return logger
	}

	logger := createLogger(component)
	globalState.loggers[component] = logger
	return logger
}

// refresh rebuilds every cached logger in place so package-level logger
// variables pick up the current configuration. Must be called with mu held.
func (s *state) refresh() {
	for component, logger := range s.loggers {
		*logger = *createLogger(component)
	}
}

// createLogger must be called with globalState.mu held.
func createLogger(component string) *Logger {
	if !globalState.initialized {
		return &Logger{
			file:      log.NewWithOptions(io.Discard, log.Options{Prefix: component}),
			component: component,
		}
	}

	file := log.NewWithOptions(globalState.writer, log.Options{
		Level:           globalState.level.charm(),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          component,
		Formatter:       log.LogfmtFormatter,
	})

	logger := &Logger{file: file, component: component}

	if globalState.console != nil {
		logger.console = log.NewWithOptions(globalState.console, log.Options{
			Level:           globalState.consoleLevel.charm(),
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          component,
		})
	}

	if globalState.runID != "" {
		return logger.With("run", globalState.runID)
	}
	return logger
}

// Close flushes and closes the log file and resets loggers to discard.
func Close() error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if !globalState.initialized {
		return nil
	}

	var err error
	if globalState.writer != nil {
		err = globalState.writer.Close()
		globalState.writer = nil
	}

	globalState.initialized = false
	globalState.console = nil
	globalState.runID = ""
	globalState.refresh()

	if err != nil {
		return fmt.Errorf("closing log writer: %w", err)
	}
	return nil
}

// DefaultLogPath returns $XDG_STATE_HOME/groom/groom.log.
func DefaultLogPath() string {
	return filepath.Join(config.StateDir(), "groom.log")
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Path:       DefaultLogPath(),
		MaxSize:    config.DefaultLogMaxSize,
		MaxBackups: config.DefaultLogMaxBackups,
		MaxAge:     config.DefaultLogMaxAge,
		Compress:   true,
	}
}
