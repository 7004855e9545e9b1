package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Logger provides leveled logging (info/warning/error) to files and stdout/stderr.
type Logger struct {
	infoLog    *log.Logger
	warningLog *log.Logger
	errorLog   *log.Logger
	mu         sync.Mutex
}

// NewLogger creates a Logger writing into logDir, creating it if needed.
func NewLogger(logDir string) *Logger {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}

	infoWriter := io.MultiWriter(os.Stdout, openLogFile(filepath.Join(logDir, "info.log")))
	warningWriter := io.MultiWriter(os.Stdout, openLogFile(filepath.Join(logDir, "warning.log")))
	errorWriter := io.MultiWriter(os.Stderr, openLogFile(filepath.Join(logDir, "error.log")))

	return &Logger{
		infoLog:    log.New(infoWriter, "ℹ️  INFO    ", log.Ldate|log.Ltime|log.Lshortfile),
		warningLog: log.New(warningWriter, "⚠️  WARNING ", log.Ldate|log.Ltime|log.Lshortfile),
		errorLog:   log.New(errorWriter, "❌ ERROR   ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// openLogFile opens or creates a log file for appending.
func openLogFile(filename string) *os.File {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file %s: %v", filename, err)
	}
	return file
}

// Info writes a formatted info-level log entry.
func (l *Logger) Info(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infoLog.Printf(format, v...)
}

// Warning writes a formatted warning-level log entry.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warningLog.Printf(format, v...)
}

// Error writes a formatted error-level log entry.
func (l *Logger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorLog.Printf(format, v...)
}
