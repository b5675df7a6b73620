// Package logging provides the leveled printf-style logger shared by the
// server and the client.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// ParseLevel maps a level name to its Level. Unrecognized names fall back
// to LevelInfo so a typoed -log-level never silences the server.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes timestamped, level-prefixed lines and drops everything
// below its threshold.
type Logger struct {
	level Level
	out   *log.Logger
}

// New creates a logger writing to stderr, keeping stdout free for demo and
// report output.
func New(level string) *Logger {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(level string, w io.Writer) *Logger {
	return &Logger{
		level: ParseLevel(level),
		out:   log.New(w, "", log.LstdFlags),
	}
}

// Level returns the logger's threshold.
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) logf(level Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("[%s] %s", levelNames[level], fmt.Sprintf(msg, args...))
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.logf(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...interface{})  { l.logf(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.logf(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...interface{}) { l.logf(LevelError, msg, args...) }
