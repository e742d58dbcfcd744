package utils

import (
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	logMaxSizeMB  = 64
	logMaxBackups = 8
	logMaxAgeDays = 30
)

// NewLog returns a logger writing to <dir>/<name>.log, rotated by size. An empty dir
// discards the output.
func NewLog(dir, name string) *log.Logger {
	if dir == "" {
		return log.New(io.Discard, "", 0)
	}
	writer := &lumberjack.Logger{
		Filename:   filepath.Join(dir, name+".log"),
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
	}
	return log.New(writer, "", log.LstdFlags|log.Lmicroseconds)
}

// NewConsoleLog mirrors NewLog to stderr.
func NewConsoleLog(dir, name string) *log.Logger {
	logger := NewLog(dir, name)
	logger.SetOutput(io.MultiWriter(logger.Writer(), os.Stderr))
	return logger
}
