// Package logging provides the leveled printf-style helpers used across the dashboard,
// backed by a log/slog handler so HTTP middleware can attach structured fields.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var slogLevels = map[LogLevel]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var currentLevel int32 = int32(LevelInfo)

// handlerLevel follows currentLevel so SetLogLevel also affects structured callers.
var handlerLevel = new(slog.LevelVar)

var baseLogger atomic.Pointer[slog.Logger]

func init() {
	_ = Setup(os.Stderr, FormatText)
}

// Setup installs a new handler writing to w in the given format ("text" or "json")
// and makes it the slog default.
func Setup(w io.Writer, format string) error {
	opts := &slog.HandlerOptions{Level: handlerLevel}
	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		h = slog.NewTextHandler(w, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	l := slog.New(h)
	baseLogger.Store(l)
	slog.SetDefault(l)
	return nil
}

// ParseLevel maps a level name to a LogLevel.
func ParseLevel(s string) (LogLevel, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// SetLogLevel parses and sets global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := ParseLevel(s)
	if !ok {
		return
	}
	atomic.StoreInt32(&currentLevel, int32(l))
	handlerLevel.Set(slogLevels[l])
}

func getLevel() LogLevel { return LogLevel(atomic.LoadInt32(&currentLevel)) }

// GetLogLevel returns current global log level.
func GetLogLevel() LogLevel { return getLevel() }

// Logger returns the structured logger with the given component attribute.
func Logger(component string) *slog.Logger {
	return baseLogger.Load().With("component", component)
}

func logf(l LogLevel, format string, args ...interface{}) {
	if getLevel() > l {
		return
	}
	// Only format when there are args; a pre-formatted message may contain literal '%'.
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	baseLogger.Load().Log(context.Background(), slogLevels[l], msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the duration of a phase at debug level.
//
//	defer logging.TimeTrack(time.Now(), "load dataset")
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
