package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"sync"
	"time"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// PlainWriter strips ANSI colour sequences before writing, for log files.
type PlainWriter struct {
	w io.Writer
}

func NewPlainWriter(w io.Writer) *PlainWriter {
	return &PlainWriter{w: w}
}

func (pw *PlainWriter) Write(p []byte) (int, error) {
	if _, err := pw.w.Write(ansiPattern.ReplaceAll(p, nil)); err != nil {
		return 0, err
	}
	return len(p), nil
}

type MultiWriter struct {
	writers []io.Writer
}

func NewMultiWriter(writers ...io.Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (mw *MultiWriter) Write(p []byte) (n int, err error) {
	for _, w := range mw.writers {
		if _, err := w.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (mw *MultiWriter) Add(writer io.Writer) {
	mw.writers = append(mw.writers, writer)
}

type ColoredLogger struct {
	verbose bool
	color   bool
	now     func() time.Time
	mu      sync.RWMutex
	writers map[LogLevel]io.Writer
	loggers map[LogLevel]*log.Logger
}

var globalLogger *ColoredLogger

func init() {
	globalLogger = &ColoredLogger{
		color:   os.Getenv("NO_COLOR") == "",
		now:     time.Now,
		writers: make(map[LogLevel]io.Writer),
		loggers: make(map[LogLevel]*log.Logger),
	}

	// Diagnostics go to stderr so generated output on stdout stays clean.
	for level := DEBUG; level <= FATAL; level++ {
		var w io.Writer = os.Stdout
		if level >= WARN {
			w = os.Stderr
		}
		globalLogger.writers[level] = w
		globalLogger.loggers[level] = log.New(w, "", 0)
	}
}

func SetVerbose(verbose bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.verbose = verbose
}

func IsVerbose() bool {
	globalLogger.mu.RLock()
	defer globalLogger.mu.RUnlock()
	return globalLogger.verbose
}

func SetColor(enabled bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.color = enabled
}

func SetWriter(level LogLevel, writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.writers[level] = writer
	globalLogger.loggers[level] = log.New(writer, "", 0)
}

func SetWriterForAll(writer io.Writer) {
	for level := DEBUG; level <= FATAL; level++ {
		SetWriter(level, writer)
	}
}

func AddWriter(level LogLevel, writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	currentWriter := globalLogger.writers[level]

	if mw, ok := currentWriter.(*MultiWriter); ok {
		mw.Add(writer)
	} else {
		multiWriter := NewMultiWriter(currentWriter, writer)
		globalLogger.writers[level] = multiWriter
		globalLogger.loggers[level] = log.New(multiWriter, "", 0)
	}
}

func AddWriterForAll(writer io.Writer) {
	for level := DEBUG; level <= FATAL; level++ {
		AddWriter(level, writer)
	}
}

// OpenLogFile tees every level into path. The returned func closes the file.
func OpenLogFile(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	AddWriterForAll(NewPlainWriter(f))
	return f.Close, nil
}

func (cl *ColoredLogger) getColor(level LogLevel) string {
	switch level {
	case DEBUG:
		return ColorGray
	case INFO:
		return ColorBlue
	case WARN:
		return ColorYellow
	case ERROR:
		return ColorRed
	case FATAL:
		return ColorPurple
	default:
		return ColorWhite
	}
}

func (cl *ColoredLogger) formatMessage(level LogLevel, message string, color bool) string {
	timestamp := cl.now().Format("06-01-02 15:04:05")

	if !color {
		return fmt.Sprintf("[%s] %-5s %s", timestamp, level.String(), message)
	}

	return fmt.Sprintf(
		"%s[%s]%s %s%-5s%s %s",
		ColorGray, timestamp, ColorReset,
		cl.getColor(level), level.String(), ColorReset,
		message,
	)
}

func (cl *ColoredLogger) log(level LogLevel, format string, args ...interface{}) {
	cl.mu.RLock()
	if level == DEBUG && !cl.verbose {
		cl.mu.RUnlock()
		return
	}

	logger := cl.loggers[level]
	color := cl.color
	cl.mu.RUnlock()

	message := fmt.Sprintf(format, args...)
	logger.Println(cl.formatMessage(level, message, color))

	if level == FATAL {
		os.Exit(1)
	}
}

func Debug(format string, args ...interface{}) {
	globalLogger.log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.log(INFO, format, args...)
}

// Success logs at INFO level with a green message body.
func Success(format string, args ...interface{}) {
	globalLogger.mu.RLock()
	color := globalLogger.color
	globalLogger.mu.RUnlock()
	if color {
		format = ColorGreen + format + ColorReset
	}
	globalLogger.log(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.log(ERROR, format, args...)
}

func Fatal(format string, args ...interface{}) {
	globalLogger.log(FATAL, format, args...)
}

func GetLogFromLevel(level LogLevel) func(format string, args ...interface{}) {
	return func(format string, args ...interface{}) {
		globalLogger.log(level, format, args...)
	}
}
