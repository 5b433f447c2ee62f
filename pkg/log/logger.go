package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level is a verbosity level, ordered from most to least verbose
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// backendLevels maps each Level onto go-logging, whose own constants run
// the other way (CRITICAL is 0)
var backendLevels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// leveledBackend is shared by every named logger
var leveledBackend logging.LeveledBackend

// current tracks the last level so SetSink can keep it
var current = Notice

// Logger is the leveled logging interface handed out by New
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns a logger tagged with the given module name
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all loggers to w
func SetSink(w io.Writer) {
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(formatted)
	logging.SetBackend(leveledBackend)
	SetLevel(current)
}

// SetLevel sets the verbosity of all loggers. Unknown levels are clamped to
// the nearest end of the range.
func SetLevel(level Level) {
	switch {
	case level < Debug:
		level = Debug
	case level > Error:
		level = Error
	}
	current = level
	leveledBackend.SetLevel(backendLevels[level], "")
}

func init() {
	SetSink(os.Stderr)
	SetLevel(Notice)
}
