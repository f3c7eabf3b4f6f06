package logger

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Options controls how a logger is built. Level accepts the standard
// severity names (TRACE, DEBUG, INFO, WARN, ERROR); anything unknown falls
// back to INFO. Path enables rotated file logging alongside stdout.
type Options struct {
	Level string
	Path  string
}

// New builds a logger from the given options. The caller owns the handle
// and hands out component entries via Prefixed.
func New(opts Options) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(parseLevel(opts.Level))
	l.SetFormatter(&prefixed.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		ForceFormatting: true,
	})

	if opts.Path != "" {
		l.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
		}))
	} else {
		l.SetOutput(os.Stdout)
	}

	return l
}

// Prefixed returns an entry tagged with a component prefix, rendered
// specially by the prefixed formatter.
func Prefixed(l *logrus.Logger, prefix string) *logrus.Entry {
	return l.WithField("prefix", prefix)
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
