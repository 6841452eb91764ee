// Package logger configures the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelWriter routes each event to a writer chosen by its level:
// trace, warn and error+ each have their own writer, debug and info share InfoWriter.
type LevelWriter struct {
	ErrorWriter io.Writer
	InfoWriter  io.Writer
	TraceWriter io.Writer
	WarnWriter  io.Writer
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	var w io.Writer

	switch {
	case l == zerolog.Disabled:
		return 0, nil
	case l == zerolog.TraceLevel:
		w = lw.TraceWriter
	case l == zerolog.WarnLevel:
		w = lw.WarnWriter
	case l > zerolog.WarnLevel:
		w = lw.ErrorWriter
	default:
		w = lw.InfoWriter
	}

	return w.Write(p) //nolint:wrapcheck
}

// Write sends level-less events to InfoWriter.
func (lw *LevelWriter) Write(p []byte) (int, error) {
	return lw.InfoWriter.Write(p) //nolint:wrapcheck
}

// Init replaces the global zerolog logger according to cfg.
// With neither console nor file output enabled, log events are discarded.
func Init(cfg Log) error {
	logLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("loglevel %s is not supported", cfg.LogLevel))
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	stack := false
	if logLevel == zerolog.TraceLevel {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
		stack = true
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.ErrorHandler = ErrorHandler //nolint:reassign

	var writers []io.Writer

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		fw, errFile := newRollingFileWriter(cfg.File)
		if errFile != nil {
			return errFile
		}

		writers = append(writers, fw)
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewPrometheusHook(cfg.ServiceName)).
		With().
		Timestamp().
		Str("app", cfg.AppName)

	switch {
	case cfg.ReportCaller && stack:
		ctx = ctx.Stack().Caller()
	case cfg.ReportCaller:
		ctx = ctx.Caller()
	}

	log.Logger = ctx.Logger()

	return nil
}

func newRollingFileWriter(cfg LogFile) (io.Writer, error) {
	if err := os.MkdirAll(cfg.Path, 0o750); err != nil { //nolint:mnd
		return nil, errors.Wrapf(err, "can't create log directory %s", cfg.Path)
	}

	rolling := func(f RollingFile, fallback string) io.Writer {
		name := f.Name
		if name == "" {
			name = fallback
		}

		return &lumberjack.Logger{
			Filename:   path.Join(cfg.Path, name),
			MaxSize:    f.MaxSize,
			MaxAge:     f.MaxAge,
			MaxBackups: f.MaxBackups,
		}
	}

	return &LevelWriter{
		ErrorWriter: rolling(cfg.Error, "error.log"),
		InfoWriter:  rolling(cfg.Info, "info.log"),
		TraceWriter: rolling(cfg.Trace, "trace.log"),
		WarnWriter:  rolling(cfg.Warn, "warn.log"),
	}, nil
}

// NewConsoleWriter writes info and debug to stdout and everything else to stderr.
func NewConsoleWriter(cfg Log) io.Writer {
	wrap := func(w io.Writer) io.Writer {
		if !cfg.Console.UseConsoleWriter {
			return w
		}

		return zerolog.ConsoleWriter{Out: w, TimeFormat: zerolog.TimeFieldFormat}
	}

	return &LevelWriter{
		ErrorWriter: wrap(os.Stderr),
		InfoWriter:  wrap(os.Stdout),
		TraceWriter: wrap(os.Stderr),
		WarnWriter:  wrap(os.Stderr),
	}
}
