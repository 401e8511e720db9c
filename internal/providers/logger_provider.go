package providers

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"cgmd/internal/structures"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
	TypePoll
	TypeVendor
)

var logFileNames = map[TypeEnum]string{
	TypeApp:    "app.log",
	TypeGet:    "get.log",
	TypePost:   "post.log",
	TypePoll:   "poll.log",
	TypeVendor: "vendor.log",
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	files   []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger)}
	for t, name := range logFileNames {
		file, err := os.OpenFile(
			filepath.Join(conf.Logger.Dir, name),
			os.O_CREATE|os.O_APPEND|os.O_WRONLY,
			os.FileMode(conf.Logger.Mode),
		)
		if err != nil {
			lp.Close()
			return nil, err
		}
		lp.files = append(lp.files, file)

		var out io.Writer = file
		if conf.Debug {
			out = io.MultiWriter(file, zerolog.ConsoleWriter{Out: os.Stdout})
		}
		lp.loggers[t] = zerolog.New(out).Level(level).With().Timestamp().Logger()
	}
	return lp, nil
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l := lp.loggers[t]
	l.Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l := lp.loggers[t]
	l.Warn().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l := lp.loggers[t]
	l.Debug().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l := lp.loggers[t]
	l.Info().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l := lp.loggers[t]
	l.Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, f := range lp.files {
		_ = f.Close()
	}
}
