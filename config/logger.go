package config

import (
	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// _Logger 는 공용 패키지(eventbus, repositories, 워커)에서 사용하는
// 최소 로거 인터페이스다. 필요 시 다른 구현으로 교체할 수 있다.
type _Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Logger 는 전역 로거 인스턴스다.
// InitApp 이 호출되기 전에도 기본 info 레벨로 동작한다.
var Logger _Logger = newLogger("info")

func initLogger(level string) {
	if level == "" {
		level = "info"
	}
	Logger = newLogger(level)
}

func newLogger(level string) _Logger {
	logLevel := slog.LevelByName(level)

	var levels slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= logLevel {
			levels = append(levels, lv)
		}
	}

	h := handler.NewConsoleHandler(levels)
	formatter := slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{
			slog.FieldKeyDatetime,
			slog.FieldKeyLevel,
			slog.FieldKeyMessage,
		}
		f.Aliases = slog.StringMap{
			slog.FieldKeyDatetime: "datetime",
			slog.FieldKeyLevel:    "level",
			slog.FieldKeyMessage:  "message",
		}
		f.TimeFormat = "2006-01-02T15:04:05"
	})
	h.SetFormatter(formatter)

	return slog.NewWithHandlers(h)
}
