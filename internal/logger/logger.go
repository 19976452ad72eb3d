package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the process-wide zap logger. Safe to call more than once; only the
// first call wins.
func Init(development bool) {
	once.Do(func() {
		var l *zap.Logger
		var err error
		if development {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			panic(err)
		}
		sugar = l.Sugar()
	})
}

func get() *zap.SugaredLogger {
	if sugar == nil {
		Init(true)
	}
	return sugar
}

func Debugf(template string, args ...any) { get().Debugf(template, args...) }

func Infof(template string, args ...any) { get().Infof(template, args...) }

func Warnf(template string, args ...any) { get().Warnf(template, args...) }

func Errorf(template string, args ...any) { get().Errorf(template, args...) }

func Fatalf(template string, args ...any) { get().Fatalf(template, args...) }
