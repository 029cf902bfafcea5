package logger

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
)

var Logger *zap.SugaredLogger

// Init builds the global logger. dev enables human-readable console
// output; production mode writes structured JSON. Packages fall back to
// the standard library log when Init was never called.
func Init(dev bool) {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	zl, err := cfg.Build()
	if err != nil {
		log.Print(err)
		return
	}

	Logger = zl.Sugar()
	Info("ScriptCache logger initialized")
}

func Info(template string, args ...interface{}) {
	if Logger == nil {
		log.Printf(template, args...)
		return
	}
	Logger.Infow(fmt.Sprintf(template, args...), "process_id", os.Getpid())
}

func Warn(template string, args ...interface{}) {
	if Logger == nil {
		log.Printf(template, args...)
		return
	}
	Logger.Warnw(fmt.Sprintf(template, args...), "process_id", os.Getpid())
}

func Error(template string, args ...interface{}) {
	if Logger == nil {
		log.Printf(template, args...)
		return
	}
	Logger.Errorw(fmt.Sprintf(template, args...), "process_id", os.Getpid())
}

func Debug(template string, args ...interface{}) {
	if Logger == nil {
		return
	}
	Logger.Debugw(fmt.Sprintf(template, args...), "process_id", os.Getpid())
}
