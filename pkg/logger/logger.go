// pkg/logger/logger.go
package logger

import (
	"go.uber.org/zap"
)

type Sugared = *zap.SugaredLogger

// New builds a production logger for env "prod" and a development logger
// otherwise. A non-empty level ("debug", "warn", ...) overrides the default.
func New(env, level string) Sugared {
	var zc zap.Config
	if env == "prod" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	if level != "" {
		if lvl, err := zap.ParseAtomicLevel(level); err == nil {
			zc.Level = lvl
		}
	}
	z, err := zc.Build()
	if err != nil {
		z = zap.NewNop()
	}
	return z.Sugar()
}

// Nop discards everything; handy in tests.
func Nop() Sugared { return zap.NewNop().Sugar() }
