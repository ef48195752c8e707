package logger

import "go.uber.org/zap"

var log *zap.Logger

func Init() error {
	l, err := zap.NewProduction()
	if err != nil {
		return err
	}
	log = l
	return nil
}

// L returns the process logger, falling back to a no-op logger so that
// packages can log safely before Init (e.g. in tests).
func L() *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return log
}
