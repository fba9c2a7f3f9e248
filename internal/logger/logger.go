package logger

import "go.uber.org/zap"

// Log is a nop until Init is called, so library code and tests can log freely.
var Log = zap.NewNop()

func Init() {
	Log = zap.Must(zap.NewProduction())
}

func Sugar() *zap.SugaredLogger {
	return Log.Sugar()
}
