// Copyright (c) 2022 NTT Communications Corporation
//
// This software is released under the MIT License.
// see https://github.com/nttcom/pola/blob/main/LICENSE

package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogInit builds a JSON core writing to fp teed with a console core on stderr.
// A nil fp yields the console core alone.
func LogInit(fp *os.File, dbg bool) *zap.Logger {
	return newLogger(fp, os.Stderr, dbg)
}

func newLogger(fp *os.File, console io.Writer, dbg bool) *zap.Logger {
	pe := zap.NewProductionEncoderConfig()
	pe.EncodeTime = zapcore.ISO8601TimeEncoder
	fileEncoder := zapcore.NewJSONEncoder(pe)
	consoleEncoder := zapcore.NewConsoleEncoder(pe)
	var level zapcore.Level
	if dbg {
		level = zap.DebugLevel
	} else {
		level = zap.InfoLevel
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(console), level),
	}
	if fp != nil {
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(fp), level))
	}
	return zap.New(zapcore.NewTee(cores...))
}
