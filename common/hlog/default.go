package hlog

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
)

// Tracef 调用默认记录器的 Tracef 方法。
func Tracef(format string, v ...any) {
	logger.Tracef(format, v...)
}

// Debugf 调用默认记录器的 Debugf 方法。
func Debugf(format string, v ...any) {
	logger.Debugf(format, v...)
}

// Infof 调用默认记录器的 Infof 方法。
func Infof(format string, v ...any) {
	logger.Infof(format, v...)
}

// Noticef 调用默认记录器的 Noticef 方法。
func Noticef(format string, v ...any) {
	logger.Noticef(format, v...)
}

// Warnf 调用默认记录器的 Warnf 方法。
func Warnf(format string, v ...any) {
	logger.Warnf(format, v...)
}

// Errorf 调用默认记录器的 Errorf 方法。
func Errorf(format string, v ...any) {
	logger.Errorf(format, v...)
}

// Fatalf 调用默认记录器的 Fatalf 方法，然后 os.Exit(1)。
func Fatalf(format string, v ...any) {
	logger.Fatalf(format, v...)
}

// CtxDebugf 调用默认记录器的 CtxDebugf 方法。
func CtxDebugf(ctx context.Context, format string, v ...any) {
	logger.CtxDebugf(ctx, format, v...)
}

// CtxWarnf 调用默认记录器的 CtxWarnf 方法。
func CtxWarnf(ctx context.Context, format string, v ...any) {
	logger.CtxWarnf(ctx, format, v...)
}

// CtxErrorf 调用默认记录器的 CtxErrorf 方法。
func CtxErrorf(ctx context.Context, format string, v ...any) {
	logger.CtxErrorf(ctx, format, v...)
}

type defaultLogger struct {
	std   *log.Logger
	level Level
	depth int
}

func (l *defaultLogger) SetOutput(w io.Writer) {
	l.std.SetOutput(w)
}

func (l *defaultLogger) SetLevel(lv Level) {
	l.level = lv
}

func (l *defaultLogger) Tracef(format string, v ...any) {
	l.logf(LevelTrace, format, v...)
}

func (l *defaultLogger) Debugf(format string, v ...any) {
	l.logf(LevelDebug, format, v...)
}

func (l *defaultLogger) Infof(format string, v ...any) {
	l.logf(LevelInfo, format, v...)
}

func (l *defaultLogger) Noticef(format string, v ...any) {
	l.logf(LevelNotice, format, v...)
}

func (l *defaultLogger) Warnf(format string, v ...any) {
	l.logf(LevelWarn, format, v...)
}

func (l *defaultLogger) Errorf(format string, v ...any) {
	l.logf(LevelError, format, v...)
}

func (l *defaultLogger) Fatalf(format string, v ...any) {
	l.logf(LevelFatal, format, v...)
}

func (l *defaultLogger) CtxTracef(_ context.Context, format string, v ...any) {
	l.logf(LevelTrace, format, v...)
}

func (l *defaultLogger) CtxDebugf(_ context.Context, format string, v ...any) {
	l.logf(LevelDebug, format, v...)
}

func (l *defaultLogger) CtxInfof(_ context.Context, format string, v ...any) {
	l.logf(LevelInfo, format, v...)
}

func (l *defaultLogger) CtxNoticef(_ context.Context, format string, v ...any) {
	l.logf(LevelNotice, format, v...)
}

func (l *defaultLogger) CtxWarnf(_ context.Context, format string, v ...any) {
	l.logf(LevelWarn, format, v...)
}

func (l *defaultLogger) CtxErrorf(_ context.Context, format string, v ...any) {
	l.logf(LevelError, format, v...)
}

func (l *defaultLogger) CtxFatalf(_ context.Context, format string, v ...any) {
	l.logf(LevelFatal, format, v...)
}

func (l *defaultLogger) logf(lv Level, format string, v ...any) {
	// 低于设置的日志级别，将不会输出。
	if l.level > lv {
		return
	}
	_ = l.std.Output(l.depth, lv.String()+fmt.Sprintf(format, v...))
	if lv == LevelFatal {
		os.Exit(1)
	}
}
