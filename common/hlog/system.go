package hlog

import (
	"context"
	"io"
)

// 为每条日志加上固定前缀后转发给底层记录器。
type systemLogger struct {
	logger FullLogger
	prefix string
}

func (l *systemLogger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

func (l *systemLogger) SetLevel(lv Level) {
	l.logger.SetLevel(lv)
}

func (l *systemLogger) Tracef(format string, v ...any) {
	l.logger.Tracef(l.prefix+format, v...)
}

func (l *systemLogger) Debugf(format string, v ...any) {
	l.logger.Debugf(l.prefix+format, v...)
}

func (l *systemLogger) Infof(format string, v ...any) {
	l.logger.Infof(l.prefix+format, v...)
}

func (l *systemLogger) Noticef(format string, v ...any) {
	l.logger.Noticef(l.prefix+format, v...)
}

func (l *systemLogger) Warnf(format string, v ...any) {
	l.logger.Warnf(l.prefix+format, v...)
}

func (l *systemLogger) Errorf(format string, v ...any) {
	l.logger.Errorf(l.prefix+format, v...)
}

func (l *systemLogger) Fatalf(format string, v ...any) {
	l.logger.Fatalf(l.prefix+format, v...)
}

func (l *systemLogger) CtxTracef(ctx context.Context, format string, v ...any) {
	l.logger.CtxTracef(ctx, l.prefix+format, v...)
}

func (l *systemLogger) CtxDebugf(ctx context.Context, format string, v ...any) {
	l.logger.CtxDebugf(ctx, l.prefix+format, v...)
}

func (l *systemLogger) CtxInfof(ctx context.Context, format string, v ...any) {
	l.logger.CtxInfof(ctx, l.prefix+format, v...)
}

func (l *systemLogger) CtxNoticef(ctx context.Context, format string, v ...any) {
	l.logger.CtxNoticef(ctx, l.prefix+format, v...)
}

func (l *systemLogger) CtxWarnf(ctx context.Context, format string, v ...any) {
	l.logger.CtxWarnf(ctx, l.prefix+format, v...)
}

func (l *systemLogger) CtxErrorf(ctx context.Context, format string, v ...any) {
	l.logger.CtxErrorf(ctx, l.prefix+format, v...)
}

func (l *systemLogger) CtxFatalf(ctx context.Context, format string, v ...any) {
	l.logger.CtxFatalf(ctx, l.prefix+format, v...)
}
