package hlog

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

type byteSliceWriter struct {
	b []byte
}

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}

func initTestLoggers() {
	logger = &defaultLogger{
		std:   log.New(os.Stderr, "", 0),
		depth: 4,
	}
	sysLogger = &systemLogger{
		logger: &defaultLogger{
			std:   log.New(os.Stderr, "", 0),
			depth: 4,
		},
		prefix: systemLogPrefix,
	}
}

func TestDefaultFormatLogger(t *testing.T) {
	initTestLoggers()

	var w byteSliceWriter
	SetOutput(&w)

	item := "参数"
	Tracef("跟踪%s", item)
	Debugf("注册%s", item)
	Infof("绑定%s", item)
	Noticef("%s有默认值", item)
	Warnf("%s可能无效", item)
	Errorf("%s解析失败", item)

	assert.Equal(t, "[Trace] 跟踪参数\n"+
		"[Debug] 注册参数\n"+
		"[Info] 绑定参数\n"+
		"[Notice] 参数有默认值\n"+
		"[Warn] 参数可能无效\n"+
		"[Error] 参数解析失败\n", string(w.b))
}

func TestCtxLoggerAndLevel(t *testing.T) {
	initTestLoggers()

	var w byteSliceWriter
	SetOutput(&w)
	SetLevel(LevelWarn)
	defer SetLevel(LevelTrace)

	ctx := context.Background()
	CtxDebugf(ctx, "不会输出 %d", 1)
	CtxWarnf(ctx, "结果 %d 应用缓慢", 304)
	CtxErrorf(ctx, "结果 %d 应用失败", 500)

	assert.Equal(t, "[Warn] 结果 304 应用缓慢\n"+
		"[Error] 结果 500 应用失败\n", string(w.b))
}

func TestSystemLogger(t *testing.T) {
	initTestLoggers()

	var w byteSliceWriter
	SetOutput(&w)

	SystemLogger().Debugf("注册动作 %s", "createUser")
	SystemLogger().CtxErrorf(context.Background(), "应用结果失败：%v", "boom")

	assert.Equal(t, "[Debug] mvc: 注册动作 createUser\n"+
		"[Error] mvc: 应用结果失败：boom\n", string(w.b))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "[Info] ", LevelInfo.String())
	assert.Equal(t, "[?9] ", Level(9).String())
}
