// Package hlog 提供框架使用的分级日志记录器。
//
// 默认记录器供业务代码使用；系统记录器带有固定前缀，供绑定注册、结果应用等框架内部流程使用。
package hlog

import (
	"io"
	"log"
	"os"
)

const systemLogPrefix = "mvc: "

var (
	// 提供默认记录器供使用
	logger FullLogger = newDefaultLogger(os.Stderr)

	// 提供系统记录器供使用
	sysLogger FullLogger = &systemLogger{
		logger: newDefaultLogger(os.Stderr),
		prefix: systemLogPrefix,
	}
)

func newDefaultLogger(w io.Writer) *defaultLogger {
	return &defaultLogger{
		std:   log.New(w, "", log.LstdFlags|log.Lshortfile|log.Lmicroseconds),
		depth: 4,
	}
}

// SetOutput 设置默认记录器和系统记录器的写入器。默认为 os.Stderr。
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
	sysLogger.SetOutput(w)
}

// SetLevel 设置默认记录器和系统记录器的输出级别，低于该级别将不输出。并发不安全。
func SetLevel(lv Level) {
	logger.SetLevel(lv)
	sysLogger.SetLevel(lv)
}

// DefaultLogger 返回默认记录器。
func DefaultLogger() FullLogger {
	return logger
}

// SystemLogger 返回框架系统记录器。该函数不建议业务端使用。
func SystemLogger() FullLogger {
	return sysLogger
}

// SetLogger 设置默认记录器，系统记录器也将转发至 v。并发不安全，须在处理请求前调用。
func SetLogger(v FullLogger) {
	logger = v
	sysLogger = &systemLogger{
		logger: v,
		prefix: systemLogPrefix,
	}
}
