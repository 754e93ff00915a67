package logx

import "go.uber.org/zap"

// Logger 是跨包可复用的最小日志接口。
//
// 约束：
// - 保持 API 极简，避免“自研日志框架”过度设计
// - 只承载模拟核心需要的能力：结构化字段 + 预绑定字段（世代号、种子等）
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
}

// Nop 返回什么都不做的 Logger，测试注入用。
func Nop() Logger {
	return NewZapLogger(nil)
}
