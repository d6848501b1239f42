package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是模拟器内各包共用的最小日志接口。
//
// 约束：
// - API 保持极简：结构化字段 + ctx 透传（trace/game/tick）
// - 引擎热路径只在异常分支打日志，正常 tick 不输出
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	WithContext(ctx context.Context) Logger
}

// Nop 返回丢弃所有输出的 Logger，测试与默认值使用。
func Nop() Logger {
	return NewZapLogger(nil)
}
