package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type traceIDKey struct{}
type gameIDKey struct{}
type tickKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(traceIDKey{}).(string)
	return s, ok && s != ""
}

// WithGameID 标记当前对局（会话）id，日志会自动带上 game_id。
func WithGameID(ctx context.Context, gameID int64) context.Context {
	return context.WithValue(ctx, gameIDKey{}, gameID)
}

func GameIDFrom(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	v, ok := ctx.Value(gameIDKey{}).(int64)
	return v, ok && v != 0
}

// WithTick 标记当前模拟 tick。tick 0 是合法值，所以只看 key 是否存在。
func WithTick(ctx context.Context, tick uint32) context.Context {
	return context.WithValue(ctx, tickKey{}, tick)
}

func TickFrom(ctx context.Context) (uint32, bool) {
	if ctx == nil {
		return 0, false
	}
	v, ok := ctx.Value(tickKey{}).(uint32)
	return v, ok
}

// NewTraceID 生成 16 字节随机 trace_id（hex）。
func NewTraceID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}
