package logx

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
)

type codeTextProvider interface {
	CodeText() string
}

type msgProvider interface {
	Msg() string
}

type dataProvider interface {
	Data() map[string]any
}

type stackProvider interface {
	Stack() []uintptr
}

type reasonProvider interface {
	Reason() string
}

// scopeKeys 是模拟现场的定位键：哪个 execution、哪个玩家、哪块地、第几 tick。
// 错误数据里出现这些键时单独提出来，日志检索时可以直接按字段过滤。
var scopeKeys = []string{"exec", "player", "unit", "tile", "x", "y", "tick", "game_id"}

const (
	maxStackFrames = 24
	maxCauseDepth  = 16
)

type ErrorLog struct {
	Error      string
	Code       string
	Msg        string
	Reason     string
	Data       map[string]any
	Scope      map[string]any
	Fatal      bool
	CauseChain []string
	Origin     string
	Stack      string
}

// BuildErrorLog 拆出错误码、语义、模拟现场、cause 链与发生处栈。
func BuildErrorLog(err error) ErrorLog {
	if err == nil {
		return ErrorLog{}
	}
	out := ErrorLog{Error: err.Error()}

	var cp codeTextProvider
	if errors.As(err, &cp) {
		out.Code = cp.CodeText()
	}
	var mp msgProvider
	if errors.As(err, &mp) {
		out.Msg = mp.Msg()
	}
	var rp reasonProvider
	if errors.As(err, &rp) {
		out.Reason = rp.Reason()
	}
	var dp dataProvider
	if errors.As(err, &dp) {
		out.Data, out.Scope, out.Fatal = splitScope(dp.Data())
	}
	var sp stackProvider
	if errors.As(err, &sp) {
		out.Origin, out.Stack = formatStack(sp.Stack(), maxStackFrames)
	}
	out.CauseChain = buildCauseChain(err, maxCauseDepth)
	return out
}

// splitScope 把定位键和 fatal 标记从业务数据里分出来，不修改入参。
func splitScope(data map[string]any) (rest, scope map[string]any, fatal bool) {
	for k, v := range data {
		switch {
		case k == "fatal":
			fatal, _ = v.(bool)
		case slices.Contains(scopeKeys, k):
			if scope == nil {
				scope = make(map[string]any, 2)
			}
			scope[k] = v
		default:
			if rest == nil {
				rest = make(map[string]any, len(data))
			}
			rest[k] = v
		}
	}
	return rest, scope, fatal
}

func buildCauseChain(err error, maxDepth int) []string {
	var out []string
	for cur := errors.Unwrap(err); cur != nil && len(out) < maxDepth; cur = errors.Unwrap(cur) {
		out = append(out, fmt.Sprintf("%T: %v", cur, cur))
	}
	return out
}

// formatStack 跳过 runtime 自身的帧（panic 展开时的 gopanic 等），第一条业务帧记为发生处。
func formatStack(pcs []uintptr, maxFrames int) (origin string, stack string) {
	if len(pcs) == 0 || maxFrames <= 0 {
		return "", ""
	}
	frames := runtime.CallersFrames(pcs)
	lines := make([]string, 0, maxFrames)
	for len(lines) < maxFrames {
		f, more := frames.Next()
		if f.Function == "" && f.File == "" {
			break
		}
		if !strings.HasPrefix(f.Function, "runtime.") {
			line := fmt.Sprintf("%s %s:%d", f.Function, f.File, f.Line)
			if origin == "" {
				origin = line
			}
			lines = append(lines, line)
		}
		if !more {
			break
		}
	}
	return origin, strings.Join(lines, "\n")
}
