package errx

import (
	"errors"
	"testing"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := NewBiz("PLAYER_NOT_FOUND", "x").WithData("player", 1).WithCause(errors.New("cause1"))
	e2 := NewBiz("PLAYER_NOT_FOUND", "x2").WithData("player", 2)
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is(e1, e2)==true（只按 code 判断语义），e1=%v e2=%v", e1, e2)
	}
}

func TestError_业务错误不捕获栈_但保留cause链(t *testing.T) {
	cause := errors.New("tile out of range")
	err := NewBiz("INVALID_TILE", "非法地块").WithCause(cause)
	if got := err.Stack(); got != nil {
		t.Fatalf("期望业务错误不捕获栈，got=%v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
	if err.IsSys() {
		t.Fatalf("期望 IsSys()==false")
	}
}

func TestError_系统错误捕获一次栈_且不重复捕获(t *testing.T) {
	cause := errors.New("mongo timeout")
	sys := NewSys("SYS_STATS_UNAVAILABLE", "统计存储不可用").WithCause(cause)
	if got := sys.Stack(); len(got) == 0 {
		t.Fatalf("期望系统错误捕获栈，got=%v", got)
	}
	sys2 := NewSys("SYS_FLUSH_FAIL", "写入失败").WithCause(sys)
	if got := sys2.Stack(); got != nil {
		t.Fatalf("期望上层系统错误不重复捕获栈，got=%v", got)
	}
}

func TestError_Data_防止外部map污染(t *testing.T) {
	m := map[string]any{"k": "v"}
	err := NewBiz("BIZ_X", "").WithDataMap(m)
	m["k"] = "mutated"
	if got := err.Data()["k"]; got != "v" {
		t.Fatalf("期望构造时复制 data；got=%v", got)
	}
}

func TestPanic_panic值可被errors_As取回(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("期望 Panic 触发 panic")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("期望 panic 值实现 error，got=%T", r)
		}
		var e *Error
		if !errors.As(err, &e) || e.Code() != CodeContractViolation {
			t.Fatalf("期望取回 CONTRACT_VIOLATION，got=%v", err)
		}
		if len(e.Stack()) == 0 {
			t.Fatalf("期望 fatal 错误带栈")
		}
	}()
	Panic(ErrContractViolation.WithData("exec", "player"))
}
