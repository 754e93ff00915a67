package errx

import (
	"errors"
	"testing"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := New("ROSTER_INVALID", "x").With("k", "v").Because(errors.New("cause1"))
	e2 := New("ROSTER_INVALID", "x2").With("k2", "v2").Because(errors.New("cause2"))
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is(e1, e2)==true（只按 code 判断语义），e1=%v e2=%v", e1, e2)
	}
	if errors.Is(e1, New("PLACEMENT_FAILED", "x")) {
		t.Fatalf("期望不同 code 不相等")
	}
}

func TestError_领域错误不捕获栈_但保留cause链(t *testing.T) {
	cause := errors.New("bad unit cfgId")
	err := New("ROSTER_INVALID", "未知兵种").Because(cause)
	if got := err.Stack(); got != nil {
		t.Fatalf("期望领域错误不捕获栈，got=%v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
}

func TestError_系统错误捕获一次栈_且不重复捕获(t *testing.T) {
	cause := errors.New("yaml: line 3")
	sys := ErrConfigInvalid.Because(cause)
	if got := sys.Stack(); len(got) == 0 {
		t.Fatalf("期望系统错误在转换处捕获栈，got=%v", got)
	}

	// 再包一层：下层已有栈，上层不应重复捕获
	sys2 := ErrInternal.Because(sys)
	if got := sys2.Stack(); got != nil {
		t.Fatalf("期望上层不重复捕获栈（cause 链里已有栈），got=%v", got)
	}
}

func TestError_With_写时复制不污染原对象(t *testing.T) {
	base := New("ROSTER_INVALID", "")
	derived := base.With("cfgId", 101)
	if base.Field("cfgId") != nil {
		t.Fatalf("期望 With 返回新对象，原对象字段不变；got=%v", base.Field("cfgId"))
	}
	if derived.Field("cfgId") != 101 {
		t.Fatalf("期望派生对象带上字段；got=%v", derived.Field("cfgId"))
	}
}

func TestCodeOf_从错误链提取错误码(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), New("PLACEMENT_FAILED", "集群不足"))
	if got := CodeOf(wrapped); got != "PLACEMENT_FAILED" {
		t.Fatalf("期望从链上取到错误码，got=%q", got)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Fatalf("期望非 errx 链返回空串，got=%q", got)
	}
}
