package errx

import (
	"errors"
	"fmt"
	"runtime"
)

// Code 表示错误码（对外语义的稳定标识）。
type Code string

// Error 是通用错误模型：
// - code/msg：对外语义，errors.Is 只按 code 比较
// - fields：发生现场的上下文（内部复制，外部改不动）
// - cause：原始错误链，仅用于溯源
// - stack：系统类错误第一次挂 cause 时捕获一次，用于定位
type Error struct {
	code   Code
	msg    string
	fields map[string]any
	cause  error
	stack  []uintptr
	sys    bool
}

// New 构造业务/领域错误（不捕获栈）。
func New(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// NewSys 构造系统类错误（挂 cause 时会捕获一次栈）。
func NewSys(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, sys: true}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.msg == "" && e.cause == nil:
		return string(e.code)
	case e.msg == "":
		return fmt.Sprintf("%s: %v", e.code, e.cause)
	case e.cause == nil:
		return fmt.Sprintf("%s: %s", e.code, e.msg)
	default:
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.cause)
	}
}

// Unwrap 让 errors.Is / errors.As 沿 cause 链溯源。
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is 只按错误码判断语义是否相同，忽略 msg/fields/cause。
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.code == t.code
}

func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}

func (e *Error) Msg() string {
	if e == nil {
		return ""
	}
	return e.msg
}

// Field 读取单个上下文字段，不存在时返回 nil。
func (e *Error) Field(key string) any {
	if e == nil || e.fields == nil {
		return nil
	}
	return e.fields[key]
}

// With 追加一个上下文字段，返回新对象（copy-on-write，原对象不动）。
func (e *Error) With(key string, value any) *Error {
	next := e.clone()
	if next.fields == nil {
		next.fields = make(map[string]any, 1)
	}
	next.fields[key] = value
	return next
}

// Because 挂接原始错误。系统类错误在首次挂 cause 且下层无栈时捕获一次调用栈。
func (e *Error) Because(cause error) *Error {
	next := e.clone()
	next.cause = cause
	if next.sys && cause != nil && len(next.stack) == 0 && !hasStackInChain(cause) {
		next.stack = captureStack(3)
	}
	return next
}

// Stack 返回错误最早被转换那一刻的调用栈（只对系统类错误生效）。
func (e *Error) Stack() []uintptr {
	if e == nil || len(e.stack) == 0 {
		return nil
	}
	out := make([]uintptr, len(e.stack))
	copy(out, e.stack)
	return out
}

// CodeOf 从任意错误链里取第一个 errx 错误码；链上没有 errx 时返回空串。
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return ""
}

func (e *Error) clone() *Error {
	next := &Error{
		code:  e.code,
		msg:   e.msg,
		cause: e.cause,
		sys:   e.sys,
	}
	if e.fields != nil {
		next.fields = make(map[string]any, len(e.fields))
		for k, v := range e.fields {
			next.fields[k] = v
		}
	}
	if len(e.stack) != 0 {
		next.stack = make([]uintptr, len(e.stack))
		copy(next.stack, e.stack)
	}
	return next
}

func captureStack(skip int) []uintptr {
	const maxDepth = 64
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip, pcs)
	if n <= 0 {
		return nil
	}
	return pcs[:n]
}

func hasStackInChain(err error) bool {
	const maxDepth = 32
	for i := 0; i < maxDepth && err != nil; i++ {
		if sp, ok := err.(interface{ Stack() []uintptr }); ok && len(sp.Stack()) != 0 {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
