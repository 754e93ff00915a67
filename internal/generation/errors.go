package generation

import "Ashfall/modules/kit/errx"

const (
	// CodeGenerationInvalid 世代参数非法（天数/人数/尺寸）。
	CodeGenerationInvalid errx.Code = "GENERATION_INVALID"
	// CodeLateJoinClosed 补位只开放到 planning 阶段结束。
	CodeLateJoinClosed errx.Code = "LATE_JOIN_CLOSED"
)

var (
	ErrGenerationInvalid = errx.New(CodeGenerationInvalid, "世代参数非法")
	ErrLateJoinClosed    = errx.New(CodeLateJoinClosed, "补位窗口已关闭")
)
