package errx

// 这里只定义跨上下文统一的系统类错误码。
//
// 约束：
// - 领域错误码（例如 ROSTER_INVALID、PLACEMENT_FAILED）由各 bounded context 自行定义
// - kit 只收归一化的技术类错误，便于观测与排障

const (
	// CodeInternal 表示不可预期的内部错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeConfigInvalid 表示配置/基础数据非法（启动期 fail fast，不做静默纠偏）。
	CodeConfigInvalid Code = "CONFIG_INVALID"
)

var (
	ErrInternal      = NewSys(CodeInternal, "内部错误")
	ErrConfigInvalid = NewSys(CodeConfigInvalid, "配置非法")
)
