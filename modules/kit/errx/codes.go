package errx

// 跨包统一的系统类错误码。
//
// 约束：
// - 这里只放“系统/契约类”错误码，便于告警与排障
// - 领域错误码（例如 PLAYER_NOT_FOUND）由各业务包自行定义

const (
	// CodeInternal 表示不可预期的内部错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 表示依赖不可用（存储、actor 系统、网络等）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout 表示请求/依赖调用超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeContractViolation 表示调用方违反了调用契约（例如未 init 就 tick），属于程序错误。
	CodeContractViolation Code = "CONTRACT_VIOLATION"
	// 请求参数错误
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
)

// 统一系统类哨兵错误（允许 WithData/WithCause 派生新对象）。
var (
	ErrInternal          = NewSys(CodeInternal, "内部错误")
	ErrUnavailable       = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout           = NewSys(CodeTimeout, "请求超时")
	ErrContractViolation = NewSys(CodeContractViolation, "调用契约被破坏")
	ErrReqParamERR       = NewBiz(CodeReqParamError, "请求参数错误")
)
