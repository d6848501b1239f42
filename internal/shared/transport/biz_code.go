package transport

import (
	"errors"

	"FrontierSim/modules/kit/errx"
)

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 对外响应体里的 code：1~499 为业务拒绝，>=500 为系统错误（访问日志据此分级）。
const (
	OK           = 0
	InvalidParam = 400
	Unauthorized = 401
	NotFound     = 404
	Rejected     = 409
	SystemError  = 500
	Unavailable  = 503
	Timeout      = 504
)

// bizCodes 把领域错误码映射到响应码，未登记的业务错误统一为 Rejected。
var bizCodes = map[errx.Code]int{
	errx.CodeReqParamError: InvalidParam,
	errx.CodeTimeout:       Timeout,
	errx.CodeUnavailable:   Unavailable,
	"PLAYER_NOT_FOUND":     NotFound,
	"PATH_NOT_FOUND":       NotFound,
	"STATS_NOT_FOUND":      NotFound,
	"INVALID_TILE":         InvalidParam,
	"UNAUTHORIZED":         Unauthorized,
}

// CodeOf 把 error 翻译为响应码。
func CodeOf(err error) int {
	if err == nil {
		return OK
	}
	var e *errx.Error
	if !errors.As(err, &e) {
		return SystemError
	}
	if c, ok := bizCodes[e.Code()]; ok {
		return c
	}
	if e.IsSys() {
		return SystemError
	}
	return Rejected
}
