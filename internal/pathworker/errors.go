package pathworker

import "FrontierSim/modules/kit/errx"

var (
	errBadRequest = errx.NewBiz(errx.CodeReqParamError, "寻路请求参数错误")
	// ErrNotRunning 表示 Runtime 已关闭或未创建。
	ErrNotRunning = errx.NewSys(errx.CodeUnavailable, "寻路 worker 未运行")
)
