package handler

import (
	"context"
	"errors"

	"FrontierSim/internal/shared/transport"
	"FrontierSim/modules/kit/errx"
	"FrontierSim/modules/kit/logx"
)

// HandleError 把错误翻译为响应码与对客户端的提示，并记入访问日志。
func (o *Observer) HandleError(ctx context.Context, action string, err error) (int, string) {
	code := transport.CodeOf(err)
	var e *errx.Error
	if !errors.As(err, &e) {
		logx.ReportSysError(ctx, o.log, logx.NewSysLog(action, err))
		transport.SetErrorReason(ctx, "UNKNOWN")
		return code, "系统繁忙，请稍后重试"
	}
	reason := e.Reason()
	if reason == "" {
		reason = string(e.Code())
	}
	transport.SetErrorReason(ctx, reason)
	if e.IsSys() {
		logx.ReportSysError(ctx, o.log, logx.NewSysLog(action, err))
		if code == transport.SystemError {
			return code, "系统繁忙，请稍后重试"
		}
		return code, e.Msg()
	}
	logx.ReportBizReject(ctx, o.log, logx.NewBizLog(action, reason, e.Msg()))
	return code, e.Msg()
}
