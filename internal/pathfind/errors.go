package pathfind

import "FrontierSim/modules/kit/errx"

const (
	CodeHeapUnderflow errx.Code = "HEAP_UNDERFLOW"
	CodePathNotFound  errx.Code = "PATH_NOT_FOUND"
)

var (
	// ErrHeapUnderflow 说明调用方没检查 Len 就 Pop。
	ErrHeapUnderflow = errx.NewSys(CodeHeapUnderflow, "从空堆中弹出")
	ErrPathNotFound  = errx.NewBiz(CodePathNotFound, "找不到路径")
)
