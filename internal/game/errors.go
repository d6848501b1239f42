package game

import "FrontierSim/modules/kit/errx"

// 领域错误码。
const (
	CodeInvalidTile    errx.Code = "INVALID_TILE"
	CodePlayerNotFound errx.Code = "PLAYER_NOT_FOUND"
	CodeCannotBuild    errx.Code = "CANNOT_BUILD"
	CodeMapFormat      errx.Code = "MAP_FORMAT"
)

var (
	ErrInvalidTile    = errx.NewBiz(CodeInvalidTile, "非法地块")
	ErrPlayerNotFound = errx.NewBiz(CodePlayerNotFound, "玩家不存在")
	ErrCannotBuild    = errx.NewBiz(CodeCannotBuild, "无法建造")
	ErrMapFormat      = errx.NewBiz(CodeMapFormat, "地图格式错误")
	// ErrNotInitialized 是契约错误：execution 在 Init 之前被 Tick。
	ErrNotInitialized = errx.ErrContractViolation.WithData("contract", "init before tick")
)

// MustInitialized 在 execution 未绑定 Game 时直接 panic。
// 未初始化就 tick 说明调度契约被破坏，不能吞掉。
func MustInitialized(g *Game, exec string) {
	if g == nil {
		errx.Panic(ErrNotInitialized.WithData("exec", exec))
	}
}
