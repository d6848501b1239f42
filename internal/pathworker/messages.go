package pathworker

import (
	"FrontierSim/internal/game"
	"FrontierSim/internal/pathfind"
)

// Mode 选择寻路用的图。
type Mode string

const (
	ModeWater Mode = "water"
	ModeLand  Mode = "land"
	// ModeRail 是铁路同款：粗地图分层寻路，偏好陆地。
	ModeRail Mode = "rail"
)

func (m Mode) Valid() bool {
	return m == ModeWater || m == ModeLand || m == ModeRail
}

// PathRequest 发往 worker actor；CorrelationID 由 Runtime 生成，原样带回。
type PathRequest struct {
	CorrelationID string
	Mode          Mode
	From          game.TileRef
	To            game.TileRef
}

type PathResponse struct {
	CorrelationID string
	Status        pathfind.Status
	Path          []game.TileRef
	// Attempts 是实际调用 Compute 的次数。
	Attempts int
	Err      error
}
