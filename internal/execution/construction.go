package execution

import (
	"FrontierSim/internal/game"

	"go.uber.org/zap"
)

// ConstructionExecution 建造一个建筑；城市、港口、工厂建成后挂上车站。
type ConstructionExecution struct {
	g        *game.Game
	env      *Env
	playerID game.SmallID
	unitType game.UnitType
	tile     game.TileRef
	unit     *game.Unit
	active   bool
}

func NewConstructionExecution(env *Env, owner game.SmallID, typ game.UnitType, tile game.TileRef) *ConstructionExecution {
	return &ConstructionExecution{env: env, playerID: owner, unitType: typ, tile: tile, active: true}
}

func (e *ConstructionExecution) Init(g *game.Game, _ uint32) { e.g = g }

func (e *ConstructionExecution) Tick(_ uint32) {
	game.MustInitialized(e.g, "construction")
	e.active = false
	log := e.g.Logger().With(zap.String("exec", "construction"), zap.String("unit", e.unitType.String()))

	p, ok := e.g.Player(e.playerID)
	if !ok {
		log.Warn("construction: player not found", zap.Uint16("player", uint16(e.playerID)))
		return
	}
	u, err := e.g.BuildUnit(p, e.unitType, e.tile)
	if err != nil {
		log.Warn("construction: build rejected", zap.Error(err))
		return
	}
	e.unit = u
	if e.unitType.IsStationType() && e.env != nil {
		e.g.AddExecution(NewStationExecution(e.env, u))
	}
}

// Unit 返回建成的单位；建造失败时为 nil。
func (e *ConstructionExecution) Unit() *game.Unit { return e.unit }

func (e *ConstructionExecution) IsActive() bool               { return e.active }
func (e *ConstructionExecution) ActiveDuringSpawnPhase() bool { return false }
