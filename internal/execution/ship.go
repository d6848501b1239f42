package execution

import (
	"FrontierSim/internal/game"
	"FrontierSim/internal/pathfind"

	"go.uber.org/zap"
)

// ShipExecution 每 tick 把一艘船沿水路推进一格，直到抵达目的地。
// 寻路结果由 Navigator 缓存，目的地不变时不会重算。
type ShipExecution struct {
	g      *game.Game
	unitID uint32
	dst    game.TileRef
	unit   *game.Unit
	nav    *pathfind.Navigator
	active bool

	arrived bool
}

func NewShipExecution(unitID uint32, dst game.TileRef) *ShipExecution {
	return &ShipExecution{unitID: unitID, dst: dst, active: true}
}

func (e *ShipExecution) Init(g *game.Game, _ uint32) {
	e.g = g
	u, ok := g.Unit(e.unitID)
	if !ok || !u.Type().IsShip() {
		g.Logger().Warn("ship: unit not found", zap.Uint32("unit", e.unitID))
		e.active = false
		return
	}
	if !g.Map().IsValidRef(e.dst) || !g.Map().IsWater(e.dst) {
		g.Logger().Warn("ship: destination is not water", zap.Uint32("unit", e.unitID), zap.Uint32("dst", uint32(e.dst)))
		e.active = false
		return
	}
	e.unit = u
	e.nav = pathfind.NewMapNavigator(pathfind.NewWaterAdapter(g.Map()), pathfind.OptionsFromConfig(g.Config()))
}

func (e *ShipExecution) Tick(ticks uint32) {
	game.MustInitialized(e.g, "ship")
	if !e.active {
		return
	}
	if !e.unit.IsActive() {
		e.active = false
		return
	}
	next, st := e.nav.NextTile(e.unit.Tile(), e.dst)
	switch st {
	case pathfind.NextTile:
		e.g.MoveUnit(e.unit, next)
	case pathfind.Completed:
		e.g.MoveUnit(e.unit, e.dst)
		e.arrived = true
		e.active = false
		e.g.Logger().Info("ship: arrived",
			zap.Uint32("unit", e.unitID),
			zap.String("owner", e.unit.Owner().Name()),
			zap.Uint32("tick", ticks))
	case pathfind.Pending:
	default:
		e.g.Logger().Warn("ship: no water route",
			zap.Uint32("unit", e.unitID),
			zap.Uint32("from", uint32(e.unit.Tile())),
			zap.Uint32("dst", uint32(e.dst)))
		e.active = false
	}
}

// Arrived 表示船已经停在目的地。
func (e *ShipExecution) Arrived() bool { return e.arrived }

func (e *ShipExecution) IsActive() bool               { return e.active }
func (e *ShipExecution) ActiveDuringSpawnPhase() bool { return false }
