package execution

import (
	"FrontierSim/internal/game"

	"go.uber.org/zap"
)

// historyMargin 是历史缓冲在最远车厢之外多留的格数。
const historyMargin = 4

// TrainExecution 让一列火车沿车站路径逐段行驶。
// 车头每 tick 前进固定步长；车厢按固定间隔取车头走过的历史格子，不单独寻路。
type TrainExecution struct {
	g      *game.Game
	src    *game.Station
	dst    *game.Station
	owner  *game.Player
	active bool

	stations []*game.Station
	leg      int
	route    []game.TileRef
	pos      int

	engine  *game.Unit
	cars    []*game.Unit
	history []game.TileRef
	histCap int
	spacing int
	speed   int
	stops   int
}

func NewTrainExecution(src, dst *game.Station) *TrainExecution {
	return &TrainExecution{src: src, dst: dst, active: true}
}

func (e *TrainExecution) Init(g *game.Game, _ uint32) {
	e.g = g
	log := g.Logger().With(zap.String("exec", "train"))
	if !e.src.IsActive() || !e.dst.IsActive() {
		e.active = false
		return
	}
	e.owner = e.src.Owner()
	e.stations = g.RailNetwork().FindStationsPath(e.src, e.dst)
	if len(e.stations) < 2 {
		log.Warn("train: stations not connected",
			zap.Uint32("from", e.src.Unit().ID()), zap.Uint32("to", e.dst.Unit().ID()))
		e.active = false
		return
	}

	cfg := g.Config()
	e.speed = max(cfg.TrainSpeed, 1)
	e.spacing = max(cfg.TrainCarSpacing, 1)
	e.histCap = cfg.TrainCars*e.spacing + 2*e.speed + historyMargin

	engine, err := g.BuildTrainUnit(e.owner, e.src.Tile(), game.TrainEngine, false)
	if err != nil {
		log.Warn("train: engine rejected", zap.Error(err))
		e.active = false
		return
	}
	e.engine = engine
	for i := 0; i < cfg.TrainCars; i++ {
		car, err := g.BuildTrainUnit(e.owner, e.src.Tile(), game.TrainCarriage, true)
		if err != nil {
			log.Warn("train: carriage rejected", zap.Error(err))
			break
		}
		e.cars = append(e.cars, car)
	}
	e.history = append(e.history, e.src.Tile())
	if !e.startLeg(0) {
		e.cancel()
	}
}

func (e *TrainExecution) Tick(_ uint32) {
	game.MustInitialized(e.g, "train")
	if !e.active {
		return
	}
	if !e.src.IsActive() || !e.dst.IsActive() || !e.stations[e.leg+1].IsActive() {
		e.cancel()
		return
	}

	remaining := len(e.route) - 1 - e.pos
	step := e.speed
	if remaining < 2*e.speed {
		step = remaining
	}
	if step > 0 {
		e.history = append(e.history, e.route[e.pos+1:e.pos+1+step]...)
		if over := len(e.history) - e.histCap; over > 0 {
			e.history = append(e.history[:0], e.history[over:]...)
		}
		e.pos += step
	}
	e.moveUnits()

	if e.pos < len(e.route)-1 {
		return
	}
	e.stationReached(e.stations[e.leg+1])
}

func (e *TrainExecution) IsActive() bool               { return e.active }
func (e *TrainExecution) ActiveDuringSpawnPhase() bool { return false }

// Engine 返回车头；初始化前为 nil。
func (e *TrainExecution) Engine() *game.Unit { return e.engine }
func (e *TrainExecution) Cars() []*game.Unit { return e.cars }

// Stops 返回已经停靠过的车站数。
func (e *TrainExecution) Stops() int { return e.stops }

func (e *TrainExecution) startLeg(leg int) bool {
	from, to := e.stations[leg], e.stations[leg+1]
	rr, ok := from.RailroadTo(to)
	if !ok {
		return false
	}
	e.leg = leg
	e.route = rr.TilesFrom(from)
	e.pos = 0
	return len(e.route) > 0
}

func (e *TrainExecution) moveUnits() {
	e.g.MoveUnit(e.engine, e.route[e.pos])
	last := len(e.history) - 1
	for i, car := range e.cars {
		idx := last - (i+1)*e.spacing
		if idx < 0 {
			continue
		}
		e.g.MoveUnit(car, e.history[idx])
	}
}

func (e *TrainExecution) stationReached(s *game.Station) {
	e.stops++
	onTrainStop(e.g, s, e.owner)
	if e.leg+1 >= len(e.stations)-1 {
		e.finish()
		return
	}
	if !e.startLeg(e.leg + 1) {
		e.cancel()
	}
}

func (e *TrainExecution) finish() {
	for _, car := range e.cars {
		car.SetLoaded(false)
	}
	e.deleteUnits()
	e.active = false
}

func (e *TrainExecution) cancel() {
	e.deleteUnits()
	e.active = false
}

func (e *TrainExecution) deleteUnits() {
	if e.engine != nil {
		e.g.DeleteUnit(e.engine)
	}
	for _, car := range e.cars {
		e.g.DeleteUnit(car)
	}
}
