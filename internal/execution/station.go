package execution

import (
	"slices"

	"FrontierSim/internal/game"

	"go.uber.org/zap"
)

// maxStationLinks 是新车站主动连接的近邻车站数量。
const maxStationLinks = 3

// StationExecution 把建筑注册为车站，连接附近车站，并周期性地发车。
type StationExecution struct {
	g       *game.Game
	env     *Env
	unit    *game.Unit
	station *game.Station
	active  bool
}

func NewStationExecution(env *Env, u *game.Unit) *StationExecution {
	return &StationExecution{env: env, unit: u, active: true}
}

func (e *StationExecution) Init(g *game.Game, _ uint32) {
	e.g = g
	if !e.unit.IsActive() {
		e.active = false
		return
	}
	net := g.RailNetwork()
	e.station = net.AddStation(e.unit)

	m := g.Map()
	var near []*game.Station
	for _, u := range g.NearbyUnits(e.unit.Tile(), g.Config().StationRange, game.UnitCity, game.UnitPort, game.UnitFactory) {
		if u == e.unit {
			continue
		}
		other, ok := net.StationOf(u)
		if !ok {
			continue
		}
		if other.Owner() != e.unit.Owner() && !other.Owner().CanTrade(e.unit.Owner()) {
			continue
		}
		near = append(near, other)
	}
	slices.SortStableFunc(near, func(a, b *game.Station) int {
		return m.ManhattanDist(a.Tile(), e.unit.Tile()) - m.ManhattanDist(b.Tile(), e.unit.Tile())
	})
	for _, other := range near[:min(len(near), maxStationLinks)] {
		g.AddExecution(NewRailroadExecution(e.env, e.station, other))
	}
}

func (e *StationExecution) Tick(ticks uint32) {
	game.MustInitialized(e.g, "station")
	if !e.active {
		return
	}
	if !e.unit.IsActive() {
		e.active = false
		return
	}
	interval := e.g.Config().TrainSpawnInterval
	if interval == 0 || (ticks+e.unit.ID())%interval != 0 || len(e.station.Railroads()) == 0 {
		return
	}

	net := e.g.RailNetwork()
	var reachable []*game.Station
	for _, s := range net.Stations() {
		if s == e.station || !s.IsActive() {
			continue
		}
		if len(net.FindStationsPath(e.station, s)) > 1 {
			reachable = append(reachable, s)
		}
	}
	if len(reachable) == 0 {
		return
	}
	dst := reachable[e.g.Rand().NextInt(0, len(reachable))]
	e.g.AddExecution(NewTrainExecution(e.station, dst))
	e.g.Logger().Debug("station: train dispatched",
		zap.Uint32("from", e.unit.ID()), zap.Uint32("to", dst.Unit().ID()))
}

func (e *StationExecution) Station() *game.Station { return e.station }

func (e *StationExecution) IsActive() bool               { return e.active }
func (e *StationExecution) ActiveDuringSpawnPhase() bool { return false }

// onTrainStop 结算一次停靠：同主人的车站收一半贸易金，跨玩家贸易双方各得全额。
func onTrainStop(g *game.Game, s *game.Station, trainOwner *game.Player) {
	gold := g.Config().TrainTradeGold
	owner := s.Owner()
	if owner == trainOwner {
		owner.AddGold(gold / 2)
		return
	}
	if !owner.CanTrade(trainOwner) {
		return
	}
	owner.AddGold(gold)
	trainOwner.AddGold(gold)
}
