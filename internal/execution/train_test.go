package execution

import (
	"testing"

	"FrontierSim/internal/game"
	"FrontierSim/modules/kit/logx"
)

// buildLine 在一行地图两端建城并直接铺好铁路。
func buildLine(t *testing.T, g *game.Game, owner *game.Player, width int) (*game.Station, *game.Station) {
	t.Helper()
	m := g.Map()
	u1, err := g.BuildUnit(owner, game.UnitCity, m.Ref(0, 0))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	u2, err := g.BuildUnit(owner, game.UnitCity, m.Ref(width-1, 0))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	net := g.RailNetwork()
	s1, s2 := net.AddStation(u1), net.AddStation(u2)
	path := make([]game.TileRef, width)
	for x := range path {
		path[x] = m.Ref(x, 0)
	}
	net.Connect(game.NewRailroad(s1, s2, computeRailTiles(m, logx.Nop(), path)))
	return s1, s2
}

func TestTrainExecution_按步长行驶并在终点结算(t *testing.T) {
	cfg := testConfig()
	cfg.TrainSpeed = 2
	cfg.TrainCars = 2
	cfg.TrainCarSpacing = 1
	cfg.TrainTradeGold = 1000
	g, s := newGame(t, game.FilledMap(10, 1, game.TerrainLand), cfg)
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	fill(g, a, 0, 0, 9, 0)
	src, dst := buildLine(t, g, a, 10)
	g.AdvanceTick()

	train := NewTrainExecution(src, dst)
	s.Add(train)
	s.Tick()
	m := g.Map()
	if train.Engine().Tile() != m.Ref(2, 0) {
		t.Fatalf("engine at x=%d, want 2", m.X(train.Engine().Tile()))
	}
	if cars := train.Cars(); cars[0].Tile() != m.Ref(1, 0) || cars[1].Tile() != m.Ref(0, 0) {
		t.Fatalf("cars at x=%d,%d", m.X(cars[0].Tile()), m.X(cars[1].Tile()))
	}

	// 2→4→6，剩余 3 格不足两倍步长，一次走完到站。
	for i := 0; i < 3; i++ {
		s.Tick()
	}
	if train.IsActive() {
		t.Fatalf("train should have arrived")
	}
	if train.Stops() != 1 {
		t.Fatalf("stops = %d", train.Stops())
	}
	if a.Gold() != 500 {
		t.Fatalf("gold = %d, want 500", a.Gold())
	}
	if len(g.Units(game.UnitTrain)) != 0 {
		t.Fatalf("train units not removed")
	}
}

func TestTrainExecution_车站失效时取消(t *testing.T) {
	g, s := newGame(t, game.FilledMap(30, 1, game.TerrainLand), testConfig())
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	fill(g, a, 0, 0, 29, 0)
	src, dst := buildLine(t, g, a, 30)
	g.AdvanceTick()

	train := NewTrainExecution(src, dst)
	s.Add(train)
	s.Tick()
	if !train.IsActive() {
		t.Fatalf("train should be en route")
	}
	g.DeleteUnit(dst.Unit())
	s.Tick()
	if train.IsActive() || len(g.Units(game.UnitTrain)) != 0 {
		t.Fatalf("train should be cancelled and removed")
	}
}

func TestTrainExecution_多段路线逐站停靠(t *testing.T) {
	cfg := testConfig()
	cfg.TrainTradeGold = 100
	g, s := newGame(t, game.FilledMap(9, 1, game.TerrainLand), cfg)
	m := g.Map()
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	b := g.AddPlayer(game.PlayerInfo{Name: "b"})
	fill(g, a, 0, 0, 3, 0)
	fill(g, b, 4, 0, 8, 0)
	net := g.RailNetwork()
	var st []*game.Station
	for _, x := range []int{0, 4, 8} {
		owner := a
		if x >= 4 {
			owner = b
		}
		u, err := g.BuildUnit(owner, game.UnitCity, m.Ref(x, 0))
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		st = append(st, net.AddStation(u))
	}
	for i := 0; i+1 < len(st); i++ {
		var path []game.TileRef
		for x := m.X(st[i].Tile()); x <= m.X(st[i+1].Tile()); x++ {
			path = append(path, m.Ref(x, 0))
		}
		net.Connect(game.NewRailroad(st[i], st[i+1], computeRailTiles(m, logx.Nop(), path)))
	}
	g.AdvanceTick()

	train := NewTrainExecution(st[0], st[2])
	s.Add(train)
	for i := 0; i < 20 && train.IsActive(); i++ {
		s.Tick()
	}
	if train.IsActive() || train.Stops() != 2 {
		t.Fatalf("active=%v stops=%d", train.IsActive(), train.Stops())
	}
	// 两次跨玩家停靠：a 作为车主每次得 100，b 作为站主每次得 100。
	if a.Gold() != 200 || b.Gold() != 200 {
		t.Fatalf("gold a=%d b=%d", a.Gold(), b.Gold())
	}
}
