package execution

import (
	"testing"

	"FrontierSim/internal/game"
)

func TestShipExecution_沿水路绕过岛屿抵达(t *testing.T) {
	m := asciiMap(t,
		"~~~~~",
		"~...~",
		"~~~~~",
	)
	g, s := newGame(t, m, testConfig())
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	ship, err := g.BuildUnit(a, game.UnitWarship, m.Ref(0, 1))
	if err != nil {
		t.Fatalf("build ship: %v", err)
	}
	dst := m.Ref(4, 1)
	e := NewShipExecution(ship.ID(), dst)
	s.Add(e)

	prev := ship.Tile()
	for i := 0; i < 20 && (i == 0 || e.IsActive()); i++ {
		s.Tick()
		cur := ship.Tile()
		if !m.IsWater(cur) {
			t.Fatalf("tick %d: ship on land (%d,%d)", i, m.X(cur), m.Y(cur))
		}
		if cur != prev && m.ManhattanDist(prev, cur) != 1 {
			t.Fatalf("tick %d: jumped from %d to %d", i, prev, cur)
		}
		prev = cur
	}
	if !e.Arrived() || e.IsActive() || ship.Tile() != dst {
		t.Fatalf("arrived=%v active=%v tile=%d", e.Arrived(), e.IsActive(), ship.Tile())
	}
}

func TestShipExecution_目的地不是水域直接结束(t *testing.T) {
	m := asciiMap(t, "~~.~~")
	g, _ := newGame(t, m, testConfig())
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	ship, _ := g.BuildUnit(a, game.UnitTransportShip, m.Ref(0, 0))

	e := NewShipExecution(ship.ID(), m.Ref(2, 0))
	e.Init(g, 0)
	if e.IsActive() {
		t.Fatalf("land destination must be rejected")
	}
}

func TestShipExecution_水域不连通时放弃(t *testing.T) {
	m := asciiMap(t, "~~.~~")
	g, _ := newGame(t, m, testConfig())
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	ship, _ := g.BuildUnit(a, game.UnitWarship, m.Ref(0, 0))

	e := NewShipExecution(ship.ID(), m.Ref(4, 0))
	e.Init(g, 0)
	for i := 0; i < 50 && e.IsActive(); i++ {
		e.Tick(uint32(i))
	}
	if e.IsActive() || e.Arrived() || ship.Tile() != m.Ref(0, 0) {
		t.Fatalf("active=%v arrived=%v tile=%d", e.IsActive(), e.Arrived(), ship.Tile())
	}
}

func TestShipExecution_船被删除后退出(t *testing.T) {
	m := asciiMap(t, "~~~~~")
	g, _ := newGame(t, m, testConfig())
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	ship, _ := g.BuildUnit(a, game.UnitWarship, m.Ref(0, 0))

	e := NewShipExecution(ship.ID(), m.Ref(4, 0))
	e.Init(g, 0)
	g.DeleteUnit(ship)
	e.Tick(1)
	if e.IsActive() {
		t.Fatalf("execution should stop once the ship is gone")
	}

	unknown := NewShipExecution(999, m.Ref(4, 0))
	unknown.Init(g, 0)
	if unknown.IsActive() {
		t.Fatalf("unknown unit must be rejected")
	}
}
