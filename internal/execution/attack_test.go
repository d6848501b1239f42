package execution

import (
	"testing"

	"FrontierSim/internal/game"
)

func TestAttackExecution_逐格推进无主地后撤回余兵(t *testing.T) {
	cfg := testConfig()
	cfg.AttackTileCost = 20
	g, _ := newGame(t, game.FilledMap(10, 1, game.TerrainLand), cfg)
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	g.Conquer(a, g.Map().Ref(0, 0))
	a.AddTroops(1000)

	e := NewAttackExecution(a.SmallID(), game.TerraNulliusID, 1000, nil)
	e.Init(g, 0)
	if a.Troops() != 0 || a.AttacksLaunched() != 1 {
		t.Fatalf("troops=%d launched=%d", a.Troops(), a.AttacksLaunched())
	}
	for i := 0; i < 20 && e.IsActive(); i++ {
		e.Tick(uint32(i))
	}
	if e.IsActive() {
		t.Fatalf("attack should end when nothing is left")
	}
	if a.NumTilesOwned() != 10 {
		t.Fatalf("tiles = %d, want 10", a.NumTilesOwned())
	}
	if a.Troops() != 1000-9*20 {
		t.Fatalf("troops = %d, want %d", a.Troops(), 1000-9*20)
	}
	if len(a.OutgoingAttacks()) != 0 {
		t.Fatalf("attack record not removed")
	}
}

func TestAttackExecution_兵力不足时撤退(t *testing.T) {
	cfg := testConfig()
	cfg.AttackTileCost = 100
	g, _ := newGame(t, game.FilledMap(10, 1, game.TerrainLand), cfg)
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	g.Conquer(a, g.Map().Ref(0, 0))
	a.AddTroops(250)

	e := NewAttackExecution(a.SmallID(), game.TerraNulliusID, 250, nil)
	e.Init(g, 0)
	for i := 0; i < 10 && e.IsActive(); i++ {
		e.Tick(uint32(i))
	}
	if a.NumTilesOwned() != 3 || a.Troops() != 50 {
		t.Fatalf("tiles=%d troops=%d", a.NumTilesOwned(), a.Troops())
	}
}

func TestAttackExecution_不能进攻盟友(t *testing.T) {
	g, _ := newGame(t, game.FilledMap(4, 1, game.TerrainLand), testConfig())
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	b := g.AddPlayer(game.PlayerInfo{Name: "b"})
	g.Conquer(a, 0)
	g.Conquer(b, 1)
	a.AddTroops(100)
	g.CreateAlliance(a, b)

	e := NewAttackExecution(a.SmallID(), b.SmallID(), 100, nil)
	e.Init(g, 0)
	if e.IsActive() || a.Troops() != 100 {
		t.Fatalf("attack on ally should be rejected")
	}
}

func TestAttackExecution_吞并玩家(t *testing.T) {
	cfg := testConfig()
	cfg.AttackTileCost = 1
	g, _ := newGame(t, game.FilledMap(4, 1, game.TerrainLand), cfg)
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	b := g.AddPlayer(game.PlayerInfo{Name: "b"})
	g.Conquer(a, 0)
	g.Conquer(b, 1)
	b.AddGold(70)
	a.AddTroops(500)

	e := NewAttackExecution(a.SmallID(), b.SmallID(), 500, nil)
	e.Init(g, 0)
	e.Tick(0)
	if b.IsAlive() || b.ConqueredBy() != a.SmallID() || a.Gold() != 70 {
		t.Fatalf("alive=%v by=%d gold=%d", b.IsAlive(), b.ConqueredBy(), a.Gold())
	}
	if b.Relation(a) >= 0 {
		t.Fatalf("target relation should drop")
	}
}
