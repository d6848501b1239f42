package execution

import (
	"testing"

	"FrontierSim/internal/game"
	"FrontierSim/internal/scheduler"
)

func TestScenario_孤岛上的bot一百个tick不进攻且资源单调增长(t *testing.T) {
	m := asciiMap(t,
		"~~~~~~~~~",
		"~~~...~~~",
		"~~.....~~",
		"~~.....~~",
		"~~.....~~",
		"~~~...~~~",
		"~~~~~~~~~",
	)
	g, s := newGame(t, m, testConfig())
	s.Add(NewSpawnExecution(game.PlayerInfo{Name: "lonely", Type: game.PlayerBot}, m.Ref(4, 3)))
	s.Tick()

	p, ok := g.PlayerByName("lonely")
	if !ok {
		t.Fatalf("bot not spawned")
	}
	if p.NumTilesOwned() != 21 {
		t.Fatalf("tiles = %d, want whole island", p.NumTilesOwned())
	}

	troops, gold := p.Troops(), p.Gold()
	for i := 0; i < 100; i++ {
		s.Tick()
		if p.Troops() <= troops || p.Gold() <= gold {
			t.Fatalf("tick %d: troops %d->%d gold %d->%d", g.Ticks(), troops, p.Troops(), gold, p.Gold())
		}
		troops, gold = p.Troops(), p.Gold()
	}

	bot, ok := findExec[*BotExecution](s)
	if !ok || !bot.IsActive() {
		t.Fatalf("bot execution should remain active")
	}
	if p.AttacksLaunched() != 0 {
		t.Fatalf("attacks = %d, want 0", p.AttacksLaunched())
	}
}

// ownership 复制整张地图的归属。
func ownership(m *game.GameMap) []game.SmallID {
	out := make([]game.SmallID, m.NumTiles())
	for i := range out {
		out[i] = m.OwnerID(game.TileRef(i))
	}
	return out
}

func runBots(t *testing.T, ticks int) ([][]game.SmallID, int) {
	t.Helper()
	cfg := testConfig()
	cfg.Seed = 20240601
	cfg.NumSpawnPhaseTurns = 3
	g := game.NewGame(cfg, game.FilledMap(40, 30, game.TerrainLand), nil)
	s := scheduler.New(g, nil)
	m := g.Map()
	spawns := [][2]int{{5, 5}, {34, 5}, {5, 24}, {34, 24}}
	for i, sp := range spawns {
		info := game.PlayerInfo{Name: string(rune('a' + i)), Type: game.PlayerBot}
		s.Add(NewSpawnExecution(info, m.Ref(sp[0], sp[1])))
	}
	var snaps [][]game.SmallID
	for i := 0; i < ticks; i++ {
		s.Tick()
		snaps = append(snaps, ownership(m))
	}
	attacks := 0
	for _, p := range g.Players() {
		attacks += p.AttacksLaunched()
	}
	return snaps, attacks
}

func TestDeterminism_相同种子两次运行归属逐tick一致(t *testing.T) {
	a, attacksA := runBots(t, 400)
	b, attacksB := runBots(t, 400)
	if attacksA == 0 {
		t.Fatalf("bots never attacked, scenario is too quiet to prove anything")
	}
	if attacksA != attacksB {
		t.Fatalf("attacks differ: %d vs %d", attacksA, attacksB)
	}
	for tick := range a {
		for i := range a[tick] {
			if a[tick][i] != b[tick][i] {
				t.Fatalf("tick %d tile %d: %d vs %d", tick, i, a[tick][i], b[tick][i])
			}
		}
	}
}
