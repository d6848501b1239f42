package execution

import (
	"testing"

	"FrontierSim/internal/game"
)

func TestSurroundedBySamePlayer_被单一玩家包围返回该玩家(t *testing.T) {
	g, _ := newGame(t, game.FilledMap(5, 5, game.TerrainLand), testConfig())
	m := g.Map()
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	b := g.AddPlayer(game.PlayerInfo{Name: "b"})
	fill(g, b, 0, 0, 4, 4)
	g.Conquer(a, m.Ref(2, 2))

	clusters := calculateClusters(m, a)
	if len(clusters) != 1 || len(clusters[0]) != 1 {
		t.Fatalf("clusters = %v", clusters)
	}
	enemy, ok := surroundedBySamePlayer(g, a, clusters[0])
	if !ok || enemy != b {
		t.Fatalf("surrounded = (%v, %v), want b", enemy, ok)
	}
}

func TestSurroundedBySamePlayer_碰到地图边缘不回收(t *testing.T) {
	g, _ := newGame(t, game.FilledMap(5, 5, game.TerrainLand), testConfig())
	m := g.Map()
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	b := g.AddPlayer(game.PlayerInfo{Name: "b"})
	fill(g, b, 0, 0, 4, 4)
	g.Conquer(a, m.Ref(0, 2))

	if _, ok := surroundedBySamePlayer(g, a, []game.TileRef{m.Ref(0, 2)}); ok {
		t.Fatalf("edge cluster must not be surrounded")
	}
}

func TestSurroundedBySamePlayer_邻接两个玩家不回收(t *testing.T) {
	g, _ := newGame(t, game.FilledMap(5, 5, game.TerrainLand), testConfig())
	m := g.Map()
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	b := g.AddPlayer(game.PlayerInfo{Name: "b"})
	c := g.AddPlayer(game.PlayerInfo{Name: "c"})
	fill(g, b, 0, 0, 4, 4)
	fill(g, c, 0, 3, 4, 4)
	g.Conquer(a, m.Ref(2, 2))

	if _, ok := surroundedBySamePlayer(g, a, []game.TileRef{m.Ref(2, 2)}); ok {
		t.Fatalf("two distinct neighbours must not count as surrounded")
	}
}

func TestCalculateClusters_八邻域连通且大簇在前(t *testing.T) {
	g, _ := newGame(t, game.FilledMap(7, 7, game.TerrainLand), testConfig())
	m := g.Map()
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	g.Conquer(a, m.Ref(1, 1))
	g.Conquer(a, m.Ref(2, 2)) // 与 (1,1) 斜向相连
	g.Conquer(a, m.Ref(5, 5))

	clusters := calculateClusters(m, a)
	if len(clusters) != 2 {
		t.Fatalf("clusters = %d, want 2", len(clusters))
	}
	if len(clusters[0]) != 2 || len(clusters[1]) != 1 {
		t.Fatalf("sizes = %d,%d", len(clusters[0]), len(clusters[1]))
	}
}

func TestCapturingPlayer_进攻兵力优先于多数邻居(t *testing.T) {
	g, _ := newGame(t, game.FilledMap(5, 5, game.TerrainLand), testConfig())
	m := g.Map()
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	b := g.AddPlayer(game.PlayerInfo{Name: "b"})
	c := g.AddPlayer(game.PlayerInfo{Name: "c"})
	fill(g, c, 0, 0, 4, 4)
	g.Conquer(b, m.Ref(2, 1))
	g.Conquer(a, m.Ref(2, 2))
	cluster := []game.TileRef{m.Ref(2, 2)}

	if got := capturingPlayer(g, a, cluster); got != c {
		t.Fatalf("mode captor = %v, want c", got.Name())
	}
	g.CreateAttack(b, a, 100, nil)
	if got := capturingPlayer(g, a, cluster); got != b {
		t.Fatalf("attack captor = %v, want b", got.Name())
	}
}

func TestRemoveCluster_整体吞并与过期跳过(t *testing.T) {
	g, _ := newGame(t, game.FilledMap(5, 5, game.TerrainLand), testConfig())
	m := g.Map()
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	b := g.AddPlayer(game.PlayerInfo{Name: "b"})
	fill(g, b, 0, 0, 4, 4)
	center := m.Ref(2, 2)
	g.Conquer(a, center)
	a.AddGold(300)

	cluster := []game.TileRef{center}
	removeCluster(g, a, cluster)
	if a.IsAlive() || g.Owner(center) != b {
		t.Fatalf("cluster not captured")
	}
	if a.ConqueredBy() != b.SmallID() || b.Gold() != 300 {
		t.Fatalf("conquerPlayer not applied: by=%d gold=%d", a.ConqueredBy(), b.Gold())
	}

	// 归属已变，再次回收必须直接跳过。
	removeCluster(g, a, cluster)
	if g.Owner(center) != b || b.NumTilesOwned() != 25 {
		t.Fatalf("stale removal applied")
	}
}

func TestPlayerExecution_周期检查回收被包围的领土(t *testing.T) {
	cfg := testConfig()
	cfg.ClusterCheckInterval = 1
	g, _ := newGame(t, game.FilledMap(5, 5, game.TerrainLand), cfg)
	m := g.Map()
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	b := g.AddPlayer(game.PlayerInfo{Name: "b"})
	fill(g, b, 0, 0, 4, 4)

	e := NewPlayerExecution(a.SmallID())
	e.Init(g, 0)
	for g.Ticks() < 3 {
		g.AdvanceTick()
	}
	g.Conquer(a, m.Ref(2, 2))

	e.Tick(3)
	if a.IsAlive() {
		t.Fatalf("surrounded player should be absorbed")
	}
	if !e.IsActive() {
		t.Fatalf("execution retires on the following tick")
	}
	e.Tick(4)
	if e.IsActive() {
		t.Fatalf("execution should be inactive once the player owns nothing")
	}
}

func TestCapturingPlayer_周边多为无主地时不回收(t *testing.T) {
	g, _ := newGame(t, game.FilledMap(9, 9, game.TerrainLand), testConfig())
	m := g.Map()
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	b := g.AddPlayer(game.PlayerInfo{Name: "b"})
	fill(g, a, 0, 0, 2, 2)
	enclave := m.Ref(5, 5)
	g.Conquer(a, enclave)
	g.Conquer(b, m.Ref(5, 4))
	fill(g, b, 7, 7, 8, 8)
	cluster := []game.TileRef{enclave}

	if !isSurrounded(g, a, cluster) {
		t.Fatalf("enclave away from edge should pass the bounding box test")
	}
	if got := capturingPlayer(g, a, cluster); got != nil {
		t.Fatalf("captor = %v, want nil (3 neutral vs 1 b)", got.Name())
	}
	removeCluster(g, a, cluster)
	if g.Owner(enclave) != a || a.NumTilesOwned() != 10 {
		t.Fatalf("enclave changed hands: owner=%v tiles=%d", g.Owner(enclave), a.NumTilesOwned())
	}

	// 敌方对 a 有进攻时仍按进攻优先。
	g.CreateAttack(b, a, 50, nil)
	if got := capturingPlayer(g, a, cluster); got != b {
		t.Fatalf("attacking neighbour should win over the neutral mode")
	}
}

func TestCapturingPlayer_众数为盟友时不回收(t *testing.T) {
	g, _ := newGame(t, game.FilledMap(5, 5, game.TerrainLand), testConfig())
	m := g.Map()
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	b := g.AddPlayer(game.PlayerInfo{Name: "b"})
	c := g.AddPlayer(game.PlayerInfo{Name: "c"})
	fill(g, c, 0, 0, 4, 4)
	g.Conquer(b, m.Ref(2, 1))
	g.Conquer(a, m.Ref(2, 2))
	g.CreateAlliance(a, c)
	cluster := []game.TileRef{m.Ref(2, 2)}

	if got := capturingPlayer(g, a, cluster); got != nil {
		t.Fatalf("captor = %v, want nil when the mode is an ally", got.Name())
	}

	// 盟友的进攻不参与优先级比较。
	g.CreateAttack(c, a, 500, nil)
	if got := capturingPlayer(g, a, cluster); got != nil {
		t.Fatalf("allied attack must be ignored, got %v", got.Name())
	}
	g.CreateAttack(b, a, 10, nil)
	if got := capturingPlayer(g, a, cluster); got != b {
		t.Fatalf("hostile attacker b should win")
	}
}

func TestCapturingPlayer_众数平局取小id(t *testing.T) {
	g, _ := newGame(t, game.FilledMap(5, 5, game.TerrainLand), testConfig())
	m := g.Map()
	a := g.AddPlayer(game.PlayerInfo{Name: "a"})
	b := g.AddPlayer(game.PlayerInfo{Name: "b"})
	c := g.AddPlayer(game.PlayerInfo{Name: "c"})
	g.Conquer(a, m.Ref(2, 2))
	g.Conquer(c, m.Ref(2, 1))
	g.Conquer(c, m.Ref(1, 2))
	g.Conquer(b, m.Ref(3, 2))
	g.Conquer(b, m.Ref(2, 3))

	if got := capturingPlayer(g, a, []game.TileRef{m.Ref(2, 2)}); got != b {
		t.Fatalf("tie should go to the lower id b, got %v", got)
	}
}
