package execution

import (
	"strings"
	"testing"

	"FrontierSim/internal/game"
	"FrontierSim/internal/scheduler"
)

func testConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.NumSpawnPhaseTurns = 0
	return cfg
}

func newGame(t *testing.T, m *game.GameMap, cfg game.Config) (*game.Game, *scheduler.Scheduler) {
	t.Helper()
	g := game.NewGame(cfg, m, nil)
	return g, scheduler.New(g, nil)
}

func asciiMap(t *testing.T, rows ...string) *game.GameMap {
	t.Helper()
	m, err := game.ParseASCIIMap(strings.NewReader(strings.Join(rows, "\n")))
	if err != nil {
		t.Fatalf("parse map: %v", err)
	}
	return m
}

// fill 把矩形区域全部划给 p。
func fill(g *game.Game, p *game.Player, x0, y0, x1, y1 int) {
	m := g.Map()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.Conquer(p, m.Ref(x, y))
		}
	}
}

func findExec[T game.Execution](s *scheduler.Scheduler) (T, bool) {
	for _, e := range s.Executions() {
		if v, ok := e.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
