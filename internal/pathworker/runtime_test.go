package pathworker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"FrontierSim/internal/game"
	"FrontierSim/internal/pathfind"
	"FrontierSim/internal/shared/simconfig"
	"FrontierSim/modules/kit/errx"
	"FrontierSim/modules/kit/logx"
)

const testMap = `
~~~~~~~~
~......~
~......~
~~~~~~~~
~~~..~~~
~~~..~~~
`

func newRuntime(t *testing.T) (*Runtime, *game.GameMap) {
	t.Helper()
	m, err := game.ParseASCIIMap(strings.NewReader(testMap))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r, err := NewRuntime(m, game.DefaultConfig(), simconfig.PathWorkerConfig{}, logx.Nop())
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	t.Cleanup(r.Shutdown)
	return r, m
}

// assertWalk 检查端点与步长；orth 为 true 时要求四邻接，否则允许斜走一格。
func assertWalk(t *testing.T, m *game.GameMap, path []game.TileRef, from, to game.TileRef, orth bool) {
	t.Helper()
	if len(path) == 0 || path[0] != from || path[len(path)-1] != to {
		t.Fatalf("端点错误: %v", path)
	}
	for i := 1; i < len(path); i++ {
		dx := abs(m.X(path[i]) - m.X(path[i-1]))
		dy := abs(m.Y(path[i]) - m.Y(path[i-1]))
		ok := max(dx, dy) <= 1
		if orth {
			ok = dx+dy == 1
		}
		if !ok {
			t.Fatalf("第 %d 步不相邻: %v -> %v", i, path[i-1], path[i])
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestFindPath_陆路(t *testing.T) {
	r, m := newRuntime(t)
	from, to := m.Ref(1, 1), m.Ref(6, 2)
	resp, err := r.FindPath(context.Background(), ModeLand, from, to)
	if err != nil {
		t.Fatalf("FindPath err=%v", err)
	}
	if resp.Status != pathfind.Completed || resp.CorrelationID == "" || resp.Attempts < 1 {
		t.Fatalf("resp = %+v", resp)
	}
	assertWalk(t, m, resp.Path, from, to, true)
}

func TestFindPath_水路(t *testing.T) {
	r, m := newRuntime(t)
	from, to := m.Ref(0, 0), m.Ref(7, 5)
	resp, err := r.FindPath(context.Background(), ModeWater, from, to)
	if err != nil {
		t.Fatalf("FindPath err=%v", err)
	}
	for _, tile := range resp.Path {
		if !m.IsWater(tile) {
			t.Fatalf("水路经过陆地 %v", tile)
		}
	}
	assertWalk(t, m, resp.Path, from, to, true)
}

func TestFindPath_铁路分层寻路保留端点(t *testing.T) {
	r, m := newRuntime(t)
	from, to := m.Ref(1, 1), m.Ref(4, 5)
	resp, err := r.FindPath(context.Background(), ModeRail, from, to)
	if err != nil {
		t.Fatalf("FindPath err=%v", err)
	}
	assertWalk(t, m, resp.Path, from, to, false)
}

func TestFindPath_参数错误(t *testing.T) {
	r, m := newRuntime(t)
	if _, err := r.FindPath(context.Background(), Mode("air"), m.Ref(1, 1), m.Ref(2, 1)); !errors.Is(err, errx.ErrReqParamERR) {
		t.Fatalf("err = %v", err)
	}
	_, err := r.FindPath(context.Background(), ModeLand, m.Ref(1, 1), game.TileRef(m.NumTiles()+5))
	if !errors.Is(err, game.ErrInvalidTile) {
		t.Fatalf("err = %v", err)
	}
}

func TestFindPath_陆路不通(t *testing.T) {
	m, err := game.ParseASCIIMap(strings.NewReader("..~~~~..\n..~~~~..\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r, err := NewRuntime(m, game.DefaultConfig(), simconfig.PathWorkerConfig{}, logx.Nop())
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	defer r.Shutdown()

	resp, err := r.FindPath(context.Background(), ModeLand, m.Ref(0, 0), m.Ref(7, 1))
	if !errors.Is(err, pathfind.ErrPathNotFound) {
		t.Fatalf("err = %v", err)
	}
	if resp == nil || resp.Status != pathfind.PathNotFound || resp.Path != nil {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestFindPath_并发请求按关联id配对(t *testing.T) {
	r, m := newRuntime(t)
	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			to := m.Ref(2+i%5, 1+i%2)
			resp, err := r.FindPath(context.Background(), ModeLand, m.Ref(1, 1), to)
			if err != nil {
				t.Errorf("FindPath err=%v", err)
				return
			}
			if resp.Path[len(resp.Path)-1] != to {
				t.Errorf("请求 %d 拿到别人的结果", i)
			}
			if _, dup := seen.LoadOrStore(resp.CorrelationID, i); dup {
				t.Errorf("correlation id 重复")
			}
		}(i)
	}
	wg.Wait()
}

func TestFindPath_未运行(t *testing.T) {
	var r *Runtime
	if _, err := r.FindPath(context.Background(), ModeLand, 0, 1); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("err = %v", err)
	}
}
