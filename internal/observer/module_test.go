package observer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"FrontierSim/internal/game"
	"FrontierSim/internal/pathfind"
	"FrontierSim/internal/pathworker"
	"FrontierSim/internal/shared/security"
	"FrontierSim/internal/shared/transport"
	transporthttp "FrontierSim/internal/shared/transport/http"
	"FrontierSim/internal/shared/transport/ws"
	"FrontierSim/internal/sim"
	"FrontierSim/internal/stats/app/port"
	"FrontierSim/internal/stats/infra/persistence/memory"
	"FrontierSim/modules/kit/logx"
)

type fakePaths struct {
	calls int
	err   error
}

func (f *fakePaths) FindPath(_ context.Context, mode pathworker.Mode, from, to game.TileRef) (*pathworker.PathResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &pathworker.PathResponse{Status: pathfind.Completed, Path: []game.TileRef{from, to}, Attempts: 1}, nil
}

type fixture struct {
	sess  *sim.Session
	paths *fakePaths
	srv   *transporthttp.Server
	mod   *Module
}

func newFixture(t *testing.T, stats port.StatsRepository) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "observer-test")

	rules := game.DefaultConfig()
	rules.NumSpawnPhaseTurns = 0
	sess, err := sim.NewSession(sim.Options{
		GameID: 42,
		Rules:  rules,
		Map:    game.FilledMap(20, 10, game.TerrainLand),
		Bots:   []string{"north"},
	})
	if err != nil {
		t.Fatalf("NewSession err=%v", err)
	}
	sess.Step()

	f := &fixture{sess: sess, paths: &fakePaths{}}
	f.mod = New(sess, f.paths, stats, logx.Nop())
	f.srv = transporthttp.NewHttpServer(":0", nil, logx.Nop())
	f.srv.Register(f.mod)
	return f
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (f *fixture) do(t *testing.T, method, path, body, token string) envelope {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(w, req)
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: body=%s err=%v", method, path, w.Body.String(), err)
	}
	return env
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := security.Award("ops", security.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	return token
}

func TestHTTP_查询快照与玩家(t *testing.T) {
	f := newFixture(t, nil)

	env := f.do(t, http.MethodGet, "/api/state", "", "")
	var v sim.StateView
	if env.Code != transport.OK || json.Unmarshal(env.Data, &v) != nil {
		t.Fatalf("state env = %+v", env)
	}
	if v.GameID != 42 || v.Tick != 1 || len(v.Players) != 1 {
		t.Fatalf("view = %+v", v)
	}

	env = f.do(t, http.MethodGet, "/api/players/1", "", "")
	var p sim.PlayerView
	if env.Code != transport.OK || json.Unmarshal(env.Data, &p) != nil || p.Name != "north" {
		t.Fatalf("player env = %+v", env)
	}
	if env := f.do(t, http.MethodGet, "/api/players/9", "", ""); env.Code != transport.NotFound {
		t.Fatalf("未知玩家 code = %d", env.Code)
	}
	if env := f.do(t, http.MethodGet, "/api/players/abc", "", ""); env.Code != transport.InvalidParam {
		t.Fatalf("非法 id code = %d", env.Code)
	}
}

func TestHTTP_寻路(t *testing.T) {
	f := newFixture(t, nil)

	env := f.do(t, http.MethodGet, "/api/path?mode=land&from_x=1&from_y=1&to_x=3&to_y=2", "", "")
	var resp struct {
		Status string `json:"status"`
		Path   []struct {
			X int `json:"x"`
			Y int `json:"y"`
		} `json:"path"`
	}
	if env.Code != transport.OK || json.Unmarshal(env.Data, &resp) != nil {
		t.Fatalf("path env = %+v", env)
	}
	if resp.Status != "completed" || len(resp.Path) != 2 || resp.Path[1].X != 3 || resp.Path[1].Y != 2 {
		t.Fatalf("path = %+v", resp)
	}

	if env := f.do(t, http.MethodGet, "/api/path?mode=land&from_x=1&from_y=1&to_x=99&to_y=2", "", ""); env.Code != transport.InvalidParam {
		t.Fatalf("越界 code = %d", env.Code)
	}
	if env := f.do(t, http.MethodGet, "/api/path?from_x=1", "", ""); env.Code != transport.InvalidParam {
		t.Fatalf("缺 mode code = %d", env.Code)
	}
	if f.paths.calls != 1 {
		t.Fatalf("参数错误不应调用寻路, calls = %d", f.paths.calls)
	}

	f.paths.err = pathfind.ErrPathNotFound
	if env := f.do(t, http.MethodGet, "/api/path?mode=water&from_x=1&from_y=1&to_x=2&to_y=2", "", ""); env.Code != transport.NotFound {
		t.Fatalf("无路 code = %d", env.Code)
	}
}

func TestHTTP_统计(t *testing.T) {
	f := newFixture(t, nil)
	if env := f.do(t, http.MethodGet, "/api/stats", "", ""); env.Code != transport.Unavailable {
		t.Fatalf("未配置仓储 code = %d", env.Code)
	}

	f = newFixture(t, memory.NewStatsRepository())
	if env := f.do(t, http.MethodGet, "/api/stats", "", ""); env.Code != transport.NotFound {
		t.Fatalf("无统计 code = %d", env.Code)
	}
}

func TestHTTP_管理命令需要token并在下一tick生效(t *testing.T) {
	f := newFixture(t, nil)
	body := `{"name":"alice","x":15,"y":5}`

	req := httptest.NewRequest(http.MethodPost, "/admin/spawn", strings.NewReader(body))
	w := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("无 token status = %d", w.Code)
	}

	token := adminToken(t)
	env := f.do(t, http.MethodPost, "/admin/spawn", body, token)
	var ticket sim.Ticket
	if env.Code != transport.OK || json.Unmarshal(env.Data, &ticket) != nil {
		t.Fatalf("spawn env = %+v", env)
	}
	if ticket.Kind != "spawn" || ticket.AfterTick != 1 {
		t.Fatalf("ticket = %+v", ticket)
	}
	f.sess.Step()
	if _, ok := f.sess.Game().PlayerByName("alice"); !ok {
		t.Fatalf("alice 未出生")
	}

	if env := f.do(t, http.MethodPost, "/admin/spawn", `{"name":"bob","x":50,"y":5}`, token); env.Code != transport.InvalidParam {
		t.Fatalf("越界 code = %d", env.Code)
	}
	if env := f.do(t, http.MethodPost, "/admin/attack", `{"target":"north"}`, token); env.Code != transport.InvalidParam {
		t.Fatalf("缺 player code = %d", env.Code)
	}
	if env := f.do(t, http.MethodPost, "/admin/structure", `{"player":"alice","unit":"castle","x":1,"y":1}`, token); env.Code != transport.InvalidParam {
		t.Fatalf("未知建筑 code = %d", env.Code)
	}
	if env := f.do(t, http.MethodPost, "/admin/move", `{"player":"alice","unit":1,"x":3,"y":3}`, token); env.Code != transport.InvalidParam {
		t.Fatalf("陆地目的地 code = %d", env.Code)
	}
}

type wsConnT struct {
	t    *testing.T
	conn *websocket.Conn
	seq  int64
}

// call 发一条请求并跳过期间的 tick 推送，返回对应 seq 的响应。
func (c *wsConnT) call(name string, msg any) ws.RespBody {
	c.t.Helper()
	c.seq++
	if err := c.conn.WriteJSON(map[string]any{"seq": c.seq, "name": name, "msg": msg}); err != nil {
		c.t.Fatalf("write: %v", err)
	}
	for {
		var body ws.RespBody
		if err := c.conn.ReadJSON(&body); err != nil {
			c.t.Fatalf("read: %v", err)
		}
		if body.Name == name && body.Seq == c.seq {
			return body
		}
	}
}

func TestWS_推送快照与命令鉴权(t *testing.T) {
	f := newFixture(t, nil)
	router := ws.NewRouter(logx.Nop())
	f.mod.WsRegister(router)
	srv := httptest.NewServer(ws.NewServer(router, logx.Nop(), f.mod.OnOpen))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hs ws.RespBody
	if err := conn.ReadJSON(&hs); err != nil || hs.Name != ws.HandshakeMsg {
		t.Fatalf("handshake = %+v err=%v", hs, err)
	}
	var push struct {
		Name string        `json:"name"`
		Msg  sim.StateView `json:"msg"`
	}
	if err := conn.ReadJSON(&push); err != nil || push.Name != "sim.tick" || push.Msg.Tick != 1 {
		t.Fatalf("首个推送 = %+v err=%v", push, err)
	}

	c := &wsConnT{t: t, conn: conn}
	if resp := c.call("sim.state", nil); resp.Code != transport.OK {
		t.Fatalf("sim.state = %+v", resp)
	}
	if resp := c.call("sim.player", map[string]any{"id": 7}); resp.Code != transport.NotFound {
		t.Fatalf("sim.player = %+v", resp)
	}
	if resp := c.call("sim.path", map[string]any{"mode": "land", "from_x": 0, "from_y": 0, "to_x": 4, "to_y": 4}); resp.Code != transport.OK {
		t.Fatalf("sim.path = %+v", resp)
	}

	spawn := map[string]any{"name": "carol", "x": 15, "y": 5}
	if resp := c.call("admin.spawn", spawn); resp.Code != transport.Unauthorized {
		t.Fatalf("未鉴权 spawn = %+v", resp)
	}
	if resp := c.call("admin.auth", map[string]any{"token": "bad"}); resp.Code != transport.Unauthorized {
		t.Fatalf("坏 token = %+v", resp)
	}
	if resp := c.call("admin.auth", map[string]any{"token": adminToken(t)}); resp.Code != transport.OK {
		t.Fatalf("auth = %+v", resp)
	}
	if resp := c.call("admin.spawn", spawn); resp.Code != transport.OK {
		t.Fatalf("spawn = %+v", resp)
	}

	f.sess.Step()
	for {
		if err := conn.ReadJSON(&push); err != nil {
			t.Fatalf("read: %v", err)
		}
		if push.Name == "sim.tick" && push.Msg.Tick == 2 {
			break
		}
	}
	if len(push.Msg.Players) != 2 {
		t.Fatalf("players = %+v", push.Msg.Players)
	}
}
