package sim

import (
	"FrontierSim/internal/execution"
	"FrontierSim/internal/game"
	"FrontierSim/modules/kit/errx"
)

var (
	ErrBadCommand  = errx.NewBiz(errx.CodeReqParamError, "命令参数错误")
	ErrNoStation   = errx.NewBiz("STATION_NOT_FOUND", "地块上没有车站")
	ErrNoShip      = errx.NewBiz("SHIP_NOT_FOUND", "玩家没有这艘船")
	ErrSessionDone = errx.NewSys(errx.CodeUnavailable, "会话已结束")
)

// Command 是观察端提交的一条指令。Check 在提交时做不依赖局面的校验；
// Build 在下一个 tick 开始时于模拟协程上执行，把指令变成 execution。
type Command interface {
	Kind() string
	Check(m *game.GameMap) error
	Build(g *game.Game, env *execution.Env) (game.Execution, error)
}

type SpawnCommand struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (c *SpawnCommand) Kind() string { return "spawn" }

func (c *SpawnCommand) Check(m *game.GameMap) error {
	if c.Name == "" {
		return ErrBadCommand.WithData("field", "name")
	}
	if _, ok := game.ParsePlayerType(c.Type); !ok {
		return ErrBadCommand.WithData("field", "type").WithData("type", c.Type)
	}
	return checkCoord(m, c.X, c.Y)
}

func (c *SpawnCommand) Build(g *game.Game, _ *execution.Env) (game.Execution, error) {
	typ, _ := game.ParsePlayerType(c.Type)
	return execution.NewSpawnExecution(game.PlayerInfo{Name: c.Name, Type: typ}, g.Map().Ref(c.X, c.Y)), nil
}

type BuildCommand struct {
	Player string `json:"player" binding:"required"`
	Unit   string `json:"unit" binding:"required"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

func (c *BuildCommand) Kind() string { return "structure" }

func (c *BuildCommand) Check(m *game.GameMap) error {
	if c.Player == "" {
		return ErrBadCommand.WithData("field", "player")
	}
	if _, ok := game.ParseUnitType(c.Unit); !ok {
		return ErrBadCommand.WithData("field", "unit").WithData("unit", c.Unit)
	}
	return checkCoord(m, c.X, c.Y)
}

func (c *BuildCommand) Build(g *game.Game, env *execution.Env) (game.Execution, error) {
	p, ok := g.PlayerByName(c.Player)
	if !ok {
		return nil, game.ErrPlayerNotFound.WithData("player", c.Player)
	}
	typ, _ := game.ParseUnitType(c.Unit)
	return execution.NewConstructionExecution(env, p.SmallID(), typ, g.Map().Ref(c.X, c.Y)), nil
}

// AttackCommand 的 Target 为空表示进攻无主地；Troops<=0 时派出当前兵力的五分之一。
type AttackCommand struct {
	Player string `json:"player" binding:"required"`
	Target string `json:"target"`
	Troops int64  `json:"troops"`
}

func (c *AttackCommand) Kind() string { return "attack" }

func (c *AttackCommand) Check(_ *game.GameMap) error {
	if c.Player == "" {
		return ErrBadCommand.WithData("field", "player")
	}
	if c.Player == c.Target {
		return ErrBadCommand.WithData("field", "target").WithReason(ReasonSelfAttack)
	}
	return nil
}

func (c *AttackCommand) Build(g *game.Game, _ *execution.Env) (game.Execution, error) {
	p, ok := g.PlayerByName(c.Player)
	if !ok {
		return nil, game.ErrPlayerNotFound.WithData("player", c.Player)
	}
	target := game.TerraNulliusID
	if c.Target != "" {
		tp, ok := g.PlayerByName(c.Target)
		if !ok {
			return nil, game.ErrPlayerNotFound.WithData("player", c.Target)
		}
		target = tp.SmallID()
	}
	troops := c.Troops
	if troops <= 0 {
		troops = p.Troops() / 5
	}
	return execution.NewAttackExecution(p.SmallID(), target, troops, nil), nil
}

// TrainCommand 在两座车站之间发一列火车。
type TrainCommand struct {
	FromX int `json:"from_x"`
	FromY int `json:"from_y"`
	ToX   int `json:"to_x"`
	ToY   int `json:"to_y"`
}

func (c *TrainCommand) Kind() string { return "train" }

func (c *TrainCommand) Check(m *game.GameMap) error {
	if c.FromX == c.ToX && c.FromY == c.ToY {
		return ErrBadCommand.WithReason(ReasonSameStation)
	}
	if err := checkCoord(m, c.FromX, c.FromY); err != nil {
		return err
	}
	return checkCoord(m, c.ToX, c.ToY)
}

func (c *TrainCommand) Build(g *game.Game, _ *execution.Env) (game.Execution, error) {
	src, ok := stationAt(g, g.Map().Ref(c.FromX, c.FromY))
	if !ok {
		return nil, ErrNoStation.WithData("x", c.FromX).WithData("y", c.FromY)
	}
	dst, ok := stationAt(g, g.Map().Ref(c.ToX, c.ToY))
	if !ok {
		return nil, ErrNoStation.WithData("x", c.ToX).WithData("y", c.ToY)
	}
	return execution.NewTrainExecution(src, dst), nil
}

// MoveCommand 让玩家的一艘船驶向 (X, Y)，目的地必须是水域。
type MoveCommand struct {
	Player string `json:"player" binding:"required"`
	Unit   uint32 `json:"unit" binding:"required"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

func (c *MoveCommand) Kind() string { return "move" }

func (c *MoveCommand) Check(m *game.GameMap) error {
	if c.Player == "" {
		return ErrBadCommand.WithData("field", "player")
	}
	if c.Unit == 0 {
		return ErrBadCommand.WithData("field", "unit")
	}
	if err := checkCoord(m, c.X, c.Y); err != nil {
		return err
	}
	if !m.IsWater(m.Ref(c.X, c.Y)) {
		return ErrBadCommand.WithReason(ReasonNotWater).WithData("x", c.X).WithData("y", c.Y)
	}
	return nil
}

func (c *MoveCommand) Build(g *game.Game, _ *execution.Env) (game.Execution, error) {
	p, ok := g.PlayerByName(c.Player)
	if !ok {
		return nil, game.ErrPlayerNotFound.WithData("player", c.Player)
	}
	u, ok := g.Unit(c.Unit)
	if !ok || u.Owner() != p || !u.Type().IsShip() {
		return nil, ErrNoShip.WithData("player", c.Player).WithData("unit", c.Unit)
	}
	return execution.NewShipExecution(u.ID(), g.Map().Ref(c.X, c.Y)), nil
}

func stationAt(g *game.Game, t game.TileRef) (*game.Station, bool) {
	for _, s := range g.RailNetwork().Stations() {
		if s.IsActive() && s.Tile() == t {
			return s, true
		}
	}
	return nil, false
}

func checkCoord(m *game.GameMap, x, y int) error {
	if !m.IsValidCoord(x, y) {
		return game.ErrInvalidTile.WithData("x", x).WithData("y", y)
	}
	return nil
}
