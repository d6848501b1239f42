package game

import "fmt"

// TileRef 是地块的不透明句柄，只对签发它的 GameMap 有效。
type TileRef uint32

// SmallID 是玩家在竞技场中的下标，0 保留给无主地（terra nullius）。
type SmallID uint16

const TerraNulliusID SmallID = 0

type Terrain uint8

const (
	TerrainLand Terrain = iota
	TerrainOcean
	TerrainLake
)

const (
	landBit      uint8 = 1 << 7
	shorelineBit uint8 = 1 << 6
	oceanBit     uint8 = 1 << 5
)

// GameMap 保存地形位与归属。地形构造后只读；归属只能由 Game 的 mutator 修改。
type GameMap struct {
	width   int
	height  int
	terrain []uint8
	owner   []SmallID
}

// NewGameMap 按行优先的地形数组构造地图，并预计算海岸线位。
func NewGameMap(width, height int, terrain []Terrain) (*GameMap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrMapFormat.WithData("width", width).WithData("height", height)
	}
	if len(terrain) != width*height {
		return nil, ErrMapFormat.WithData("reason", fmt.Sprintf("terrain len %d != %d*%d", len(terrain), width, height))
	}
	m := &GameMap{
		width:   width,
		height:  height,
		terrain: make([]uint8, width*height),
		owner:   make([]SmallID, width*height),
	}
	for i, t := range terrain {
		switch t {
		case TerrainLand:
			m.terrain[i] = landBit
		case TerrainOcean:
			m.terrain[i] = oceanBit
		case TerrainLake:
			m.terrain[i] = 0
		}
	}
	for i := range m.terrain {
		ref := TileRef(i)
		land := m.IsLand(ref)
		for _, n := range m.Neighbors(ref) {
			if m.IsLand(n) != land {
				m.terrain[i] |= shorelineBit
				break
			}
		}
	}
	return m, nil
}

func (m *GameMap) Width() int    { return m.width }
func (m *GameMap) Height() int   { return m.height }
func (m *GameMap) NumTiles() int { return m.width * m.height }

func (m *GameMap) IsValidCoord(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

func (m *GameMap) IsValidRef(t TileRef) bool {
	return int(t) < len(m.terrain)
}

// Ref 不做越界检查，调用方先用 IsValidCoord。
func (m *GameMap) Ref(x, y int) TileRef {
	return TileRef(y*m.width + x)
}

func (m *GameMap) X(t TileRef) int { return int(t) % m.width }
func (m *GameMap) Y(t TileRef) int { return int(t) / m.width }

func (m *GameMap) IsLand(t TileRef) bool  { return m.terrain[t]&landBit != 0 }
func (m *GameMap) IsWater(t TileRef) bool { return m.terrain[t]&landBit == 0 }
func (m *GameMap) IsOcean(t TileRef) bool { return m.terrain[t]&oceanBit != 0 }
func (m *GameMap) IsLake(t TileRef) bool  { return m.IsWater(t) && !m.IsOcean(t) }

// IsShoreline 对陆地和水面都成立：与另一种地形相邻。
func (m *GameMap) IsShoreline(t TileRef) bool { return m.terrain[t]&shorelineBit != 0 }

// IsShore 是与水相邻的陆地。
func (m *GameMap) IsShore(t TileRef) bool { return m.IsLand(t) && m.IsShoreline(t) }

// IsOceanShore 是与海洋（非湖泊）相邻的陆地。
func (m *GameMap) IsOceanShore(t TileRef) bool {
	if !m.IsShore(t) {
		return false
	}
	for _, n := range m.Neighbors(t) {
		if m.IsOcean(n) {
			return true
		}
	}
	return false
}

func (m *GameMap) IsOnEdgeOfMap(t TileRef) bool {
	x, y := m.X(t), m.Y(t)
	return x == 0 || y == 0 || x == m.width-1 || y == m.height-1
}

// Neighbors 返回 4 邻域，顺序固定（上、下、左、右），保证确定性。
func (m *GameMap) Neighbors(t TileRef) []TileRef {
	x, y := m.X(t), m.Y(t)
	out := make([]TileRef, 0, 4)
	if y > 0 {
		out = append(out, t-TileRef(m.width))
	}
	if y < m.height-1 {
		out = append(out, t+TileRef(m.width))
	}
	if x > 0 {
		out = append(out, t-1)
	}
	if x < m.width-1 {
		out = append(out, t+1)
	}
	return out
}

// NeighborsWithDiag 返回 8 邻域，按 dy、dx 升序。
func (m *GameMap) NeighborsWithDiag(t TileRef) []TileRef {
	x, y := m.X(t), m.Y(t)
	out := make([]TileRef, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if m.IsValidCoord(nx, ny) {
				out = append(out, m.Ref(nx, ny))
			}
		}
	}
	return out
}

func (m *GameMap) OwnerID(t TileRef) SmallID { return m.owner[t] }
func (m *GameMap) HasOwner(t TileRef) bool   { return m.owner[t] != TerraNulliusID }

func (m *GameMap) setOwnerID(t TileRef, id SmallID) { m.owner[t] = id }

func (m *GameMap) ManhattanDist(a, b TileRef) int {
	return abs(m.X(a)-m.X(b)) + abs(m.Y(a)-m.Y(b))
}

func (m *GameMap) EuclideanDistSquared(a, b TileRef) int {
	dx, dy := m.X(a)-m.X(b), m.Y(a)-m.Y(b)
	return dx*dx + dy*dy
}

// BFS 从 start 出发沿 4 邻域遍历满足 filter 的地块。使用显式队列，不递归。
func (m *GameMap) BFS(start TileRef, filter func(TileRef) bool) []TileRef {
	if !m.IsValidRef(start) || !filter(start) {
		return nil
	}
	seen := make(map[TileRef]struct{}, 64)
	seen[start] = struct{}{}
	queue := []TileRef{start}
	for head := 0; head < len(queue); head++ {
		for _, n := range m.Neighbors(queue[head]) {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			if filter(n) {
				queue = append(queue, n)
			}
		}
	}
	return queue
}

// TerrainOnly 复制一份不带归属的地形，用于跨 goroutine 的只读寻路。
func (m *GameMap) TerrainOnly() *GameMap {
	terrain := make([]uint8, len(m.terrain))
	copy(terrain, m.terrain)
	return &GameMap{
		width:   m.width,
		height:  m.height,
		terrain: terrain,
		owner:   make([]SmallID, len(m.owner)),
	}
}

// Terrain 还原某个地块的地形枚举。
func (m *GameMap) Terrain(t TileRef) Terrain {
	switch {
	case m.IsLand(t):
		return TerrainLand
	case m.IsOcean(t):
		return TerrainOcean
	default:
		return TerrainLake
	}
}

// NumLandTiles 统计陆地地块数。
func (m *GameMap) NumLandTiles() int {
	n := 0
	for t := range m.terrain {
		if m.terrain[t]&landBit != 0 {
			n++
		}
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
