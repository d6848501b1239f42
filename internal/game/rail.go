package game

import "slices"

// RailType 是铁轨在某个地块上的走向。
type RailType uint8

const (
	RailVertical RailType = iota
	RailHorizontal
	RailTopLeft
	RailTopRight
	RailBottomLeft
	RailBottomRight
)

func (r RailType) String() string {
	switch r {
	case RailVertical:
		return "vertical"
	case RailHorizontal:
		return "horizontal"
	case RailTopLeft:
		return "top_left"
	case RailTopRight:
		return "top_right"
	case RailBottomLeft:
		return "bottom_left"
	case RailBottomRight:
		return "bottom_right"
	default:
		return "unknown"
	}
}

type RailTile struct {
	Tile TileRef
	Type RailType
}

// Railroad 是两个车站之间的一段铁路，tiles 从 from 指向 to。
type Railroad struct {
	from  *Station
	to    *Station
	tiles []RailTile
}

func NewRailroad(from, to *Station, tiles []RailTile) *Railroad {
	return &Railroad{from: from, to: to, tiles: tiles}
}

func (r *Railroad) From() *Station { return r.from }
func (r *Railroad) To() *Station   { return r.to }

func (r *Railroad) Tiles() []RailTile { return r.tiles }

// TilesFrom 返回从 s 出发方向的地块序列。
func (r *Railroad) TilesFrom(s *Station) []TileRef {
	out := make([]TileRef, len(r.tiles))
	for i, rt := range r.tiles {
		out[i] = rt.Tile
	}
	if s == r.to {
		slices.Reverse(out)
	}
	return out
}

// Station 是挂在城市、港口或工厂上的车站。
type Station struct {
	unit      *Unit
	railroads []*Railroad
}

func (s *Station) Unit() *Unit    { return s.unit }
func (s *Station) Tile() TileRef  { return s.unit.tile }
func (s *Station) Owner() *Player { return s.unit.owner }

// IsActive 跟随所属建筑的存活状态。
func (s *Station) IsActive() bool { return s.unit.active }

func (s *Station) Railroads() []*Railroad { return slices.Clone(s.railroads) }

// Neighbors 返回通过铁路直接相连的车站，按建筑 id 升序。
func (s *Station) Neighbors() []*Station {
	out := make([]*Station, 0, len(s.railroads))
	for _, r := range s.railroads {
		o := r.to
		if o == s {
			o = r.from
		}
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b *Station) int { return int(a.unit.id) - int(b.unit.id) })
	return out
}

func (s *Station) RailroadTo(o *Station) (*Railroad, bool) {
	for _, r := range s.railroads {
		if (r.from == s && r.to == o) || (r.to == s && r.from == o) {
			return r, true
		}
	}
	return nil, false
}

// RailNetwork 是车站图。
type RailNetwork struct {
	stations []*Station
}

func NewRailNetwork() *RailNetwork {
	return &RailNetwork{}
}

// AddStation 为建筑注册车站；重复注册返回已有车站。
func (n *RailNetwork) AddStation(u *Unit) *Station {
	if s, ok := n.StationOf(u); ok {
		return s
	}
	s := &Station{unit: u}
	n.stations = append(n.stations, s)
	return s
}

func (n *RailNetwork) StationOf(u *Unit) (*Station, bool) {
	for _, s := range n.stations {
		if s.unit == u {
			return s, true
		}
	}
	return nil, false
}

// RemoveStation 移除车站及与之相连的全部铁路。
func (n *RailNetwork) RemoveStation(s *Station) {
	n.stations = slices.DeleteFunc(n.stations, func(o *Station) bool { return o == s })
	for _, r := range s.railroads {
		other := r.to
		if other == s {
			other = r.from
		}
		other.railroads = slices.DeleteFunc(other.railroads, func(o *Railroad) bool { return o == r })
	}
	s.railroads = nil
}

// Stations 按注册顺序返回。
func (n *RailNetwork) Stations() []*Station { return slices.Clone(n.stations) }

// Connect 把铁路挂到两端车站上。两站之间已有铁路时忽略。
func (n *RailNetwork) Connect(r *Railroad) bool {
	if _, ok := r.from.RailroadTo(r.to); ok {
		return false
	}
	r.from.railroads = append(r.from.railroads, r)
	r.to.railroads = append(r.to.railroads, r)
	return true
}

// FindStationsPath 在车站图上 BFS，返回包含起终点的车站序列；不可达返回 nil。
func (n *RailNetwork) FindStationsPath(from, to *Station) []*Station {
	if from == to {
		return []*Station{from}
	}
	prev := map[*Station]*Station{from: nil}
	queue := []*Station{from}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, nb := range cur.Neighbors() {
			if _, seen := prev[nb]; seen || !nb.IsActive() {
				continue
			}
			prev[nb] = cur
			if nb == to {
				path := []*Station{to}
				for p := cur; p != nil; p = prev[p] {
					path = append(path, p)
				}
				slices.Reverse(path)
				return path
			}
			queue = append(queue, nb)
		}
	}
	return nil
}
