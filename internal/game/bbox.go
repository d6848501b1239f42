package game

// Cell 是地块坐标。
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BoundingBox 是闭区间的轴对齐包围盒。
type BoundingBox struct {
	Min Cell `json:"min"`
	Max Cell `json:"max"`
}

// CalculateBoundingBox 计算一组地块的包围盒；空集合返回 ok=false。
func CalculateBoundingBox(m *GameMap, tiles []TileRef) (BoundingBox, bool) {
	if len(tiles) == 0 {
		return BoundingBox{}, false
	}
	box := BoundingBox{
		Min: Cell{X: m.X(tiles[0]), Y: m.Y(tiles[0])},
		Max: Cell{X: m.X(tiles[0]), Y: m.Y(tiles[0])},
	}
	for _, t := range tiles[1:] {
		x, y := m.X(t), m.Y(t)
		box.Min.X = min(box.Min.X, x)
		box.Min.Y = min(box.Min.Y, y)
		box.Max.X = max(box.Max.X, x)
		box.Max.Y = max(box.Max.Y, y)
	}
	return box, true
}

// Inscribed 判断 inner 是否完全落在 outer 内（边界可重合）。
func Inscribed(outer, inner BoundingBox) bool {
	return outer.Min.X <= inner.Min.X &&
		outer.Min.Y <= inner.Min.Y &&
		outer.Max.X >= inner.Max.X &&
		outer.Max.Y >= inner.Max.Y
}
