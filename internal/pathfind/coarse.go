package pathfind

import "FrontierSim/internal/game"

// CoarseMap 是按 factor×factor 聚合的低分辨率地图，格内多数为陆地则为陆地。
type CoarseMap struct {
	fine   *game.GameMap
	coarse *game.GameMap
	factor int
}

func NewCoarseMap(fine *game.GameMap, factor int) (*CoarseMap, error) {
	factor = max(factor, 1)
	w := (fine.Width() + factor - 1) / factor
	h := (fine.Height() + factor - 1) / factor
	terrain := make([]game.Terrain, w*h)
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			land, total, ocean := 0, 0, 0
			for y := cy * factor; y < min((cy+1)*factor, fine.Height()); y++ {
				for x := cx * factor; x < min((cx+1)*factor, fine.Width()); x++ {
					t := fine.Ref(x, y)
					total++
					switch {
					case fine.IsLand(t):
						land++
					case fine.IsOcean(t):
						ocean++
					}
				}
			}
			switch {
			case land*2 >= total:
				terrain[cy*w+cx] = game.TerrainLand
			case ocean > 0:
				terrain[cy*w+cx] = game.TerrainOcean
			default:
				terrain[cy*w+cx] = game.TerrainLake
			}
		}
	}
	m, err := game.NewGameMap(w, h, terrain)
	if err != nil {
		return nil, err
	}
	return &CoarseMap{fine: fine, coarse: m, factor: factor}, nil
}

func (c *CoarseMap) Fine() *game.GameMap   { return c.fine }
func (c *CoarseMap) Coarse() *game.GameMap { return c.coarse }
func (c *CoarseMap) Factor() int           { return c.factor }

// Project 把精细地块映射到所在的粗格。
func (c *CoarseMap) Project(t game.TileRef) game.TileRef {
	return c.coarse.Ref(c.fine.X(t)/c.factor, c.fine.Y(t)/c.factor)
}

// Upscale 把粗格路径还原到精细坐标，相邻两点之间线性插值，单步不跨过一格以上。
func (c *CoarseMap) Upscale(path []game.TileRef) []game.TileRef {
	if len(path) == 0 {
		return nil
	}
	pts := make([]game.Cell, len(path))
	for i, t := range path {
		pts[i] = game.Cell{X: c.coarse.X(t) * c.factor, Y: c.coarse.Y(t) * c.factor}
	}
	out := make([]game.TileRef, 0, len(path)*c.factor)
	for i := 0; i+1 < len(pts); i++ {
		out = appendLine(c.fine, out, pts[i], pts[i+1])
	}
	last := pts[len(pts)-1]
	return append(out, c.fine.Ref(last.X, last.Y))
}

// appendLine 追加 [a, b) 之间的插值点。
func appendLine(m *game.GameMap, out []game.TileRef, a, b game.Cell) []game.TileRef {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := max(absInt(dx), absInt(dy))
	for s := 0; s < steps; s++ {
		x := a.X + roundDiv(dx*s, steps)
		y := a.Y + roundDiv(dy*s, steps)
		out = append(out, m.Ref(x, y))
	}
	return out
}

// roundDiv 对 n/d 四舍五入（.5 向正无穷）。d > 0。
func roundDiv(n, d int) int {
	q := (2*n + d) / (2 * d)
	if 2*n+d < 0 && (2*n+d)%(2*d) != 0 {
		q--
	}
	return q
}
