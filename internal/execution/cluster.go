package execution

import (
	"slices"

	"FrontierSim/internal/game"

	"go.uber.org/zap"
)

// calculateClusters 在边境地块上做 8 邻域连通分量，按大小降序返回。
// 起点按 TileRef 升序遍历，同样大小的簇保持发现顺序。
func calculateClusters(m *game.GameMap, p *game.Player) [][]game.TileRef {
	border := p.BorderTiles()
	visited := make(map[game.TileRef]struct{}, len(border))
	var clusters [][]game.TileRef
	for _, start := range border {
		if _, seen := visited[start]; seen {
			continue
		}
		visited[start] = struct{}{}
		queue := []game.TileRef{start}
		for head := 0; head < len(queue); head++ {
			for _, n := range m.NeighborsWithDiag(queue[head]) {
				if _, seen := visited[n]; seen || !p.IsBorderTile(n) {
					continue
				}
				visited[n] = struct{}{}
				queue = append(queue, n)
			}
		}
		clusters = append(clusters, queue)
	}
	slices.SortStableFunc(clusters, func(a, b []game.TileRef) int { return len(b) - len(a) })
	return clusters
}

// surroundedBySamePlayer 判断簇是否只与唯一一个玩家接壤，且被其边境的包围盒完全罩住。
// 簇碰到海岸、地图边缘或无主地时不算被包围。
func surroundedBySamePlayer(g *game.Game, p *game.Player, cluster []game.TileRef) (*game.Player, bool) {
	m := g.Map()
	enemies := make(map[game.SmallID]struct{})
	for _, t := range cluster {
		if m.IsOceanShore(t) || m.IsOnEdgeOfMap(t) {
			return nil, false
		}
		for _, n := range m.Neighbors(t) {
			if id := m.OwnerID(n); id != p.SmallID() {
				enemies[id] = struct{}{}
			}
		}
	}
	if len(enemies) != 1 {
		return nil, false
	}
	var enemyID game.SmallID
	for id := range enemies {
		enemyID = id
	}
	enemy, ok := g.Player(enemyID)
	if !ok {
		return nil, false
	}
	enemyBox, ok := game.CalculateBoundingBox(m, enemy.BorderTiles())
	if !ok {
		return nil, false
	}
	clusterBox, _ := game.CalculateBoundingBox(m, cluster)
	if !game.Inscribed(enemyBox, clusterBox) {
		return nil, false
	}
	return enemy, true
}

// isSurrounded 用于非主簇：不碰海岸和边缘，且邻接的外部地块包围盒罩住簇。
func isSurrounded(g *game.Game, p *game.Player, cluster []game.TileRef) bool {
	m := g.Map()
	var outside []game.TileRef
	for _, t := range cluster {
		if m.IsShore(t) || m.IsOnEdgeOfMap(t) {
			return false
		}
		for _, n := range m.Neighbors(t) {
			if m.OwnerID(n) != p.SmallID() {
				outside = append(outside, n)
			}
		}
	}
	outsideBox, ok := game.CalculateBoundingBox(m, outside)
	if !ok {
		return false
	}
	clusterBox, _ := game.CalculateBoundingBox(m, cluster)
	return game.Inscribed(outsideBox, clusterBox)
}

// removeCluster 把簇所在的连通领土交给包围者。
// 执行前重新确认簇仍全部属于 p；同一 tick 里更早的回收可能已经改过归属，此时直接跳过。
func removeCluster(g *game.Game, p *game.Player, cluster []game.TileRef) {
	m := g.Map()
	for _, t := range cluster {
		if m.OwnerID(t) != p.SmallID() {
			return
		}
	}
	capturing := capturingPlayer(g, p, cluster)
	if capturing == nil {
		return
	}
	tiles := m.BFS(cluster[0], func(t game.TileRef) bool { return m.OwnerID(t) == p.SmallID() })
	if p.NumTilesOwned() == len(tiles) {
		g.ConquerPlayer(capturing, p)
	}
	for _, t := range tiles {
		g.Conquer(capturing, t)
	}
	g.Logger().Info("player: cluster captured",
		zap.String("player", p.Name()),
		zap.String("captor", capturing.Name()),
		zap.Int("tiles", len(tiles)))
}

// capturingPlayer 优先选对 p 发起进攻兵力最多的敌对邻居；没有进攻时取簇周边出现次数最多的归属 id，
// 无主地和盟友也参与计数，平局取 id 小的。众数是无主地或友方时不回收。
func capturingPlayer(g *game.Game, p *game.Player, cluster []game.TileRef) *game.Player {
	m := g.Map()
	counts := make(map[game.SmallID]int)
	for _, t := range cluster {
		for _, n := range m.Neighbors(t) {
			if id := m.OwnerID(n); id != p.SmallID() {
				counts[id]++
			}
		}
	}
	if len(counts) == 0 {
		return nil
	}
	ids := make([]game.SmallID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var best *game.Player
	var bestTroops int64
	for _, id := range ids {
		o, ok := g.Player(id)
		if !ok || o.IsFriendly(p) {
			continue
		}
		for _, a := range o.OutgoingAttacks() {
			if a.Target() == p && a.Troops() > bestTroops {
				best, bestTroops = o, a.Troops()
			}
		}
	}
	if best != nil {
		return best
	}

	modeID, modeCount := ids[0], counts[ids[0]]
	for _, id := range ids[1:] {
		if counts[id] > modeCount {
			modeID, modeCount = id, counts[id]
		}
	}
	if modeID == game.TerraNulliusID {
		return nil
	}
	o, ok := g.Player(modeID)
	if !ok || o.IsFriendly(p) {
		return nil
	}
	return o
}
