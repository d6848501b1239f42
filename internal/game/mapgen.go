package game

import (
	"bufio"
	"io"
	"math"
	"math/rand/v2"
	"strings"
)

// ParseASCIIMap 解析文本地图：'.' 陆地，'~' 海洋，'-' 湖泊；空行与 '#' 开头的行忽略。
func ParseASCIIMap(r io.Reader) (*GameMap, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<22)

	var rows []string
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r ")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, ErrMapFormat.WithCause(err)
	}
	if len(rows) == 0 {
		return nil, ErrMapFormat.WithData("reason", "empty map")
	}

	width := len(rows[0])
	terrain := make([]Terrain, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, ErrMapFormat.WithData("row", y).WithData("reason", "ragged row")
		}
		for x, c := range row {
			switch c {
			case '.':
				terrain = append(terrain, TerrainLand)
			case '~':
				terrain = append(terrain, TerrainOcean)
			case '-':
				terrain = append(terrain, TerrainLake)
			default:
				return nil, ErrMapFormat.WithData("x", x).WithData("y", y).WithData("char", string(c))
			}
		}
	}
	return NewGameMap(width, len(rows), terrain)
}

// GenerateIslands 用种子生成若干椭圆岛屿叠加的地图，同一种子结果一致。
func GenerateIslands(width, height int, seed uint64, islands int) (*GameMap, error) {
	if islands <= 0 {
		islands = 1
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	type blob struct {
		cx, cy, rx, ry float64
	}
	blobs := make([]blob, islands)
	for i := range blobs {
		blobs[i] = blob{
			cx: rng.Float64() * float64(width),
			cy: rng.Float64() * float64(height),
			rx: float64(width) * (0.08 + rng.Float64()*0.2),
			ry: float64(height) * (0.08 + rng.Float64()*0.2),
		}
	}

	terrain := make([]Terrain, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := 0.0
			for _, b := range blobs {
				dx := (float64(x) - b.cx) / b.rx
				dy := (float64(y) - b.cy) / b.ry
				v = math.Max(v, 1-(dx*dx+dy*dy))
			}
			if v > 0 {
				terrain[y*width+x] = TerrainLand
			} else {
				terrain[y*width+x] = TerrainOcean
			}
		}
	}
	return NewGameMap(width, height, terrain)
}

// FilledMap 生成全是同一种地形的地图，测试和空地图场景使用。
func FilledMap(width, height int, t Terrain) *GameMap {
	terrain := make([]Terrain, width*height)
	for i := range terrain {
		terrain[i] = t
	}
	m, err := NewGameMap(width, height, terrain)
	if err != nil {
		panic(err)
	}
	return m
}
