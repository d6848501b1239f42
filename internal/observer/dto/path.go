package dto

import (
	"FrontierSim/internal/game"
	"FrontierSim/internal/pathworker"
)

// PathReq 同时用于 HTTP query（form tag）与 ws msg（json tag）。
type PathReq struct {
	Mode  string `form:"mode" json:"mode" binding:"required"`
	FromX int    `form:"from_x" json:"from_x"`
	FromY int    `form:"from_y" json:"from_y"`
	ToX   int    `form:"to_x" json:"to_x"`
	ToY   int    `form:"to_y" json:"to_y"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type PathResp struct {
	Status   string  `json:"status"`
	Attempts int     `json:"attempts"`
	Length   int     `json:"length"`
	Path     []Point `json:"path"`
}

func NewPathResp(m *game.GameMap, resp *pathworker.PathResponse) PathResp {
	out := PathResp{}
	if resp == nil {
		return out
	}
	out.Status = resp.Status.String()
	out.Attempts = resp.Attempts
	out.Length = len(resp.Path)
	out.Path = make([]Point, 0, len(resp.Path))
	for _, t := range resp.Path {
		out.Path = append(out.Path, Point{X: m.X(t), Y: m.Y(t)})
	}
	return out
}

type PlayerReq struct {
	ID uint16 `uri:"id" json:"id"`
}
