package memory

import (
	"context"
	"errors"
	"testing"

	"FrontierSim/internal/stats/entity"
)

func TestStatsRepository_版本与隔离(t *testing.T) {
	r := NewStatsRepository()
	ctx := context.Background()
	if _, err := r.Latest(ctx, 1); !errors.Is(err, entity.ErrStatsNotFound) {
		t.Fatalf("err = %v", err)
	}
	s := &entity.Snapshot{Version: 2, GameID: 1, Tick: 20, Players: []entity.PlayerStats{{SmallID: 1}}}
	_ = r.Save(ctx, s)
	_ = r.Save(ctx, &entity.Snapshot{Version: 1, GameID: 1, Tick: 10})
	s.Players[0].SmallID = 9

	got, err := r.Latest(ctx, 1)
	if err != nil || got.Tick != 20 || got.Players[0].SmallID != 1 {
		t.Fatalf("latest = %+v err=%v", got, err)
	}
	if r.Saves() != 2 {
		t.Fatalf("saves = %d", r.Saves())
	}
}
