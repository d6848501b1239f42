package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"FrontierSim/internal/stats/entity"
	"FrontierSim/internal/stats/infra/persistence/model"
)

const defaultCollectionName = "sim_stats"

type StatsRepository struct {
	coll *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		coll: db.Collection(defaultCollectionName),
	}
}

func (r *StatsRepository) Latest(ctx context.Context, id entity.GameID) (*entity.Snapshot, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb stats collection is nil")
	}

	var doc model.StatsDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc)
	if err == nil {
		return model.DocToSnapshot(doc), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrStatsNotFound.WithData("game_id", int64(id))
	}
	return nil, err
}

func (r *StatsRepository) Save(ctx context.Context, s *entity.Snapshot) error {
	if s == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb stats collection is nil")
	}

	doc := model.SnapshotToDoc(s)
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.GameID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}
