package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainseasons "bookingengine/internal/domain/seasons"
)

type SeasonRepository struct {
	col *mongo.Collection
}

func NewSeasonRepository(db *mongo.Database) *SeasonRepository {
	return &SeasonRepository{col: db.Collection("agg_season")}
}

func (r *SeasonRepository) ByID(ctx context.Context, id domainseasons.SeasonID) (*domainseasons.Season, error) {
	var doc seasonDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domainseasons.ErrSeasonNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *SeasonRepository) All(ctx context.Context) ([]*domainseasons.Season, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainseasons.Season
	for cur.Next(ctx) {
		var doc seasonDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

func (r *SeasonRepository) Save(ctx context.Context, season *domainseasons.Season) error {
	doc := newSeasonDocument(season)
	_, err := r.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return err
}

func (r *SeasonRepository) Delete(ctx context.Context, id domainseasons.SeasonID) error {
	out, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if out.DeletedCount == 0 {
		return domainseasons.ErrSeasonNotFound
	}
	return nil
}

type seasonDocument struct {
	ID          string  `bson:"_id"`
	Name        string  `bson:"name"`
	Start       int64   `bson:"start"`
	End         int64   `bson:"end"`
	Coefficient float64 `bson:"coefficient"`
	CreatedAt   int64   `bson:"created_at"`
	UpdatedAt   int64   `bson:"updated_at"`
}

func newSeasonDocument(season *domainseasons.Season) seasonDocument {
	return seasonDocument{
		ID:          string(season.ID),
		Name:        season.Name,
		Start:       season.Start.UnixMilli(),
		End:         season.End.UnixMilli(),
		Coefficient: season.Coefficient,
		CreatedAt:   season.CreatedAt.UnixMilli(),
		UpdatedAt:   season.UpdatedAt.UnixMilli(),
	}
}

func (d seasonDocument) toAggregate() *domainseasons.Season {
	return &domainseasons.Season{
		ID:          domainseasons.SeasonID(d.ID),
		Name:        d.Name,
		Start:       timestampToTime(d.Start),
		End:         timestampToTime(d.End),
		Coefficient: d.Coefficient,
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
	}
}
