package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainrooms "bookingengine/internal/domain/rooms"
	"bookingengine/internal/domain/shared/money"
)

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	col := db.Collection("agg_room")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)})
	return &RoomRepository{col: col}
}

func (r *RoomRepository) ByID(ctx context.Context, id domainrooms.RoomID) (*domainrooms.Room, error) {
	var doc roomDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domainrooms.ErrRoomNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RoomRepository) All(ctx context.Context) ([]*domainrooms.Room, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainrooms.Room
	for cur.Next(ctx) {
		var doc roomDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

func (r *RoomRepository) Save(ctx context.Context, room *domainrooms.Room) error {
	doc := newRoomDocument(room)
	_, err := r.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return err
}

func (r *RoomRepository) Delete(ctx context.Context, id domainrooms.RoomID) error {
	out, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if out.DeletedCount == 0 {
		return domainrooms.ErrRoomNotFound
	}
	return nil
}

type roomDocument struct {
	ID          string        `bson:"_id"`
	Number      string        `bson:"number"`
	Category    string        `bson:"category"`
	BaseNightly moneyDocument `bson:"base_nightly"`
	Capacity    int           `bson:"capacity"`
	Description string        `bson:"description"`
	Available   bool          `bson:"available"`
	CreatedAt   int64         `bson:"created_at"`
	UpdatedAt   int64         `bson:"updated_at"`
}

func newRoomDocument(room *domainrooms.Room) roomDocument {
	return roomDocument{
		ID:          string(room.ID),
		Number:      room.Number,
		Category:    string(room.Category),
		BaseNightly: moneyDocument{Amount: room.BaseNightly.Amount, Currency: room.BaseNightly.Currency},
		Capacity:    room.Capacity,
		Description: room.Description,
		Available:   room.Available,
		CreatedAt:   room.CreatedAt.UnixMilli(),
		UpdatedAt:   room.UpdatedAt.UnixMilli(),
	}
}

func (d roomDocument) toAggregate() *domainrooms.Room {
	return &domainrooms.Room{
		ID:          domainrooms.RoomID(d.ID),
		Number:      d.Number,
		Category:    domainrooms.Category(d.Category),
		BaseNightly: money.Money{Amount: d.BaseNightly.Amount, Currency: d.BaseNightly.Currency},
		Capacity:    d.Capacity,
		Description: d.Description,
		Available:   d.Available,
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
	}
}
