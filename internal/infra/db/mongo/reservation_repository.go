package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainreservation "bookingengine/internal/domain/reservation"
	domainrooms "bookingengine/internal/domain/rooms"
	domainrange "bookingengine/internal/domain/shared/daterange"
	"bookingengine/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	col := db.Collection("agg_reservation")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "stay.check_in", Value: 1}}})
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{Keys: bson.D{{Key: "guest_id", Value: 1}}})
	return &ReservationRepository{col: col}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domainreservation.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReservationRepository) ByRoom(ctx context.Context, roomID domainrooms.RoomID) ([]*domainreservation.Reservation, error) {
	return r.find(ctx, bson.M{"room_id": string(roomID)})
}

func (r *ReservationRepository) ByGuest(ctx context.Context, guestID string) ([]*domainreservation.Reservation, error) {
	return r.find(ctx, bson.M{"guest_id": guestID})
}

// ByStatus with an empty status returns every reservation.
func (r *ReservationRepository) ByStatus(ctx context.Context, status domainreservation.Status) ([]*domainreservation.Reservation, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	return r.find(ctx, filter)
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	out, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if out.MatchedCount == 0 && out.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

func (r *ReservationRepository) find(ctx context.Context, filter bson.M) ([]*domainreservation.Reservation, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainreservation.Reservation
	for cur.Next(ctx) {
		var doc reservationDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type reservationDocument struct {
	ID          string        `bson:"_id"`
	RoomID      string        `bson:"room_id"`
	GuestID     string        `bson:"guest_id"`
	Stay        stayDocument  `bson:"stay"`
	Status      string        `bson:"status"`
	Quoted      moneyDocument `bson:"quoted_total"`
	CreatedAt   int64         `bson:"created_at"`
	UpdatedAt   int64         `bson:"updated_at"`
	CancelledAt int64         `bson:"cancelled_at"`
	Version     int64         `bson:"version"`
}

type stayDocument struct {
	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`
}

type moneyDocument struct {
	Amount   int64  `bson:"amount"`
	Currency string `bson:"currency"`
}

func newReservationDocument(res *domainreservation.Reservation) reservationDocument {
	doc := reservationDocument{
		ID:        string(res.ID),
		RoomID:    string(res.RoomID),
		GuestID:   res.GuestID,
		Stay:      stayDocument{CheckIn: res.Stay.CheckIn.UnixMilli(), CheckOut: res.Stay.CheckOut.UnixMilli()},
		Status:    string(res.Status),
		Quoted:    moneyDocument{Amount: res.QuotedTotal.Amount, Currency: res.QuotedTotal.Currency},
		CreatedAt: res.CreatedAt.UnixMilli(),
		UpdatedAt: res.UpdatedAt.UnixMilli(),
		Version:   res.Version,
	}
	if !res.CancelledAt.IsZero() {
		doc.CancelledAt = res.CancelledAt.UnixMilli()
	}
	return doc
}

func (d reservationDocument) toAggregate() *domainreservation.Reservation {
	res := &domainreservation.Reservation{
		ID:          domainreservation.ReservationID(d.ID),
		RoomID:      domainrooms.RoomID(d.RoomID),
		GuestID:     d.GuestID,
		Stay:        domainrange.StayInterval{CheckIn: timestampToTime(d.Stay.CheckIn), CheckOut: timestampToTime(d.Stay.CheckOut)},
		Status:      domainreservation.Status(d.Status),
		QuotedTotal: money.Money{Amount: d.Quoted.Amount, Currency: d.Quoted.Currency},
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
		Version:     d.Version,
	}
	if d.CancelledAt != 0 {
		res.CancelledAt = timestampToTime(d.CancelledAt)
	}
	return res
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
