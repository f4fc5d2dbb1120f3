package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpayment "bookingengine/internal/domain/payment"
	domainreservation "bookingengine/internal/domain/reservation"
	"bookingengine/internal/domain/shared/money"
)

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	col := db.Collection("agg_payment")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{Keys: bson.D{{Key: "reservation_id", Value: 1}}})
	return &PaymentRepository{col: col}
}

func (r *PaymentRepository) ByID(ctx context.Context, id domainpayment.PaymentID) (*domainpayment.Payment, error) {
	var doc paymentDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domainpayment.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PaymentRepository) ByReservation(ctx context.Context, id domainreservation.ReservationID) ([]*domainpayment.Payment, error) {
	return r.find(ctx, bson.M{"reservation_id": string(id)})
}

func (r *PaymentRepository) ByStatus(ctx context.Context, status domainpayment.Status) ([]*domainpayment.Payment, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	return r.find(ctx, filter)
}

func (r *PaymentRepository) All(ctx context.Context) ([]*domainpayment.Payment, error) {
	return r.find(ctx, bson.M{})
}

func (r *PaymentRepository) Save(ctx context.Context, p *domainpayment.Payment) error {
	doc := newPaymentDocument(p)
	_, err := r.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return err
}

func (r *PaymentRepository) Delete(ctx context.Context, id domainpayment.PaymentID) error {
	out, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if out.DeletedCount == 0 {
		return domainpayment.ErrNotFound
	}
	return nil
}

func (r *PaymentRepository) find(ctx context.Context, filter bson.M) ([]*domainpayment.Payment, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainpayment.Payment
	for cur.Next(ctx) {
		var doc paymentDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type paymentDocument struct {
	ID            string        `bson:"_id"`
	ReservationID string        `bson:"reservation_id"`
	Amount        moneyDocument `bson:"amount"`
	Method        string        `bson:"method"`
	Status        string        `bson:"status"`
	PaidAt        int64         `bson:"paid_at"`
	CreatedAt     int64         `bson:"created_at"`
	UpdatedAt     int64         `bson:"updated_at"`
}

func newPaymentDocument(p *domainpayment.Payment) paymentDocument {
	doc := paymentDocument{
		ID:            string(p.ID),
		ReservationID: string(p.ReservationID),
		Amount:        moneyDocument{Amount: p.Amount.Amount, Currency: p.Amount.Currency},
		Method:        p.Method,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt.UnixMilli(),
		UpdatedAt:     p.UpdatedAt.UnixMilli(),
	}
	if !p.PaidAt.IsZero() {
		doc.PaidAt = p.PaidAt.UnixMilli()
	}
	return doc
}

func (d paymentDocument) toAggregate() *domainpayment.Payment {
	p := &domainpayment.Payment{
		ID:            domainpayment.PaymentID(d.ID),
		ReservationID: domainreservation.ReservationID(d.ReservationID),
		Amount:        money.Money{Amount: d.Amount.Amount, Currency: d.Amount.Currency},
		Method:        d.Method,
		Status:        domainpayment.Status(d.Status),
		CreatedAt:     timestampToTime(d.CreatedAt),
		UpdatedAt:     timestampToTime(d.UpdatedAt),
	}
	if d.PaidAt != 0 {
		p.PaidAt = timestampToTime(d.PaidAt)
	}
	return p
}
