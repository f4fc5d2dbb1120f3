package memory

import (
	"context"
	"sort"
	"sync"

	domainpayment "bookingengine/internal/domain/payment"
	domainreservation "bookingengine/internal/domain/reservation"
	domainrooms "bookingengine/internal/domain/rooms"
	domainseasons "bookingengine/internal/domain/seasons"
)

// RoomRepository is an in-memory implementation for single-process runs and tests.
type RoomRepository struct {
	mu    sync.RWMutex
	items map[domainrooms.RoomID]*domainrooms.Room
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{items: make(map[domainrooms.RoomID]*domainrooms.Room)}
}

func (r *RoomRepository) ByID(ctx context.Context, id domainrooms.RoomID) (*domainrooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.items[id]
	if !ok {
		return nil, domainrooms.ErrRoomNotFound
	}
	return room, nil
}

func (r *RoomRepository) All(ctx context.Context) ([]*domainrooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainrooms.Room, 0, len(r.items))
	for _, room := range r.items {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *RoomRepository) Save(ctx context.Context, room *domainrooms.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[room.ID] = room
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id domainrooms.RoomID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainrooms.ErrRoomNotFound
	}
	delete(r.items, id)
	return nil
}

// SeasonRepository keeps the pricing calendar in memory.
type SeasonRepository struct {
	mu    sync.RWMutex
	items map[domainseasons.SeasonID]*domainseasons.Season
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{items: make(map[domainseasons.SeasonID]*domainseasons.Season)}
}

func (r *SeasonRepository) ByID(ctx context.Context, id domainseasons.SeasonID) (*domainseasons.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	season, ok := r.items[id]
	if !ok {
		return nil, domainseasons.ErrSeasonNotFound
	}
	return season, nil
}

func (r *SeasonRepository) All(ctx context.Context) ([]*domainseasons.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainseasons.Season, 0, len(r.items))
	for _, season := range r.items {
		out = append(out, season)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SeasonRepository) Save(ctx context.Context, season *domainseasons.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[season.ID] = season
	return nil
}

func (r *SeasonRepository) Delete(ctx context.Context, id domainseasons.SeasonID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainseasons.ErrSeasonNotFound
	}
	delete(r.items, id)
	return nil
}

// ReservationRepository stores reservations keyed by ID with simple scans
// for the secondary lookups.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[domainreservation.ReservationID]*domainreservation.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[domainreservation.ReservationID]*domainreservation.Reservation)}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, domainreservation.ErrNotFound
	}
	return res, nil
}

func (r *ReservationRepository) ByRoom(ctx context.Context, roomID domainrooms.RoomID) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scan(func(res *domainreservation.Reservation) bool { return res.RoomID == roomID }), nil
}

func (r *ReservationRepository) ByGuest(ctx context.Context, guestID string) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scan(func(res *domainreservation.Reservation) bool { return res.GuestID == guestID }), nil
}

// ByStatus with an empty status returns every reservation.
func (r *ReservationRepository) ByStatus(ctx context.Context, status domainreservation.Status) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scan(func(res *domainreservation.Reservation) bool {
		return status == "" || res.Status == status
	}), nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.items[res.ID]; ok && current != res && current.Version != res.Version {
		return domainreservation.ErrVersionConflict
	}
	res.Version++
	r.items[res.ID] = res
	return nil
}

func (r *ReservationRepository) scan(match func(*domainreservation.Reservation) bool) []*domainreservation.Reservation {
	out := make([]*domainreservation.Reservation, 0)
	for _, res := range r.items {
		if match(res) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// PaymentRepository stores payments in memory.
type PaymentRepository struct {
	mu    sync.RWMutex
	items map[domainpayment.PaymentID]*domainpayment.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{items: make(map[domainpayment.PaymentID]*domainpayment.Payment)}
}

func (r *PaymentRepository) ByID(ctx context.Context, id domainpayment.PaymentID) (*domainpayment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domainpayment.ErrNotFound
	}
	return p, nil
}

func (r *PaymentRepository) ByReservation(ctx context.Context, id domainreservation.ReservationID) ([]*domainpayment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scan(func(p *domainpayment.Payment) bool { return p.ReservationID == id }), nil
}

func (r *PaymentRepository) ByStatus(ctx context.Context, status domainpayment.Status) ([]*domainpayment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scan(func(p *domainpayment.Payment) bool { return status == "" || p.Status == status }), nil
}

func (r *PaymentRepository) All(ctx context.Context) ([]*domainpayment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scan(func(*domainpayment.Payment) bool { return true }), nil
}

func (r *PaymentRepository) Save(ctx context.Context, p *domainpayment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = p
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id domainpayment.PaymentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainpayment.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *PaymentRepository) scan(match func(*domainpayment.Payment) bool) []*domainpayment.Payment {
	out := make([]*domainpayment.Payment, 0)
	for _, p := range r.items {
		if match(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

var (
	_ domainrooms.Repository       = (*RoomRepository)(nil)
	_ domainseasons.Repository     = (*SeasonRepository)(nil)
	_ domainreservation.Repository = (*ReservationRepository)(nil)
	_ domainpayment.Repository     = (*PaymentRepository)(nil)
)
