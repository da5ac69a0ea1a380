package queries

import (
	"context"

	"fleet-rental/internal/domain/reservation"
)

// VehicleReadStore is implemented by the infra read store.
type VehicleReadStore interface {
	FindAvailable(ctx context.Context, period reservation.DatePeriod) ([]*VehicleView, error)
	FindAll(ctx context.Context) ([]*VehicleView, error)
}

type VehicleQueries interface {
	// FindAvailable answers "which vehicles are free for [start, end]?". The
	// result is advisory: it is a snapshot, never a hold, and a vehicle it
	// lists can be taken by another caller before a commit lands.
	FindAvailable(ctx context.Context, period reservation.DatePeriod) ([]*VehicleView, error)
	ListAll(ctx context.Context) ([]*VehicleView, error)
}

type vehicleQueriesImpl struct {
	store VehicleReadStore
}

func NewVehicleQueries(store VehicleReadStore) VehicleQueries {
	return &vehicleQueriesImpl{store: store}
}

func (q *vehicleQueriesImpl) FindAvailable(ctx context.Context, period reservation.DatePeriod) ([]*VehicleView, error) {
	return q.store.FindAvailable(ctx, period)
}

func (q *vehicleQueriesImpl) ListAll(ctx context.Context) ([]*VehicleView, error) {
	return q.store.FindAll(ctx)
}
