package commands

import (
	"context"

	"fleet-rental/internal/domain/reservation"
	"fleet-rental/internal/domain/vehicle"
	"fleet-rental/internal/infra/db"

	"github.com/google/uuid"
)

// Write-side snapshot keeps the command path off the read-side view types.
type VehicleSnapshot struct {
	ID        uuid.UUID
	Make      string
	Model     string
	Available bool
}

type ReservationStore interface {
	// FindOverlappingForUpdate locks and returns the ids of reservations on
	// the vehicle whose closed period shares a day with the requested one.
	FindOverlappingForUpdate(ctx context.Context, tx db.DBTX, vehicleID uuid.UUID, period reservation.DatePeriod) ([]uuid.UUID, error)
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
}

type VehicleStore interface {
	Create(ctx context.Context, tx db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*VehicleSnapshot, error)
}
