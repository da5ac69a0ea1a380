package reservation

import (
	"github.com/google/uuid"
)

// Reservation is immutable once committed; there is no cancel or modify path
// through this service, only administrative cleanup outside it.
type Reservation struct {
	id        uuid.UUID
	vehicleID uuid.UUID
	userID    uuid.UUID
	period    DatePeriod
}

func NewReservation(vehicleID, userID uuid.UUID, period DatePeriod) *Reservation {
	return &Reservation{
		id:        uuid.New(),
		vehicleID: vehicleID,
		userID:    userID,
		period:    period,
	}
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) VehicleID() uuid.UUID { return r.vehicleID }
func (r *Reservation) UserID() uuid.UUID    { return r.userID }
func (r *Reservation) Period() DatePeriod   { return r.period }
