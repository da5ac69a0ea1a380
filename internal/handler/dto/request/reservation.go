package request

import (
	"fleet-rental/internal/domain/reservation"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	VehicleID uuid.UUID `json:"vehicle_id" binding:"required"`
	StartDate string    `json:"start_date" binding:"required"`
	EndDate   string    `json:"end_date" binding:"required"`
}

func (r CreateReservationRequest) ToPeriod() (reservation.DatePeriod, error) {
	return reservation.ParseDatePeriod(r.StartDate, r.EndDate)
}
