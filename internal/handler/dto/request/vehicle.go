package request

import (
	"fleet-rental/internal/domain/reservation"
	"fleet-rental/internal/usecase/commands"
)

type CreateVehicleRequest struct {
	Make           string `json:"make" binding:"required"`
	Model          string `json:"model" binding:"required"`
	Year           int    `json:"year" binding:"required"`
	Color          string `json:"color" binding:"required"`
	DailyRateCents int64  `json:"daily_rate_cents" binding:"min=0"`
	Available      bool   `json:"available"`
}

func (r CreateVehicleRequest) ToParams() commands.AddVehicleParams {
	return commands.AddVehicleParams{
		Make:           r.Make,
		Model:          r.Model,
		Year:           r.Year,
		Color:          r.Color,
		DailyRateCents: r.DailyRateCents,
		Available:      r.Available,
	}
}

// AvailabilityQuery carries the mandatory date range for the availability
// lookup. Both ends are validated the same way the commit path validates
// them, so the two paths can never disagree about what a legal range is.
type AvailabilityQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

func (q AvailabilityQuery) ToPeriod() (reservation.DatePeriod, error) {
	return reservation.ParseDatePeriod(q.StartDate, q.EndDate)
}
