package response

import (
	"time"

	"fleet-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ReservationResponse struct {
	ID           uuid.UUID `json:"id"`
	VehicleID    uuid.UUID `json:"vehicle_id"`
	VehicleMake  string    `json:"vehicle_make"`
	VehicleModel string    `json:"vehicle_model"`
	UserID       uuid.UUID `json:"user_id"`
	UserEmail    string    `json:"user_email"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReservationListResponse struct {
	ID             uuid.UUID `json:"id"`
	VehicleID      uuid.UUID `json:"vehicle_id"`
	VehicleMake    string    `json:"vehicle_make"`
	VehicleModel   string    `json:"vehicle_model"`
	VehicleYear    int       `json:"vehicle_year"`
	VehicleColor   string    `json:"vehicle_color"`
	DailyRateCents int64     `json:"daily_rate_cents"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:           rm.ID,
		VehicleID:    rm.VehicleID,
		VehicleMake:  rm.VehicleMake,
		VehicleModel: rm.VehicleModel,
		UserID:       rm.UserID,
		UserEmail:    rm.UserEmail,
		StartDate:    rm.StartDate.Format(dateLayout),
		EndDate:      rm.EndDate.Format(dateLayout),
		CreatedAt:    rm.CreatedAt,
	}
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:             rm.ID,
		VehicleID:      rm.VehicleID,
		VehicleMake:    rm.VehicleMake,
		VehicleModel:   rm.VehicleModel,
		VehicleYear:    rm.VehicleYear,
		VehicleColor:   rm.VehicleColor,
		DailyRateCents: rm.DailyRateCents,
		StartDate:      rm.StartDate.Format(dateLayout),
		EndDate:        rm.EndDate.Format(dateLayout),
		CreatedAt:      rm.CreatedAt,
	}
}

func FromReservationListItems(rms []*queries.ReservationListItem) []ReservationListResponse {
	resps := make([]ReservationListResponse, 0, len(rms))
	for _, rm := range rms {
		resps = append(resps, *FromReservationListItem(rm))
	}
	return resps
}
