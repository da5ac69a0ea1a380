package response

import (
	"time"

	"fleet-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VehicleResponse struct {
	ID             uuid.UUID `json:"id"`
	Make           string    `json:"make"`
	Model          string    `json:"model"`
	Year           int       `json:"year"`
	Color          string    `json:"color"`
	DailyRateCents int64     `json:"daily_rate_cents"`
	Available      bool      `json:"available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AvailableVehiclesResponse struct {
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Vehicles  []VehicleResponse `json:"vehicles"`
}

func FromVehicleView(vm *queries.VehicleView) (*VehicleResponse, error) {
	var resp VehicleResponse
	if err := copier.Copy(&resp, vm); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromVehicleViews(vms []*queries.VehicleView) ([]VehicleResponse, error) {
	resps := make([]VehicleResponse, 0, len(vms))
	for _, vm := range vms {
		resp, err := FromVehicleView(vm)
		if err != nil {
			return nil, err
		}
		resps = append(resps, *resp)
	}
	return resps, nil
}
