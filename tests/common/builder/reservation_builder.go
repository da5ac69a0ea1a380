//go:build unit || e2e

package builder

import (
	"time"

	reqdto "fleet-rental/internal/handler/dto/request"
	"fleet-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID           uuid.UUID
	VehicleID    uuid.UUID
	VehicleMake  string
	VehicleModel string
	UserID       uuid.UUID
	UserEmail    string
	StartDate    string
	EndDate      string
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:           uuid.New(),
		VehicleID:    uuid.New(),
		VehicleMake:  "Toyota",
		VehicleModel: "Corolla",
		UserID:       uuid.New(),
		UserEmail:    "test@example.com",
		StartDate:    "2026-06-10",
		EndDate:      "2026-06-15",
	}
}

func (r *ReservationBuilder) BuildDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		VehicleID: r.VehicleID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

func (r *ReservationBuilder) BuildReadModel() *queries.ReservationView {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return &queries.ReservationView{
		ID:           r.ID,
		VehicleID:    r.VehicleID,
		VehicleMake:  r.VehicleMake,
		VehicleModel: r.VehicleModel,
		UserID:       r.UserID,
		UserEmail:    r.UserEmail,
		StartDate:    start,
		EndDate:      end,
		CreatedAt:    time.Now(),
	}
}

func (r *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return &queries.ReservationListItem{
		ID:           r.ID,
		VehicleID:    r.VehicleID,
		VehicleMake:  r.VehicleMake,
		VehicleModel: r.VehicleModel,
		VehicleYear:  2022,
		VehicleColor: "silver",
		StartDate:    start,
		EndDate:      end,
		CreatedAt:    time.Now(),
	}
}

// Fluent builder methods
func (r *ReservationBuilder) WithVehicleID(id uuid.UUID) *ReservationBuilder {
	r.VehicleID = id
	return r
}

func (r *ReservationBuilder) WithUserID(id uuid.UUID) *ReservationBuilder {
	r.UserID = id
	return r
}

func (r *ReservationBuilder) WithDates(start, end string) *ReservationBuilder {
	r.StartDate = start
	r.EndDate = end
	return r
}
