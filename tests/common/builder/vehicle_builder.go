//go:build unit || e2e

package builder

import (
	"time"

	"fleet-rental/internal/domain/vehicle"
	"fleet-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type VehicleBuilder struct {
	ID             uuid.UUID
	Make           string
	Model          string
	Year           int
	Color          string
	DailyRateCents int64
	Available      bool
}

func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		ID:             uuid.New(),
		Make:           "Toyota",
		Model:          "Corolla",
		Year:           2022,
		Color:          "silver",
		DailyRateCents: 4500,
		Available:      true,
	}
}

func (v *VehicleBuilder) BuildDomain() (*vehicle.Vehicle, error) {
	return vehicle.NewVehicle(v.Make, v.Model, v.Year, v.Color, v.DailyRateCents, v.Available)
}

func (v *VehicleBuilder) BuildReadModel() *queries.VehicleView {
	now := time.Now()
	return &queries.VehicleView{
		ID:             v.ID,
		Make:           v.Make,
		Model:          v.Model,
		Year:           v.Year,
		Color:          v.Color,
		DailyRateCents: v.DailyRateCents,
		Available:      v.Available,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Fluent builder methods
func (v *VehicleBuilder) WithID(id uuid.UUID) *VehicleBuilder {
	v.ID = id
	return v
}

func (v *VehicleBuilder) WithMake(make string) *VehicleBuilder {
	v.Make = make
	return v
}

func (v *VehicleBuilder) WithModel(model string) *VehicleBuilder {
	v.Model = model
	return v
}

func (v *VehicleBuilder) AsUnavailable() *VehicleBuilder {
	v.Available = false
	return v
}
