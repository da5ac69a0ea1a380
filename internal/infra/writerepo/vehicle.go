package writerepo

import (
	"context"

	"fleet-rental/internal/domain/vehicle"
	"fleet-rental/internal/infra"
	"fleet-rental/internal/infra/db"
	"fleet-rental/internal/usecase/commands"

	"github.com/google/uuid"
)

type VehicleRepository struct{}

func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{}
}

const createVehicleSQL = `
INSERT INTO vehicles (id, make, model, year, color, daily_rate_cents, available)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

func (r *VehicleRepository) Create(ctx context.Context, tx db.DBTX, v *vehicle.Vehicle) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createVehicleSQL,
		v.ID(),
		v.Make(),
		v.Model(),
		v.Year(),
		v.Color(),
		v.DailyRateCents(),
		v.Available(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create vehicle", err)
	}

	return id, nil
}

const findVehicleByIDSQL = `
SELECT v.id, v.make, v.model, v.available
FROM vehicles v
WHERE v.id = $1
`

func (r *VehicleRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*commands.VehicleSnapshot, error) {
	var snapshot commands.VehicleSnapshot
	err := tx.QueryRow(ctx, findVehicleByIDSQL, id).Scan(
		&snapshot.ID,
		&snapshot.Make,
		&snapshot.Model,
		&snapshot.Available,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}

	return &snapshot, nil
}
