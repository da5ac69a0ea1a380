package commands

import (
	"context"

	"fleet-rental/internal/domain/vehicle"
	"fleet-rental/internal/infra/db"
	"fleet-rental/internal/pkg/errs"
	"fleet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidVehicle = errs.New("invalid vehicle attributes")

type VehicleCommands interface {
	AddVehicle(ctx context.Context, params AddVehicleParams) (uuid.UUID, error)
}

type AddVehicleParams struct {
	Make           string
	Model          string
	Year           int
	Color          string
	DailyRateCents int64
	Available      bool
}

type vehicleCommandsImpl struct {
	vehicleStore VehicleStore
	pool         shared.TxBeginner
}

func NewVehicleCommands(vehicleStore VehicleStore, pool shared.TxBeginner) VehicleCommands {
	return &vehicleCommandsImpl{
		vehicleStore: vehicleStore,
		pool:         pool,
	}
}

func (v *vehicleCommandsImpl) AddVehicle(ctx context.Context, params AddVehicleParams) (uuid.UUID, error) {
	entity, err := vehicle.NewVehicle(
		params.Make,
		params.Model,
		params.Year,
		params.Color,
		params.DailyRateCents,
		params.Available,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidVehicle)
	}

	return shared.RunInTx(ctx, v.pool, func(tx db.DBTX) (uuid.UUID, error) {
		id, err := v.vehicleStore.Create(ctx, tx, entity)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return id, nil
	})
}
