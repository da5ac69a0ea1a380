package components

import (
	"fleet-rental/internal/infra/db"
	"fleet-rental/internal/infra/readstore"
	"fleet-rental/internal/infra/writerepo"
	"fleet-rental/internal/usecase"
	"fleet-rental/internal/usecase/commands"
	"fleet-rental/internal/usecase/queries"
	"fleet-rental/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		NewTxBeginner,
		// Read side
		fx.Annotate(
			readstore.NewVehicleReadStore,
			fx.As(new(queries.VehicleReadStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		// Write side
		fx.Annotate(
			writerepo.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			writerepo.NewReservationRepository,
			fx.As(new(commands.ReservationStore)),
		),
		fx.Annotate(
			writerepo.NewVehicleRepository,
			fx.As(new(commands.VehicleStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewTxBeginner(pool *pgxpool.Pool) shared.TxBeginner {
	return pool
}
