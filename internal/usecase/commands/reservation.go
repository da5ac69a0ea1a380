package commands

import (
	"context"
	"errors"
	"time"

	"fleet-rental/internal/domain/reservation"
	"fleet-rental/internal/infra"
	"fleet-rental/internal/infra/db"
	"fleet-rental/internal/pkg/errs"
	"fleet-rental/internal/usecase/queries"
	"fleet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrVehicleNotFound         = errs.New("vehicle not found")
	ErrVehicleUnavailable      = errs.New("vehicle is not open for booking")
	ErrInvalidPeriod           = errs.New("invalid reservation period")
	ErrPeriodConflict          = errs.New("requested interval unavailable")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type ReservationCommands interface {
	// CreateReservation converts a free-interval check into a committed
	// reservation. The check and the insert run in one transaction, and the
	// store's exclusion constraint is the final arbiter: of two racing
	// commits for overlapping periods on one vehicle, exactly one wins.
	CreateReservation(ctx context.Context, userID, vehicleID uuid.UUID, period reservation.DatePeriod) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	reservationStore   ReservationStore
	vehicleStore       VehicleStore
	reservationQueries queries.ReservationQueries
	pool               shared.TxBeginner
}

func NewReservationCommands(
	reservationStore ReservationStore,
	vehicleStore VehicleStore,
	reservationQueries queries.ReservationQueries,
	pool shared.TxBeginner,
) ReservationCommands {
	return &reservationCommandsImpl{
		reservationStore:   reservationStore,
		vehicleStore:       vehicleStore,
		reservationQueries: reservationQueries,
		pool:               pool,
	}
}

func (r *reservationCommandsImpl) CreateReservation(
	ctx context.Context,
	userID, vehicleID uuid.UUID,
	period reservation.DatePeriod,
) (*queries.ReservationView, error) {
	start := time.Now()

	reservationID, err := shared.WithDefaultRetry(ctx, r.pool, func(tx db.DBTX) (uuid.UUID, error) {
		return r.commitReservation(ctx, tx, userID, vehicleID, period)
	})
	if err != nil {
		r.observe(start, err)
		return nil, err
	}
	r.observe(start, nil)

	// Read-after-write: return the joined view from the read store.
	view, err := r.reservationQueries.GetByID(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}

func (r *reservationCommandsImpl) commitReservation(
	ctx context.Context,
	tx db.DBTX,
	userID, vehicleID uuid.UUID,
	period reservation.DatePeriod,
) (uuid.UUID, error) {
	snapshot, err := r.vehicleStore.FindByID(ctx, tx, vehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrVehicleNotFound
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !snapshot.Available {
		return uuid.Nil, ErrVehicleUnavailable
	}

	// Re-check inside the transaction: the availability snapshot the caller
	// acted on is advisory and may be stale by now. This locks conflicting
	// rows as a fast path; the exclusion constraint below still arbitrates
	// inserts this query cannot see.
	conflicting, err := r.reservationStore.FindOverlappingForUpdate(ctx, tx, vehicleID, period)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if len(conflicting) > 0 {
		return uuid.Nil, ErrPeriodConflict
	}

	res := reservation.NewReservation(vehicleID, userID, period)

	reservationID, err := r.reservationStore.Create(ctx, tx, res)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return uuid.Nil, ErrPeriodConflict
		}
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return uuid.Nil, ErrVehicleNotFound
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return reservationID, nil
}

func (r *reservationCommandsImpl) observe(start time.Time, err error) {
	result := resultCommitted
	switch {
	case err == nil:
	case errors.Is(err, ErrPeriodConflict):
		result = resultConflict
	default:
		result = resultError
	}

	commitAttempts.WithLabelValues(result).Inc()
	commitDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
