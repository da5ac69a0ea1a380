package writerepo

import (
	"context"

	"fleet-rental/internal/domain/reservation"
	"fleet-rental/internal/infra"
	"fleet-rental/internal/infra/db"
	"fleet-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

// FOR UPDATE serializes racing committers that both read "no conflict" on the
// same rows. New rows invisible to this query are still caught by the
// reservations_no_overlap exclusion constraint on insert.
const findOverlappingSQL = `
SELECT r.id
FROM reservations r
WHERE r.vehicle_id = $1
  AND daterange(r.start_date, r.end_date, '[]') && daterange($2, $3, '[]')
FOR UPDATE
`

func (r *ReservationRepository) FindOverlappingForUpdate(
	ctx context.Context,
	tx db.DBTX,
	vehicleID uuid.UUID,
	period reservation.DatePeriod,
) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, findOverlappingSQL,
		vehicleID,
		pgconv.DateToPgtype(period.Start()),
		pgconv.DateToPgtype(period.End()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping reservations", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate overlapping reservations", err)
	}

	return ids, nil
}

const createReservationSQL = `
INSERT INTO reservations (id, user_id, vehicle_id, start_date, end_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createReservationSQL,
		res.ID(),
		res.UserID(),
		res.VehicleID(),
		pgconv.DateToPgtype(res.Period().Start()),
		pgconv.DateToPgtype(res.Period().End()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return id, nil
}
