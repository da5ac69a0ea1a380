package readstore

import (
	"context"

	"fleet-rental/internal/domain/reservation"
	"fleet-rental/internal/infra"
	"fleet-rental/internal/infra/db"
	"fleet-rental/internal/pkg/pgconv"
	"fleet-rental/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type VehicleReadStore struct {
	db db.DBTX
}

func NewVehicleReadStore(dbtx db.DBTX) *VehicleReadStore {
	return &VehicleReadStore{db: dbtx}
}

// findAvailableSQL excludes any vehicle with a committed reservation whose
// closed date range shares a day with the requested one. The '[]' bounds must
// stay in lockstep with reservation.DatePeriod.Overlaps and with the
// reservations_no_overlap constraint.
const findAvailableSQL = `
SELECT v.id, v.make, v.model, v.year, v.color, v.daily_rate_cents, v.available, v.created_at, v.updated_at
FROM vehicles v
WHERE v.available = true
  AND NOT EXISTS (
    SELECT 1
    FROM reservations r
    WHERE r.vehicle_id = v.id
      AND daterange(r.start_date, r.end_date, '[]') && daterange($1, $2, '[]')
  )
ORDER BY v.make, v.model, v.year
`

func (s *VehicleReadStore) FindAvailable(ctx context.Context, period reservation.DatePeriod) ([]*queries.VehicleView, error) {
	rows, err := s.db.Query(ctx, findAvailableSQL,
		pgconv.DateToPgtype(period.Start()),
		pgconv.DateToPgtype(period.End()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query available vehicles", err)
	}
	defer rows.Close()

	return scanVehicleViews(rows)
}

const findAllVehiclesSQL = `
SELECT v.id, v.make, v.model, v.year, v.color, v.daily_rate_cents, v.available, v.created_at, v.updated_at
FROM vehicles v
ORDER BY v.created_at
`

func (s *VehicleReadStore) FindAll(ctx context.Context) ([]*queries.VehicleView, error) {
	rows, err := s.db.Query(ctx, findAllVehiclesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query vehicles", err)
	}
	defer rows.Close()

	return scanVehicleViews(rows)
}

func scanVehicleViews(rows pgx.Rows) ([]*queries.VehicleView, error) {
	result := make([]*queries.VehicleView, 0)
	for rows.Next() {
		var view queries.VehicleView
		if err := rows.Scan(
			&view.ID,
			&view.Make,
			&view.Model,
			&view.Year,
			&view.Color,
			&view.DailyRateCents,
			&view.Available,
			&view.CreatedAt,
			&view.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate vehicle rows", err)
	}
	return result, nil
}
