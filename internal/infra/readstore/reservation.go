package readstore

import (
	"context"

	"fleet-rental/internal/infra"
	"fleet-rental/internal/infra/db"
	"fleet-rental/internal/pkg/pgconv"
	"fleet-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const findReservationByIDSQL = `
SELECT r.id, r.vehicle_id, v.make, v.model, r.user_id, u.email, r.start_date, r.end_date, r.created_at
FROM reservations r
JOIN vehicles v ON v.id = r.vehicle_id
JOIN users u ON u.id = r.user_id
WHERE r.id = $1
`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		view      queries.ReservationView
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	err := s.db.QueryRow(ctx, findReservationByIDSQL, id).Scan(
		&view.ID,
		&view.VehicleID,
		&view.VehicleMake,
		&view.VehicleModel,
		&view.UserID,
		&view.UserEmail,
		&startDate,
		&endDate,
		&view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	view.StartDate = pgconv.DateFromPgtype(startDate)
	view.EndDate = pgconv.DateFromPgtype(endDate)

	return &view, nil
}

const findReservationsByUserSQL = `
SELECT r.id, r.vehicle_id, v.make, v.model, v.year, v.color, v.daily_rate_cents, r.start_date, r.end_date, r.created_at
FROM reservations r
JOIN vehicles v ON v.id = r.vehicle_id
WHERE r.user_id = $1
ORDER BY r.start_date DESC
`

func (s *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationListItem, error) {
	rows, err := s.db.Query(ctx, findReservationsByUserSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by user ID", err)
	}
	defer rows.Close()

	result := make([]*queries.ReservationListItem, 0)
	for rows.Next() {
		var (
			item      queries.ReservationListItem
			startDate pgtype.Date
			endDate   pgtype.Date
		)
		if err := rows.Scan(
			&item.ID,
			&item.VehicleID,
			&item.VehicleMake,
			&item.VehicleModel,
			&item.VehicleYear,
			&item.VehicleColor,
			&item.DailyRateCents,
			&startDate,
			&endDate,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		item.StartDate = pgconv.DateFromPgtype(startDate)
		item.EndDate = pgconv.DateFromPgtype(endDate)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}

	return result, nil
}
