//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"fleet-rental/internal/domain/reservation"
	"fleet-rental/internal/domain/vehicle"
	"fleet-rental/internal/infra"
	"fleet-rental/internal/infra/db"
	"fleet-rental/internal/usecase/commands"
	"fleet-rental/internal/usecase/queries"
	queriesmock "fleet-rental/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeTx satisfies pgx.Tx for the committer's transaction plumbing. Only the
// lifecycle methods matter here; the stores under test are in-memory and never
// touch the DBTX they are handed.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func (t *fakeTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return nil
}

type fakeBeginner struct {
	mu  sync.Mutex
	txs []*fakeTx
}

func (b *fakeBeginner) BeginTx(_ context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	tx := &fakeTx{}
	b.mu.Lock()
	b.txs = append(b.txs, tx)
	b.mu.Unlock()
	return tx, nil
}

type storedReservation struct {
	id        uuid.UUID
	vehicleID uuid.UUID
	period    reservation.DatePeriod
}

// memReservationStore reproduces the store contract in memory, including the
// exclusion-constraint conflict on insert of an overlapping period.
type memReservationStore struct {
	mu           sync.Mutex
	reservations []storedReservation
	findErr      error
	createErr    error
}

func (s *memReservationStore) FindOverlappingForUpdate(_ context.Context, _ db.DBTX, vehicleID uuid.UUID, period reservation.DatePeriod) ([]uuid.UUID, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []uuid.UUID
	for _, r := range s.reservations {
		if r.vehicleID == vehicleID && r.period.Overlaps(period) {
			ids = append(ids, r.id)
		}
	}
	return ids, nil
}

func (s *memReservationStore) Create(_ context.Context, _ db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reservations {
		if r.vehicleID == res.VehicleID() && r.period.Overlaps(res.Period()) {
			return uuid.Nil, infra.WrapRepoErr("failed to create reservation",
				&pgconn.PgError{Code: "23P01"})
		}
	}
	s.reservations = append(s.reservations, storedReservation{
		id:        res.ID(),
		vehicleID: res.VehicleID(),
		period:    res.Period(),
	})
	return res.ID(), nil
}

type memVehicleStore struct {
	vehicles map[uuid.UUID]*commands.VehicleSnapshot
}

func (s *memVehicleStore) Create(_ context.Context, _ db.DBTX, _ *vehicle.Vehicle) (uuid.UUID, error) {
	panic("not used")
}

func (s *memVehicleStore) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*commands.VehicleSnapshot, error) {
	v, ok := s.vehicles[id]
	if !ok {
		return nil, infra.WrapRepoErr("vehicle not found", pgx.ErrNoRows)
	}
	return v, nil
}

type ReservationCommandsTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockQueries      *queriesmock.MockReservationQueries
	reservationStore *memReservationStore
	vehicleStore     *memVehicleStore
	beginner         *fakeBeginner
	commands         commands.ReservationCommands

	userID    uuid.UUID
	vehicleID uuid.UUID
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.reservationStore = &memReservationStore{}
	s.userID = uuid.New()
	s.vehicleID = uuid.New()
	s.vehicleStore = &memVehicleStore{
		vehicles: map[uuid.UUID]*commands.VehicleSnapshot{
			s.vehicleID: {ID: s.vehicleID, Make: "Toyota", Model: "Corolla", Available: true},
		},
	}
	s.beginner = &fakeBeginner{}
	s.commands = commands.NewReservationCommands(s.reservationStore, s.vehicleStore, s.mockQueries, s.beginner)
}

func (s *ReservationCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) period(start, end string) reservation.DatePeriod {
	p, err := reservation.ParseDatePeriod(start, end)
	s.Require().NoError(err)
	return p
}

func (s *ReservationCommandsTestSuite) TestCommitSucceedsOnFreeVehicle() {
	period := s.period("2026-06-10", "2026-06-15")

	view := buildView(s.vehicleID, s.userID)
	s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(view, nil)

	got, err := s.commands.CreateReservation(context.Background(), s.userID, s.vehicleID, period)
	s.Require().NoError(err)
	s.Equal(view, got)
	s.Len(s.reservationStore.reservations, 1)

	// transaction must have committed, not rolled back
	s.Require().Len(s.beginner.txs, 1)
	s.True(s.beginner.txs[0].committed)
}

func (s *ReservationCommandsTestSuite) TestRepeatedIdenticalCommitConflicts() {
	period := s.period("2026-06-10", "2026-06-15")

	s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(buildView(s.vehicleID, s.userID), nil)

	_, err := s.commands.CreateReservation(context.Background(), s.userID, s.vehicleID, period)
	s.Require().NoError(err)

	// A second, byte-identical commit is a new booking attempt and must lose.
	_, err = s.commands.CreateReservation(context.Background(), s.userID, s.vehicleID, period)
	s.Require().ErrorIs(err, commands.ErrPeriodConflict)
	s.Len(s.reservationStore.reservations, 1)
}

func (s *ReservationCommandsTestSuite) TestSharedEndpointConflicts() {
	s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(buildView(s.vehicleID, s.userID), nil)

	_, err := s.commands.CreateReservation(context.Background(), s.userID, s.vehicleID, s.period("2026-06-01", "2026-06-05"))
	s.Require().NoError(err)

	// [06-05, 06-08] shares exactly one day with [06-01, 06-05]
	_, err = s.commands.CreateReservation(context.Background(), s.userID, s.vehicleID, s.period("2026-06-05", "2026-06-08"))
	s.Require().ErrorIs(err, commands.ErrPeriodConflict)
}

func (s *ReservationCommandsTestSuite) TestAdjacentPeriodsBothCommit() {
	s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(buildView(s.vehicleID, s.userID), nil).Times(2)

	_, err := s.commands.CreateReservation(context.Background(), s.userID, s.vehicleID, s.period("2026-06-01", "2026-06-05"))
	s.Require().NoError(err)

	// starts the day after the previous one ends
	_, err = s.commands.CreateReservation(context.Background(), s.userID, s.vehicleID, s.period("2026-06-06", "2026-06-10"))
	s.Require().NoError(err)
	s.Len(s.reservationStore.reservations, 2)
}

func (s *ReservationCommandsTestSuite) TestUnknownVehicle() {
	_, err := s.commands.CreateReservation(context.Background(), s.userID, uuid.New(), s.period("2026-06-10", "2026-06-15"))
	s.Require().ErrorIs(err, commands.ErrVehicleNotFound)
	s.Empty(s.reservationStore.reservations)
}

func (s *ReservationCommandsTestSuite) TestVehicleClosedForBooking() {
	closedID := uuid.New()
	s.vehicleStore.vehicles[closedID] = &commands.VehicleSnapshot{ID: closedID, Available: false}

	_, err := s.commands.CreateReservation(context.Background(), s.userID, closedID, s.period("2026-06-10", "2026-06-15"))
	s.Require().ErrorIs(err, commands.ErrVehicleUnavailable)
	s.Empty(s.reservationStore.reservations)
}

func (s *ReservationCommandsTestSuite) TestExclusionConstraintMapsToConflict() {
	// The in-tx overlap check sees nothing, but the insert loses the race.
	s.reservationStore.findErr = nil
	s.reservationStore.createErr = infra.WrapRepoErr("failed to create reservation",
		&pgconn.PgError{Code: "23P01"})

	_, err := s.commands.CreateReservation(context.Background(), s.userID, s.vehicleID, s.period("2026-06-10", "2026-06-15"))
	s.Require().ErrorIs(err, commands.ErrPeriodConflict)
}

func (s *ReservationCommandsTestSuite) TestForeignKeyViolationMapsToVehicleNotFound() {
	s.reservationStore.createErr = infra.WrapRepoErr("failed to create reservation",
		&pgconn.PgError{Code: "23503"})

	_, err := s.commands.CreateReservation(context.Background(), s.userID, s.vehicleID, s.period("2026-06-10", "2026-06-15"))
	s.Require().ErrorIs(err, commands.ErrVehicleNotFound)
}

func (s *ReservationCommandsTestSuite) TestStoreFailureSurfacesAsDatabaseError() {
	s.reservationStore.findErr = errors.New("connection reset")

	_, err := s.commands.CreateReservation(context.Background(), s.userID, s.vehicleID, s.period("2026-06-10", "2026-06-15"))
	s.Require().ErrorIs(err, commands.ErrDatabaseOperationFailed)

	// nothing was written, transaction rolled back
	s.Empty(s.reservationStore.reservations)
	s.Require().Len(s.beginner.txs, 1)
	s.True(s.beginner.txs[0].rolledBack)
}

func buildView(vehicleID, userID uuid.UUID) *queries.ReservationView {
	return &queries.ReservationView{
		ID:           uuid.New(),
		VehicleID:    vehicleID,
		VehicleMake:  "Toyota",
		VehicleModel: "Corolla",
		UserID:       userID,
		UserEmail:    "test@example.com",
	}
}

func TestConcurrentCommitsSingleWinner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vehicleID := uuid.New()
	store := &memReservationStore{}
	vstore := &memVehicleStore{
		vehicles: map[uuid.UUID]*commands.VehicleSnapshot{
			vehicleID: {ID: vehicleID, Available: true},
		},
	}
	mockQueries := queriesmock.NewMockReservationQueries(ctrl)
	mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		Return(buildView(vehicleID, uuid.New()), nil).AnyTimes()

	cmds := commands.NewReservationCommands(store, vstore, mockQueries, &fakeBeginner{})

	period, err := reservation.ParseDatePeriod("2026-06-10", "2026-06-15")
	require.NoError(t, err)

	const n = 16
	var wg sync.WaitGroup
	results := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = cmds.CreateReservation(context.Background(), uuid.New(), vehicleID, period)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, commands.ErrPeriodConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins, "exactly one racing commit must win")
	assert.Equal(t, n-1, conflicts)
	assert.Len(t, store.reservations, 1)
}
