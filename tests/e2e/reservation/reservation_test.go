//go:build e2e

package reservation_test

import (
	"net/http"
	"sync"
	"testing"

	"fleet-rental/internal/domain/user"
	"fleet-rental/internal/handler/dto/response"
	"fleet-rental/tests/common/dbtest"
	"fleet-rental/tests/common/httptest"
	"fleet-rental/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL        = "/api/auth/login"
	reservationsURL = "/api/reservations"
	availableURL    = "/api/vehicles/available"
)

type reservationSuite struct {
	e2e.SharedSuite
}

func TestReservationSuite(t *testing.T) {
	suite.Run(t, new(reservationSuite))
}

func (s *reservationSuite) loginAs(email string) string {
	s.T().Helper()

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL, map[string]any{
		"email":    email,
		"password": dbtest.TestUserPassword,
	}, "")
	require.Equal(s.T(), http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var auth response.AuthResponse
	require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &auth))
	require.NotEmpty(s.T(), auth.AccessToken)
	return auth.AccessToken
}

func (s *reservationSuite) createReservation(token string, vehicleID uuid.UUID, start, end string) *response.ReservationResponse {
	s.T().Helper()

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, map[string]any{
		"vehicle_id": vehicleID,
		"start_date": start,
		"end_date":   end,
	}, token)
	require.Equal(s.T(), http.StatusCreated, w.Code, "reservation failed: %s", w.Body.String())

	var res response.ReservationResponse
	require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &res))
	return &res
}

func (s *reservationSuite) queryAvailable(start, end string) response.AvailableVehiclesResponse {
	s.T().Helper()

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
		availableURL+"?start_date="+start+"&end_date="+end, nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code, "availability query failed: %s", w.Body.String())

	var res response.AvailableVehiclesResponse
	require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &res))
	return res
}

func containsVehicle(vehicles []response.VehicleResponse, id uuid.UUID) bool {
	for _, v := range vehicles {
		if v.ID == id {
			return true
		}
	}
	return false
}

func (s *reservationSuite) TestReservationLifecycle() {
	dbtest.CreateTestUser(s.T(), s.DB, "member@example.com", string(user.RoleMember))
	vehicleID := dbtest.CreateTestVehicle(s.T(), s.DB, "Toyota", "Corolla", true)
	token := s.loginAs("member@example.com")

	// The vehicle is free before the booking.
	avail := s.queryAvailable("2026-06-10", "2026-06-15")
	s.True(containsVehicle(avail.Vehicles, vehicleID))

	created := s.createReservation(token, vehicleID, "2026-06-10", "2026-06-15")
	s.Equal(vehicleID, created.VehicleID)
	s.Equal("2026-06-10", created.StartDate)
	s.Equal("2026-06-15", created.EndDate)
	s.Equal("member@example.com", created.UserEmail)

	// Booked dates drop the vehicle from the availability index.
	avail = s.queryAvailable("2026-06-12", "2026-06-20")
	s.False(containsVehicle(avail.Vehicles, vehicleID))

	// A disjoint range still shows it.
	avail = s.queryAvailable("2026-07-01", "2026-07-05")
	s.True(containsVehicle(avail.Vehicles, vehicleID))

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, reservationsURL+"/"+created.ID.String(), nil, token)
	var fetched response.ReservationResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &fetched)
	if diff := cmp.Diff(created, &fetched, cmpopts.IgnoreFields(response.ReservationResponse{}, "CreatedAt")); diff != "" {
		s.Failf("reservation mismatch", "(-created +fetched):\n%s", diff)
	}

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, reservationsURL, nil, token)
	var list []response.ReservationListResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
	s.Len(list, 1)
	s.Equal(created.ID, list[0].ID)
}

func (s *reservationSuite) TestOverlapIsRejected() {
	dbtest.CreateTestUser(s.T(), s.DB, "first@example.com", string(user.RoleMember))
	dbtest.CreateTestUser(s.T(), s.DB, "second@example.com", string(user.RoleMember))
	vehicleID := dbtest.CreateTestVehicle(s.T(), s.DB, "Honda", "Civic", true)

	firstToken := s.loginAs("first@example.com")
	secondToken := s.loginAs("second@example.com")

	s.createReservation(firstToken, vehicleID, "2026-06-10", "2026-06-15")

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"identical range", "2026-06-10", "2026-06-15"},
		{"contained range", "2026-06-11", "2026-06-14"},
		{"shared end day", "2026-06-15", "2026-06-18"},
		{"shared start day", "2026-06-05", "2026-06-10"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, map[string]any{
				"vehicle_id": vehicleID,
				"start_date": tt.start,
				"end_date":   tt.end,
			}, secondToken)
			httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already reserved")
		})
	}

	// The day after the end date is free again.
	s.createReservation(secondToken, vehicleID, "2026-06-16", "2026-06-20")
}

func (s *reservationSuite) TestUnavailableVehicleIsRejected() {
	dbtest.CreateTestUser(s.T(), s.DB, "member@example.com", string(user.RoleMember))
	vehicleID := dbtest.CreateTestVehicle(s.T(), s.DB, "Mazda", "3", false)
	token := s.loginAs("member@example.com")

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, map[string]any{
		"vehicle_id": vehicleID,
		"start_date": "2026-06-10",
		"end_date":   "2026-06-15",
	}, token)
	httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "not open for booking")
}

func (s *reservationSuite) TestUnknownVehicleIsRejected() {
	dbtest.CreateTestUser(s.T(), s.DB, "member@example.com", string(user.RoleMember))
	token := s.loginAs("member@example.com")

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, map[string]any{
		"vehicle_id": uuid.New(),
		"start_date": "2026-06-10",
		"end_date":   "2026-06-15",
	}, token)
	httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Vehicle not found")
}

// Hammers the same vehicle and period from many clients at once. The
// exclusion constraint in PostgreSQL must let exactly one booking through.
func (s *reservationSuite) TestConcurrentBookingsSingleWinner() {
	const contenders = 12

	vehicleID := dbtest.CreateTestVehicle(s.T(), s.DB, "Subaru", "Outback", true)

	tokens := make([]string, contenders)
	for i := range contenders {
		email := "racer" + string(rune('a'+i)) + "@example.com"
		dbtest.CreateTestUser(s.T(), s.DB, email, string(user.RoleMember))
		tokens[i] = s.loginAs(email)
	}

	statuses := make([]int, contenders)
	var wg sync.WaitGroup
	for i := range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, map[string]any{
				"vehicle_id": vehicleID,
				"start_date": "2026-08-01",
				"end_date":   "2026-08-07",
			}, tokens[i])
			statuses[i] = w.Code
		}()
	}
	wg.Wait()

	var created, conflicted int
	for _, code := range statuses {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			s.Failf("unexpected status", "got %d", code)
		}
	}
	s.Equal(1, created, "exactly one booking must win")
	s.Equal(contenders-1, conflicted)
}

func (s *reservationSuite) TestRequiresAuthentication() {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, map[string]any{
		"vehicle_id": uuid.New(),
		"start_date": "2026-06-10",
		"end_date":   "2026-06-15",
	}, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}
