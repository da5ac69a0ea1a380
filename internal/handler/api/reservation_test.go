//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"fleet-rental/internal/domain/user"
	"fleet-rental/internal/handler/api"
	resdto "fleet-rental/internal/handler/dto/response"
	"fleet-rental/internal/infra"
	"fleet-rental/internal/usecase/commands"
	"fleet-rental/internal/usecase/queries"
	"fleet-rental/tests/common/builder"
	"fleet-rental/tests/common/httptest"
	"fleet-rental/tests/common/testutil"
	commandsmock "fleet-rental/tests/mock/commands"
	queriesmock "fleet-rental/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func notFoundErr() error {
	return infra.WrapRepoErr("not found", pgx.ErrNoRows)
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	userID       uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleMember)
		c.Next()
	}

	s.router.POST("/reservations", authMiddleware, s.handler.CreateReservation)
	s.router.GET("/reservations", authMiddleware, s.handler.GetUserReservations)
	s.router.GET("/reservations/:id", authMiddleware, s.handler.GetReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	s.Run("successful commit returns the joined view", func() {
		b := builder.NewReservationBuilder().WithUserID(s.userID)
		view := b.BuildReadModel()

		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), s.userID, b.VehicleID, gomock.Any()).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildDTO(), "token")

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal("2026-06-10", resp.StartDate)
		s.Equal("2026-06-15", resp.EndDate)
		s.Equal("Toyota", resp.VehicleMake)
	})

	s.Run("missing token is rejected before any store access", func() {
		// zero expectations on the mocks: the request must not reach them
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			builder.NewReservationBuilder().BuildDTO(), "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})

	s.Run("validation failures", func() {
		cases := []struct {
			name         string
			mutate       func(m map[string]any)
			expectCode   int
			expectInBody string
		}{
			{
				name:         "missing vehicle_id",
				mutate:       testutil.Field("vehicle_id", nil),
				expectCode:   http.StatusBadRequest,
				expectInBody: "Invalid request",
			},
			{
				name:         "missing start_date",
				mutate:       testutil.Field("start_date", nil),
				expectCode:   http.StatusBadRequest,
				expectInBody: "Invalid request",
			},
			{
				name:         "garbage date format",
				mutate:       testutil.Field("start_date", "June 10, 2026"),
				expectCode:   http.StatusBadRequest,
				expectInBody: "YYYY-MM-DD",
			},
			{
				name:         "start equals end",
				mutate:       testutil.Field("end_date", "2026-06-10"),
				expectCode:   http.StatusBadRequest,
				expectInBody: "before end date",
			},
			{
				name:         "start after end",
				mutate:       func(m map[string]any) { m["start_date"] = "2026-06-20"; m["end_date"] = "2026-06-10" },
				expectCode:   http.StatusBadRequest,
				expectInBody: "before end date",
			},
		}

		for _, c := range cases {
			s.Run(c.name, func() {
				body := testutil.DtoMap(s.T(), builder.NewReservationBuilder().BuildDTO(), c.mutate)
				w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
				httptest.AssertErrorResponse(s.T(), w, c.expectCode, c.expectInBody)
			})
		}
	})

	s.Run("usecase errors map to status codes", func() {
		cases := []struct {
			name         string
			err          error
			expectCode   int
			expectInBody string
		}{
			{
				name:         "vehicle not found",
				err:          commands.ErrVehicleNotFound,
				expectCode:   http.StatusNotFound,
				expectInBody: "Vehicle not found",
			},
			{
				name:         "vehicle closed for booking",
				err:          commands.ErrVehicleUnavailable,
				expectCode:   http.StatusConflict,
				expectInBody: "not open for booking",
			},
			{
				name:         "period conflict",
				err:          commands.ErrPeriodConflict,
				expectCode:   http.StatusConflict,
				expectInBody: "already reserved",
			},
			{
				name:         "database failure",
				err:          commands.ErrDatabaseOperationFailed,
				expectCode:   http.StatusInternalServerError,
				expectInBody: "Internal server error",
			},
		}

		for _, c := range cases {
			s.Run(c.name, func() {
				s.mockCommands.EXPECT().
					CreateReservation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, c.err)

				w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
					builder.NewReservationBuilder().BuildDTO(), "token")
				httptest.AssertErrorResponse(s.T(), w, c.expectCode, c.expectInBody)
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("found", func() {
		b := builder.NewReservationBuilder()
		view := b.BuildReadModel()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+b.ID.String(), nil, "token")

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
	})

	s.Run("malformed id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid reservation ID")
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, notFoundErr())

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+id.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})
}

func (s *ReservationHandlerTestSuite) TestGetUserReservations() {
	s.Run("returns caller's bookings with vehicle details", func() {
		item := builder.NewReservationBuilder().WithUserID(s.userID).BuildListItem()
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return([]*queries.ReservationListItem{item}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, "token")

		var resp []resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Require().Len(resp, 1)
		s.Equal(item.ID, resp[0].ID)
		s.Equal("Toyota", resp[0].VehicleMake)
		s.Equal("2026-06-10", resp[0].StartDate)
	})

	s.Run("no bookings yields empty list", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).Return(nil, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, "token")

		var resp []resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Empty(resp)
	})
}
