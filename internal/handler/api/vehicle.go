package api

import (
	"errors"
	"net/http"

	"fleet-rental/internal/domain/reservation"
	reqdto "fleet-rental/internal/handler/dto/request"
	resdto "fleet-rental/internal/handler/dto/response"
	"fleet-rental/internal/usecase/commands"
	"fleet-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleCommands commands.VehicleCommands
	vehicleQueries  queries.VehicleQueries
}

func NewVehicleHandler(
	vehicleCommands commands.VehicleCommands,
	vehicleQueries queries.VehicleQueries,
) *VehicleHandler {
	return &VehicleHandler{
		vehicleCommands: vehicleCommands,
		vehicleQueries:  vehicleQueries,
	}
}

// @Summary Add vehicle
// @Description Register a new vehicle in the fleet (admin only)
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateVehicleRequest true "Vehicle attributes"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /vehicles [post]
func (h *VehicleHandler) AddVehicle(c *gin.Context) {
	var req reqdto.CreateVehicleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.vehicleCommands.AddVehicle(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidVehicle):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid vehicle attributes",
			})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Search available vehicles
// @Description List vehicles free for the whole requested date range
// @Tags vehicles
// @Produce json
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailableVehiclesResponse
// @Failure 400 {object} map[string]string
// @Router /vehicles/available [get]
func (h *VehicleHandler) FindAvailable(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "start_date and end_date are required",
		})
		return
	}

	period, err := query.ToPeriod()
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrUnparsableDate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Dates must use YYYY-MM-DD format",
			})
		default:
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Start date must be before end date",
			})
		}
		return
	}

	views, err := h.vehicleQueries.FindAvailable(c.Request.Context(), period)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	// No free vehicles is an ordinary answer, not an error.
	vehicles, err := resdto.FromVehicleViews(views)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.AvailableVehiclesResponse{
		StartDate: period.Start().Format("2006-01-02"),
		EndDate:   period.End().Format("2006-01-02"),
		Vehicles:  vehicles,
	})
}

// @Summary List vehicles
// @Description List every vehicle in the fleet
// @Tags vehicles
// @Produce json
// @Success 200 {array} resdto.VehicleResponse
// @Router /vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	views, err := h.vehicleQueries.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	vehicles, err := resdto.FromVehicleViews(views)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}
