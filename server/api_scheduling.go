package vetlinkserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	schedulemapper "github.com/vetlink/vetlink-api/internal/domains/scheduling/adapters/http/mapper"
	schedulingports "github.com/vetlink/vetlink-api/internal/domains/scheduling/ports"
)

// SchedulingAPI wires HTTP transport with the scheduling bounded context.
type SchedulingAPI struct {
	service schedulingports.Service
}

// NewSchedulingAPI creates a SchedulingAPI backed by the provided service.
func NewSchedulingAPI(service schedulingports.Service) SchedulingAPI {
	return SchedulingAPI{service: service}
}

// Put /v1/vets/:vetId/availability
// Replace the veterinarian's recurring weekly availability
func (api *SchedulingAPI) SetAvailability(c *gin.Context) {
	vetID, ok := parseIDParam(c, "vetId")
	if !ok {
		return
	}
	var payload schedulemapper.Schedule
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	entries, err := schedulemapper.ToWeeklyAvailability(payload.Windows)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.SetSchedule(c.Request.Context(), vetID, entries)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedulemapper.FromWeeklyAvailability(vetID, saved))
}

// Get /v1/vets/:vetId/availability
// Fetch the veterinarian's recurring weekly availability
func (api *SchedulingAPI) GetAvailability(c *gin.Context) {
	vetID, ok := parseIDParam(c, "vetId")
	if !ok {
		return
	}
	entries, err := api.service.GetSchedule(c.Request.Context(), vetID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedulemapper.FromWeeklyAvailability(vetID, entries))
}

// Get /v1/vets/:vetId/bookable-dates
// Expand the weekly schedule over a booking window of calendar days
func (api *SchedulingAPI) GetBookableDates(c *gin.Context) {
	vetID, ok := parseIDParam(c, "vetId")
	if !ok {
		return
	}
	windowStart := time.Now()
	if raw := c.Query("start"); raw != "" {
		parsed, err := schedulemapper.ParseDate(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		windowStart = parsed
	}
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		days = parsed
	}
	window, err := api.service.BookableDates(c.Request.Context(), vetID, windowStart, days)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vetId": vetID, "dates": schedulemapper.FromDayAvailability(window)})
}

// Get /v1/vets/:vetId/slots
// List the bookable time slots on a calendar date
func (api *SchedulingAPI) GetSlots(c *gin.Context) {
	vetID, ok := parseIDParam(c, "vetId")
	if !ok {
		return
	}
	date, err := schedulemapper.ParseDate(c.Query("date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	slots, err := api.service.SlotsForDate(c.Request.Context(), vetID, date)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vetId": vetID, "date": c.Query("date"), "slots": schedulemapper.FromSlots(slots)})
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}
