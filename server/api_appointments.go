package vetlinkserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appointmentmapper "github.com/vetlink/vetlink-api/internal/domains/appointments/adapters/http/mapper"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/application/types"
	appointmentports "github.com/vetlink/vetlink-api/internal/domains/appointments/ports"
)

// AppointmentsAPI wires HTTP transport with the appointments bounded context.
type AppointmentsAPI struct {
	service appointmentports.Service
}

// NewAppointmentsAPI creates an AppointmentsAPI backed by the provided service.
func NewAppointmentsAPI(service appointmentports.Service) AppointmentsAPI {
	return AppointmentsAPI{service: service}
}

// Post /v1/appointments
// Submit a booking request with up to three candidate slots
func (api *AppointmentsAPI) CreateAppointment(c *gin.Context) {
	var payload appointmentmapper.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	ownerID := payload.OwnerID
	if user, ok := authenticatedUser(c); ok && user.SubjectID != 0 {
		ownerID = user.SubjectID
	}
	input := types.CreateAppointmentInput{
		VetID:          payload.VetID,
		OwnerID:        ownerID,
		PetIDs:         payload.PetIDs,
		CandidateSlots: appointmentmapper.ToSlots(payload.CandidateSlots),
	}
	created, err := api.service.Create(c.Request.Context(), input)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointmentmapper.FromAppointment(created))
}

// Get /v1/appointments/:appointmentId
// Fetch a single appointment
func (api *AppointmentsAPI) GetAppointmentById(c *gin.Context) {
	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}
	appointment, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointmentmapper.FromAppointment(appointment))
}

// Post /v1/appointments/:appointmentId/confirm
// Accept exactly one of the proposed candidate slots
func (api *AppointmentsAPI) ConfirmAppointment(c *gin.Context) {
	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}
	var payload appointmentmapper.ConfirmRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	actor, err := resolveActor(c, payload.By)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	confirmed, err := api.service.Confirm(c.Request.Context(), types.ConfirmAppointmentInput{
		ID:          id,
		By:          actor,
		ChosenSlots: appointmentmapper.ToSlots(payload.ChosenSlots),
	})
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointmentmapper.FromAppointment(confirmed))
}

// Post /v1/appointments/:appointmentId/reject
// Decline a booking request with a mandatory reason
func (api *AppointmentsAPI) RejectAppointment(c *gin.Context) {
	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}
	var payload appointmentmapper.ReasonRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	actor, err := resolveActor(c, payload.By)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	rejected, err := api.service.Reject(c.Request.Context(), types.RejectAppointmentInput{
		ID:     id,
		By:     actor,
		Reason: payload.Reason,
	})
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointmentmapper.FromAppointment(rejected))
}

// Post /v1/appointments/:appointmentId/cancel
// Withdraw a pending or confirmed appointment
func (api *AppointmentsAPI) CancelAppointment(c *gin.Context) {
	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}
	var payload appointmentmapper.ReasonRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	actor, err := resolveActor(c, payload.By)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	cancelled, err := api.service.Cancel(c.Request.Context(), types.CancelAppointmentInput{
		ID:     id,
		By:     actor,
		Reason: payload.Reason,
	})
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointmentmapper.FromAppointment(cancelled))
}

// Post /v1/appointments/:appointmentId/complete
// Mark a confirmed appointment as held
func (api *AppointmentsAPI) CompleteAppointment(c *gin.Context) {
	id, ok := parseAppointmentID(c)
	if !ok {
		return
	}
	completed, err := api.service.Complete(c.Request.Context(), id)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointmentmapper.FromAppointment(completed))
}

// Get /v1/vets/:vetId/appointments
// List the veterinarian's appointments
func (api *AppointmentsAPI) ListVetAppointments(c *gin.Context) {
	vetID, ok := parseIDParam(c, "vetId")
	if !ok {
		return
	}
	appointments, err := api.service.ListByVet(c.Request.Context(), vetID)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointmentmapper.FromAppointments(appointments))
}

// Get /v1/owners/:ownerId/appointments
// List the pet owner's appointments
func (api *AppointmentsAPI) ListOwnerAppointments(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "ownerId")
	if !ok {
		return
	}
	appointments, err := api.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointmentmapper.FromAppointments(appointments))
}

func parseAppointmentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("appointmentId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}
