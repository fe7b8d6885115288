package vetlinkserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accountsapp "github.com/vetlink/vetlink-api/internal/domains/accounts/application"
	accountports "github.com/vetlink/vetlink-api/internal/domains/accounts/ports"
	appointmentsapp "github.com/vetlink/vetlink-api/internal/domains/appointments/application"
	appointmentdomain "github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	appointmentports "github.com/vetlink/vetlink-api/internal/domains/appointments/ports"
	petsapp "github.com/vetlink/vetlink-api/internal/domains/pets/application"
	petports "github.com/vetlink/vetlink-api/internal/domains/pets/ports"
	schedulingapp "github.com/vetlink/vetlink-api/internal/domains/scheduling/application"
	apierrors "github.com/vetlink/vetlink-api/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError converts a status and error into an RFC 7807 response.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondAppointmentError translates appointment service failures. Rejected
// transitions carry enough detail for the caller to distinguish a stale state
// from a bad request.
func respondAppointmentError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, appointmentports.ErrNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("appointment", c.Param("appointmentId")))
	case errors.Is(err, appointmentports.ErrConcurrencyConflict):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, appointmentdomain.ErrInvalidSelection),
		errors.Is(err, appointmentdomain.ErrNoSlotChosen),
		errors.Is(err, appointmentdomain.ErrMultipleSlotsChosen):
		respondProblem(c, apierrors.ErrInvalidSelection.WithDetail(err.Error()))
	case errors.Is(err, appointmentdomain.ErrInvalidTransition):
		respondProblem(c, apierrors.ErrInvalidTransition.WithDetail(err.Error()))
	case errors.Is(err, appointmentdomain.ErrActorNotAllowed):
		respondProblem(c, apierrors.ErrForbidden.WithDetail(err.Error()))
	case errors.Is(err, appointmentsapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, petsapp.ErrNotOwned), errors.Is(err, petports.ErrNotFound):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

// respondSchedulingError translates scheduling service failures.
func respondSchedulingError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, schedulingapp.ErrInvalidInput) {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
}

// respondPetError translates pet directory service failures.
func respondPetError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, petports.ErrNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("pet", c.Param("petId")))
	case errors.Is(err, petsapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

// respondUserError translates account service failures.
func respondUserError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, accountports.ErrNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("user", c.Param("username")))
	case errors.Is(err, accountsapp.ErrAuthentication):
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
	case errors.Is(err, accountsapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}
