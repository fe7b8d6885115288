package vetlinkserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route defines the parameters for a single API endpoint.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is a collection of defined api endpoints.
type Routes []Route

// ApiHandleFunctions groups the per-context HTTP handlers wired into the router.
type ApiHandleFunctions struct {
	SchedulingAPI   SchedulingAPI
	AppointmentsAPI AppointmentsAPI
	PetAPI          PetAPI
	UserAPI         UserAPI
}

// NewRouter returns a new router with all API routes attached.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	for _, mw := range middleware {
		if mw != nil {
			router.Use(mw)
		}
	}
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine attaches the API routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		{"SetAvailability", http.MethodPut, "/v1/vets/:vetId/availability", handleFunctions.SchedulingAPI.SetAvailability},
		{"GetAvailability", http.MethodGet, "/v1/vets/:vetId/availability", handleFunctions.SchedulingAPI.GetAvailability},
		{"GetBookableDates", http.MethodGet, "/v1/vets/:vetId/bookable-dates", handleFunctions.SchedulingAPI.GetBookableDates},
		{"GetSlots", http.MethodGet, "/v1/vets/:vetId/slots", handleFunctions.SchedulingAPI.GetSlots},

		{"CreateAppointment", http.MethodPost, "/v1/appointments", handleFunctions.AppointmentsAPI.CreateAppointment},
		{"GetAppointmentById", http.MethodGet, "/v1/appointments/:appointmentId", handleFunctions.AppointmentsAPI.GetAppointmentById},
		{"ConfirmAppointment", http.MethodPost, "/v1/appointments/:appointmentId/confirm", handleFunctions.AppointmentsAPI.ConfirmAppointment},
		{"RejectAppointment", http.MethodPost, "/v1/appointments/:appointmentId/reject", handleFunctions.AppointmentsAPI.RejectAppointment},
		{"CancelAppointment", http.MethodPost, "/v1/appointments/:appointmentId/cancel", handleFunctions.AppointmentsAPI.CancelAppointment},
		{"CompleteAppointment", http.MethodPost, "/v1/appointments/:appointmentId/complete", handleFunctions.AppointmentsAPI.CompleteAppointment},
		{"ListVetAppointments", http.MethodGet, "/v1/vets/:vetId/appointments", handleFunctions.AppointmentsAPI.ListVetAppointments},
		{"ListOwnerAppointments", http.MethodGet, "/v1/owners/:ownerId/appointments", handleFunctions.AppointmentsAPI.ListOwnerAppointments},

		{"AddPet", http.MethodPost, "/v1/pets", handleFunctions.PetAPI.AddPet},
		{"GetPetById", http.MethodGet, "/v1/pets/:petId", handleFunctions.PetAPI.GetPetById},
		{"UpdatePet", http.MethodPut, "/v1/pets/:petId", handleFunctions.PetAPI.UpdatePet},
		{"DeletePet", http.MethodDelete, "/v1/pets/:petId", handleFunctions.PetAPI.DeletePet},
		{"ListOwnerPets", http.MethodGet, "/v1/owners/:ownerId/pets", handleFunctions.PetAPI.ListOwnerPets},

		{"CreateUser", http.MethodPost, "/v1/users", handleFunctions.UserAPI.CreateUser},
		{"LoginUser", http.MethodGet, "/v1/users/login", handleFunctions.UserAPI.LoginUser},
		{"LogoutUser", http.MethodGet, "/v1/users/logout", handleFunctions.UserAPI.LogoutUser},
		{"GetUserByName", http.MethodGet, "/v1/users/:username", handleFunctions.UserAPI.GetUserByName},
		{"UpdateUser", http.MethodPut, "/v1/users/:username", handleFunctions.UserAPI.UpdateUser},
		{"DeleteUser", http.MethodDelete, "/v1/users/:username", handleFunctions.UserAPI.DeleteUser},
	}
}

func defaultFunc(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "not implemented"})
}
