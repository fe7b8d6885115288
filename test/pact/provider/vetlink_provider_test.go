//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/vetlink/vetlink-api/test/pact"

	accountsmemory "github.com/vetlink/vetlink-api/internal/domains/accounts/adapters/memory"
	accountsapp "github.com/vetlink/vetlink-api/internal/domains/accounts/application"
	appointmentsmemory "github.com/vetlink/vetlink-api/internal/domains/appointments/adapters/memory"
	appointmentsobs "github.com/vetlink/vetlink-api/internal/domains/appointments/adapters/observability"
	appointmentsapp "github.com/vetlink/vetlink-api/internal/domains/appointments/application"
	appointmentdomain "github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	petsmemory "github.com/vetlink/vetlink-api/internal/domains/pets/adapters/memory"
	petsapp "github.com/vetlink/vetlink-api/internal/domains/pets/application"
	schedulingmemory "github.com/vetlink/vetlink-api/internal/domains/scheduling/adapters/memory"
	schedulingapp "github.com/vetlink/vetlink-api/internal/domains/scheduling/application"
	"github.com/vetlink/vetlink-api/internal/shared/timeslot"
	vetlinkserver "github.com/vetlink/vetlink-api/server"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestVetlinkProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
		pacttest.StateAppointmentPending: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedPendingAppointment(t)
			}
			return nil, nil
		},
		pacttest.StateAppointmentMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *appointmentsmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	appointmentRepo := appointmentsmemory.NewRepository()
	appointmentService := appointmentsobs.New(appointmentsapp.NewService(appointmentRepo))
	schedulingService := schedulingapp.NewService(schedulingmemory.NewRepository())
	petService := petsapp.NewService(petsmemory.NewRepository())
	accountService := accountsapp.NewService(accountsmemory.NewRepository(), accountsmemory.NewSessionStore())

	handlers := vetlinkserver.ApiHandleFunctions{
		SchedulingAPI:   vetlinkserver.NewSchedulingAPI(schedulingService),
		AppointmentsAPI: vetlinkserver.NewAppointmentsAPI(appointmentService),
		PetAPI:          vetlinkserver.NewPetAPI(petService),
		UserAPI:         vetlinkserver.NewUserAPI(accountService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = vetlinkserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   appointmentRepo,
		server: server,
	}
}

func (a *contractProviderApp) seedPendingAppointment(t testing.TB) {
	t.Helper()
	start, err := time.Parse(time.RFC3339, pacttest.ExampleSlotStart)
	require.NoError(t, err)
	end, err := time.Parse(time.RFC3339, pacttest.ExampleSlotEnd)
	require.NoError(t, err)

	appointment, err := appointmentdomain.NewAppointment(
		uuid.MustParse(pacttest.PendingAppointmentID),
		pacttest.ExampleVetID,
		pacttest.ExampleOwnerID,
		[]int64{pacttest.ExamplePetID},
		[]timeslot.Slot{{Start: start, End: end}},
		time.Now().UTC(),
	)
	require.NoError(t, err)
	_, err = a.repo.Create(context.Background(), appointment)
	require.NoError(t, err)
}
