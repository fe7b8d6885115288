//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "vetlink-api"
	ConsumerName = "clinic-portal"

	StateBaseline           = "appointments baseline"
	StateAppointmentPending = "a pending appointment exists"
	StateAppointmentMissing = "no appointment with the requested id"
)

const (
	ExampleVetID   int64 = 7
	ExampleOwnerID int64 = 42
	ExamplePetID   int64 = 1

	// PendingAppointmentID is the aggregate seeded by the provider state.
	PendingAppointmentID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	MissingAppointmentID = "00000000-0000-0000-0000-000000000404"
)

const (
	ExampleSlotStart = "2026-03-02T09:00:00Z"
	ExampleSlotEnd   = "2026-03-02T09:15:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the clinic portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
