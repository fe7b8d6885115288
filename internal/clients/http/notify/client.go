package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vetlink/vetlink-api/internal/domains/appointments/domain"
	"github.com/vetlink/vetlink-api/internal/domains/appointments/ports"
)

var _ ports.Notifier = (*Client)(nil)

// Client posts appointment transitions to an external notification dispatcher
// as JSON webhooks. The dispatcher owns fan-out to both actors; this client
// only reports the new state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient instantiates the webhook client with sane defaults.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("notification webhook URL is required")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// appointmentEvent is the webhook payload describing a transition outcome.
type appointmentEvent struct {
	AppointmentID string     `json:"appointmentId"`
	VetID         int64      `json:"vetId"`
	OwnerID       int64      `json:"ownerId"`
	Status        string     `json:"status"`
	Reason        string     `json:"reason,omitempty"`
	ActedBy       string     `json:"actedBy,omitempty"`
	SlotStart     *time.Time `json:"slotStart,omitempty"`
	SlotEnd       *time.Time `json:"slotEnd,omitempty"`
	OccurredAt    time.Time  `json:"occurredAt"`
}

// AppointmentChanged posts the transition to the dispatcher. Errors are
// returned for logging but callers treat dispatch as fire-and-forget.
func (c *Client) AppointmentChanged(ctx context.Context, appointment *domain.Appointment) error {
	if c == nil || c.httpClient == nil {
		return errors.New("notification client not configured")
	}

	event := toEvent(appointment)
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/appointment-events", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "notification dispatch failed",
			slog.String("appointment.id", event.AppointmentID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("call notification dispatcher: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "notification dispatcher rejected event",
			slog.String("appointment.id", event.AppointmentID),
			slog.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("notification dispatcher returned %s", resp.Status)
	}
	c.logger.LogAttrs(ctx, slog.LevelInfo, "notification dispatched",
		slog.String("appointment.id", event.AppointmentID),
		slog.String("appointment.status", event.Status),
	)
	return nil
}

func toEvent(appointment *domain.Appointment) appointmentEvent {
	event := appointmentEvent{
		AppointmentID: appointment.ID.String(),
		VetID:         appointment.VetID,
		OwnerID:       appointment.OwnerID,
		Status:        string(appointment.Status),
		OccurredAt:    time.Now().UTC(),
	}
	if c := appointment.Confirmation; c != nil {
		start, end := c.Slot.Start, c.Slot.End
		event.SlotStart, event.SlotEnd = &start, &end
		event.OccurredAt = c.At
	}
	if r := appointment.Rejection; r != nil {
		event.Reason = r.Reason
		event.OccurredAt = r.At
	}
	if c := appointment.Cancellation; c != nil {
		event.Reason = c.Reason
		event.ActedBy = string(c.By)
		event.OccurredAt = c.At
	}
	if appointment.Status == domain.StatusCompleted && !appointment.CompletedAt.IsZero() {
		event.OccurredAt = appointment.CompletedAt
	}
	return event
}
