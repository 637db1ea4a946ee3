package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// EventJobArgs carries the data needed to process a ledger event
// asynchronously. River serializes this as JSON into its job queue table.
// It includes a snapshot of the license at the time the event was
// published, so the worker never needs to query the database.
type EventJobArgs struct {
	Event          string `json:"event"`
	LicenseID      string `json:"license_id"`
	OrganizationID string `json:"organization_id"`
	ProductID      string `json:"product_id"`
	LicenseType    string `json:"license_type"`
	TotalSeats     int    `json:"total_seats"`
	UsedSeats      int    `json:"used_seats"`
	Status         string `json:"status"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (EventJobArgs) Kind() string { return "license.event" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a ledger event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.Event, license domain.License) error {
	_, err := p.client.Insert(ctx, EventJobArgs{
		Event:          string(event),
		LicenseID:      license.ID,
		OrganizationID: license.OrganizationID,
		ProductID:      license.ProductID,
		LicenseType:    string(license.Type),
		TotalSeats:     license.TotalSeats,
		UsedSeats:      license.UsedSeats,
		Status:         string(license.Status),
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing event job: %w", err)
	}
	return nil
}
