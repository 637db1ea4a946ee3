package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// EventWorker processes ledger event jobs from the River queue.
// For now it logs the event; future versions will dispatch to
// webhooks or notification systems for approvers and client admins.
type EventWorker struct {
	river.WorkerDefaults[EventJobArgs]
}

// Work processes a single event job.
func (w *EventWorker) Work(ctx context.Context, job *river.Job[EventJobArgs]) error {
	slog.InfoContext(ctx, "processing ledger event",
		"event", job.Args.Event,
		"license_id", job.Args.LicenseID,
		"organization_id", job.Args.OrganizationID,
		"status", job.Args.Status,
		"used_seats", job.Args.UsedSeats,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}
