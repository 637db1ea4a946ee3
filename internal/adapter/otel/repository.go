package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

const tracerName = "github.com/neomorfeo/licenseiq/internal/adapter/otel"

// TracingLicenseRepository wraps a domain.LicenseRepository with
// OpenTelemetry tracing. Each method creates a span with semantic
// attributes and records errors. The license repository is the hot path
// (every assignment and transition goes through it), so it is the one
// that gets the decorator.
type TracingLicenseRepository struct {
	next   domain.LicenseRepository
	tracer trace.Tracer
}

// Compile-time check: TracingLicenseRepository implements domain.LicenseRepository.
var _ domain.LicenseRepository = (*TracingLicenseRepository)(nil)

// NewTracingLicenseRepository creates a tracing decorator around the given repository.
func NewTracingLicenseRepository(next domain.LicenseRepository) *TracingLicenseRepository {
	return &TracingLicenseRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingLicenseRepository) Create(ctx context.Context, l domain.License) error {
	ctx, span := r.tracer.Start(ctx, "LicenseRepository.Create",
		trace.WithAttributes(
			attribute.String("license.id", l.ID),
			attribute.String("license.organization_id", l.OrganizationID),
			attribute.String("license.product_id", l.ProductID),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, l)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingLicenseRepository) GetByID(ctx context.Context, id string) (domain.License, error) {
	ctx, span := r.tracer.Start(ctx, "LicenseRepository.GetByID",
		trace.WithAttributes(attribute.String("license.id", id)),
	)
	defer span.End()

	license, err := r.next.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return license, err
}

func (r *TracingLicenseRepository) ListByOrganization(ctx context.Context, orgID string) ([]domain.License, error) {
	ctx, span := r.tracer.Start(ctx, "LicenseRepository.ListByOrganization",
		trace.WithAttributes(attribute.String("license.organization_id", orgID)),
	)
	defer span.End()

	licenses, err := r.next.ListByOrganization(ctx, orgID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(licenses)))
	}
	return licenses, err
}

func (r *TracingLicenseRepository) Update(ctx context.Context, l domain.License) error {
	ctx, span := r.tracer.Start(ctx, "LicenseRepository.Update",
		trace.WithAttributes(
			attribute.String("license.id", l.ID),
			attribute.String("license.status", string(l.Status)),
			attribute.Int("license.total_seats", l.TotalSeats),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, l)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingLicenseRepository) FindBlocking(ctx context.Context, orgID, productID string) (domain.License, error) {
	ctx, span := r.tracer.Start(ctx, "LicenseRepository.FindBlocking",
		trace.WithAttributes(
			attribute.String("license.organization_id", orgID),
			attribute.String("license.product_id", productID),
		),
	)
	defer span.End()

	license, err := r.next.FindBlocking(ctx, orgID, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return license, err
}
