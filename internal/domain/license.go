package domain

import "time"

// LicenseType determines how seat capacity applies to a license.
type LicenseType string

const (
	TypeSeat      LicenseType = "seat"
	TypeUnlimited LicenseType = "unlimited"
)

// Status represents the lifecycle state of a license.
type Status string

const (
	StatusRequested Status = "requested"
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
	StatusExpired   Status = "expired"
	StatusDenied    Status = "denied"
)

// Event represents an action that triggers a state transition.
type Event string

const (
	EventApprove    Event = "approve"
	EventDeny       Event = "deny"
	EventSuspend    Event = "suspend"
	EventReinstate  Event = "reinstate"
	EventDeactivate Event = "deactivate"
	EventReactivate Event = "reactivate"
	EventExpire     Event = "expire"
)

// Notification-only events. These never appear in Transitions: they report
// ledger activity that does not move the lifecycle state machine.
const (
	EventRequested    Event = "requested"
	EventSeatAssigned Event = "seat_assigned"
	EventSeatRevoked  Event = "seat_revoked"
)

// Transition defines a valid state change: an event moves a license from Src to Dst.
type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}

// Transitions defines all valid state changes in the license lifecycle.
// Expired and denied are terminal: no event leads out of them.
// This is domain knowledge consumed by the FSM adapter.
var Transitions = []Transition{
	{Event: EventApprove, Src: StatusRequested, Dst: StatusActive},
	{Event: EventDeny, Src: StatusRequested, Dst: StatusDenied},
	{Event: EventSuspend, Src: StatusActive, Dst: StatusSuspended},
	{Event: EventReinstate, Src: StatusSuspended, Dst: StatusActive},
	{Event: EventDeactivate, Src: StatusActive, Dst: StatusInactive},
	{Event: EventReactivate, Src: StatusInactive, Dst: StatusActive},
	{Event: EventExpire, Src: StatusActive, Dst: StatusExpired},
	{Event: EventExpire, Src: StatusSuspended, Dst: StatusExpired},
}

// License is the entitlement record binding an organization to a product
// with a seat capacity and a lifecycle status. UsedSeats is owned by the
// license: only the assignment service may change it, and only through
// the ledger's transactional boundary.
type License struct {
	ID             string
	OrganizationID string
	ProductID      string
	Type           LicenseType
	TotalSeats     int
	UsedSeats      int
	Status         Status
	StartDate      *time.Time
	EndDate        *time.Time
	RequestedBy    string
	DenialReason   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewLicense creates a license with zero used seats.
func NewLicense(id, orgID, productID string, typ LicenseType, totalSeats int, start, end *time.Time, status Status, now time.Time) License {
	now = now.UTC()
	return License{
		ID:             id,
		OrganizationID: orgID,
		ProductID:      productID,
		Type:           typ,
		TotalSeats:     totalSeats,
		UsedSeats:      0,
		Status:         status,
		StartDate:      start,
		EndDate:        end,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// WithinWindow reports whether now falls inside the license's validity
// window. A license with neither date set is always within its window.
func (l License) WithinWindow(now time.Time) bool {
	if l.StartDate != nil && now.Before(*l.StartDate) {
		return false
	}
	if l.EndDate != nil && now.After(*l.EndDate) {
		return false
	}
	return true
}

// HasCapacity reports whether one more seat can be consumed. Unlimited
// licenses always have capacity; a seat license with TotalSeats zero
// permits no concurrent users.
func (l License) HasCapacity() bool {
	if l.Type == TypeUnlimited {
		return true
	}
	return l.UsedSeats < l.TotalSeats
}

// Validate checks the license's structural invariants: known type and
// status, non-negative seat counts, used within total for seat licenses,
// and an ordered date window when both ends are set.
func (l License) Validate() error {
	switch l.Type {
	case TypeSeat, TypeUnlimited:
	default:
		return &ValidationError{Field: "licenseType", Reason: "must be \"seat\" or \"unlimited\""}
	}

	switch l.Status {
	case StatusRequested, StatusActive, StatusInactive, StatusSuspended, StatusExpired, StatusDenied:
	default:
		return &ValidationError{Field: "status", Reason: "unknown status"}
	}

	if l.TotalSeats < 0 {
		return &ValidationError{Field: "totalSeats", Reason: "must not be negative"}
	}
	if l.UsedSeats < 0 {
		return &ValidationError{Field: "usedSeats", Reason: "must not be negative"}
	}

	if l.Type == TypeSeat && l.UsedSeats > l.TotalSeats {
		return &CapacityError{LicenseID: l.ID, TotalSeats: l.TotalSeats, UsedSeats: l.UsedSeats}
	}

	if l.StartDate != nil && l.EndDate != nil && l.EndDate.Before(*l.StartDate) {
		return &ValidationError{Field: "endDate", Reason: "must not be before startDate"}
	}

	return nil
}
