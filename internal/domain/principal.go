package domain

import "context"

// Role is the authorization scope of an acting principal.
type Role string

const (
	// RoleClientAdmin may request licenses and manage seat assignments
	// for their own organization.
	RoleClientAdmin Role = "client_admin"
	// RoleApprover may move licenses out of the requested status.
	RoleApprover Role = "approver"
)

// Principal identifies the acting user. Token acquisition and verification
// happen upstream; the ledger consumes the resolved identity only.
type Principal struct {
	UserID string
	Role   Role
}

// PrincipalResolver extracts the acting principal from a request context.
type PrincipalResolver interface {
	Resolve(ctx context.Context) (Principal, error)
}
