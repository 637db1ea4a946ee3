package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/licenseiq/internal/app"
)

// --- Assign ---

type AssignSeatInput struct {
	LicenseID string `path:"id" doc:"License ID"`
	Body      struct {
		OrganizationID string `json:"organization_id" minLength:"1" doc:"Owning organization"`
		UserID         string `json:"user_id" minLength:"1" doc:"User to assign"`
	}
}

type AssignSeatOutput struct {
	Body AssignmentResponse
}

// --- Revoke ---

type RevokeSeatInput struct {
	LicenseID string `path:"id" doc:"License ID"`
	UserID    string `path:"userId" doc:"Assigned user"`
}

type RevokeSeatOutput struct{}

// --- List ---

type ListAssignmentsInput struct {
	OrganizationID string `path:"id" doc:"Organization ID"`
}

type ListAssignmentsOutput struct {
	Body []AssignmentResponse
}

func registerAssignments(api huma.API, svc *app.AssignmentService) {
	huma.Register(api, huma.Operation{
		OperationID: "assign-seat",
		Method:      http.MethodPost,
		Path:        "/api/v1/licenses/{id}/assignments",
		Summary:     "Assign a user to a license",
		Tags:        []string{"Assignments"},
	}, func(ctx context.Context, input *AssignSeatInput) (*AssignSeatOutput, error) {
		assignment, err := svc.Assign(ctx, input.Body.OrganizationID, input.Body.UserID, input.LicenseID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &AssignSeatOutput{Body: toAssignmentResponse(assignment)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "revoke-seat",
		Method:        http.MethodDelete,
		Path:          "/api/v1/licenses/{id}/assignments/{userId}",
		Summary:       "Revoke a user's assignment",
		Tags:          []string{"Assignments"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *RevokeSeatInput) (*RevokeSeatOutput, error) {
		if err := svc.Revoke(ctx, input.UserID, input.LicenseID); err != nil {
			return nil, toHumaError(err)
		}
		return &RevokeSeatOutput{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-organization-assignments",
		Method:      http.MethodGet,
		Path:        "/api/v1/organizations/{id}/assignments",
		Summary:     "List an organization's assignments",
		Tags:        []string{"Assignments"},
	}, func(ctx context.Context, input *ListAssignmentsInput) (*ListAssignmentsOutput, error) {
		assignments, err := svc.ListByOrganization(ctx, input.OrganizationID)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]AssignmentResponse, len(assignments))
		for i, a := range assignments {
			resp[i] = toAssignmentResponse(a)
		}
		return &ListAssignmentsOutput{Body: resp}, nil
	})
}
