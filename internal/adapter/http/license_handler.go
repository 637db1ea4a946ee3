package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/licenseiq/internal/app"
	"github.com/neomorfeo/licenseiq/internal/domain"
)

// --- Create License (direct, approval authority) ---

type CreateLicenseInput struct {
	Body struct {
		OrganizationID string `json:"organization_id" minLength:"1" doc:"Owning organization"`
		ProductID      string `json:"product_id" minLength:"1" doc:"Licensed product"`
		LicenseType    string `json:"license_type" enum:"seat,unlimited" doc:"Capacity model"`
		TotalSeats     int    `json:"total_seats,omitempty" doc:"Seat capacity (seat licenses)"`
		StartDate      string `json:"start_date,omitempty" doc:"Validity window start (YYYY-MM-DD)"`
		EndDate        string `json:"end_date,omitempty" doc:"Validity window end (YYYY-MM-DD)"`
		InitialStatus  string `json:"initial_status,omitempty" enum:"requested,active" default:"active" doc:"Initial lifecycle state"`
	}
}

type CreateLicenseOutput struct {
	Body LicenseResponse
}

// --- Get / List ---

type GetLicenseInput struct {
	ID string `path:"id" doc:"License ID"`
}

type GetLicenseOutput struct {
	Body LicenseResponse
}

type ListLicensesInput struct {
	OrganizationID string `path:"id" doc:"Organization ID"`
}

type ListLicensesOutput struct {
	Body []LicenseResponse
}

// --- Update ---

type UpdateLicenseInput struct {
	ID   string `path:"id" doc:"License ID"`
	Body struct {
		LicenseType *string `json:"license_type,omitempty" enum:"seat,unlimited" doc:"Capacity model"`
		TotalSeats  *int    `json:"total_seats,omitempty" doc:"Seat capacity"`
		StartDate   string  `json:"start_date,omitempty" doc:"Validity window start (YYYY-MM-DD)"`
		EndDate     string  `json:"end_date,omitempty" doc:"Validity window end (YYYY-MM-DD)"`
	}
}

type UpdateLicenseOutput struct {
	Body LicenseResponse
}

// --- Transition ---

type TransitionLicenseInput struct {
	ID   string `path:"id" doc:"License ID"`
	Body struct {
		Event string `json:"event" doc:"Lifecycle event to trigger" enum:"approve,deny,suspend,reinstate,deactivate,reactivate,expire"`
	}
}

type TransitionLicenseOutput struct {
	Body LicenseResponse
}

// --- Request workflow ---

type RequestLicenseInput struct {
	Body struct {
		OrganizationID string `json:"organization_id" minLength:"1" doc:"Requesting organization"`
		ProductID      string `json:"product_id" minLength:"1" doc:"Requested product"`
		RequestedBy    string `json:"requested_by,omitempty" doc:"Requesting user (defaults to the acting principal)"`
	}
}

type RequestLicenseOutput struct {
	Body LicenseResponse
}

type ApproveLicenseInput struct {
	ID   string `path:"id" doc:"License ID"`
	Body struct {
		TotalSeats *int   `json:"total_seats,omitempty" doc:"Seat allocation (defaults to the configured policy default)"`
		StartDate  string `json:"start_date,omitempty" doc:"Validity window start (YYYY-MM-DD)"`
		EndDate    string `json:"end_date,omitempty" doc:"Validity window end (YYYY-MM-DD)"`
	}
}

type ApproveLicenseOutput struct {
	Body LicenseResponse
}

type DenyLicenseInput struct {
	ID   string `path:"id" doc:"License ID"`
	Body struct {
		Reason string `json:"reason,omitempty" doc:"Denial reason"`
	}
}

type DenyLicenseOutput struct {
	Body LicenseResponse
}

func registerLicenses(api huma.API, ledger *app.LicenseService, requests *app.RequestService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-license",
		Method:      http.MethodPost,
		Path:        "/api/v1/licenses",
		Summary:     "Create a license directly",
		Tags:        []string{"Licenses"},
	}, func(ctx context.Context, input *CreateLicenseInput) (*CreateLicenseOutput, error) {
		start, err := parseDate("start_date", input.Body.StartDate)
		if err != nil {
			return nil, toHumaError(err)
		}
		end, err := parseDate("end_date", input.Body.EndDate)
		if err != nil {
			return nil, toHumaError(err)
		}

		license, err := ledger.Create(ctx, app.CreateLicenseParams{
			OrganizationID: input.Body.OrganizationID,
			ProductID:      input.Body.ProductID,
			Type:           domain.LicenseType(input.Body.LicenseType),
			TotalSeats:     input.Body.TotalSeats,
			StartDate:      start,
			EndDate:        end,
			InitialStatus:  domain.Status(input.Body.InitialStatus),
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateLicenseOutput{Body: toLicenseResponse(license)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-license",
		Method:      http.MethodGet,
		Path:        "/api/v1/licenses/{id}",
		Summary:     "Get a license by ID",
		Tags:        []string{"Licenses"},
	}, func(ctx context.Context, input *GetLicenseInput) (*GetLicenseOutput, error) {
		license, err := ledger.Get(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetLicenseOutput{Body: toLicenseResponse(license)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-organization-licenses",
		Method:      http.MethodGet,
		Path:        "/api/v1/organizations/{id}/licenses",
		Summary:     "List an organization's licenses",
		Tags:        []string{"Licenses"},
	}, func(ctx context.Context, input *ListLicensesInput) (*ListLicensesOutput, error) {
		licenses, err := ledger.ListByOrganization(ctx, input.OrganizationID)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]LicenseResponse, len(licenses))
		for i, l := range licenses {
			resp[i] = toLicenseResponse(l)
		}
		return &ListLicensesOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-license",
		Method:      http.MethodPatch,
		Path:        "/api/v1/licenses/{id}",
		Summary:     "Update a license's capacity configuration",
		Tags:        []string{"Licenses"},
	}, func(ctx context.Context, input *UpdateLicenseInput) (*UpdateLicenseOutput, error) {
		start, err := parseDate("start_date", input.Body.StartDate)
		if err != nil {
			return nil, toHumaError(err)
		}
		end, err := parseDate("end_date", input.Body.EndDate)
		if err != nil {
			return nil, toHumaError(err)
		}

		patch := app.UpdateLicensePatch{
			TotalSeats: input.Body.TotalSeats,
			StartDate:  start,
			EndDate:    end,
		}
		if input.Body.LicenseType != nil {
			typ := domain.LicenseType(*input.Body.LicenseType)
			patch.Type = &typ
		}

		license, err := ledger.Update(ctx, input.ID, patch)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UpdateLicenseOutput{Body: toLicenseResponse(license)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transition-license",
		Method:      http.MethodPost,
		Path:        "/api/v1/licenses/{id}/events",
		Summary:     "Trigger a lifecycle event",
		Tags:        []string{"Licenses"},
	}, func(ctx context.Context, input *TransitionLicenseInput) (*TransitionLicenseOutput, error) {
		license, err := ledger.Transition(ctx, input.ID, domain.Event(input.Body.Event))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &TransitionLicenseOutput{Body: toLicenseResponse(license)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "request-license",
		Method:      http.MethodPost,
		Path:        "/api/v1/license-requests",
		Summary:     "Request a license for a product",
		Tags:        []string{"Requests"},
	}, func(ctx context.Context, input *RequestLicenseInput) (*RequestLicenseOutput, error) {
		license, err := requests.RequestLicense(ctx, input.Body.OrganizationID, input.Body.ProductID, input.Body.RequestedBy)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &RequestLicenseOutput{Body: toLicenseResponse(license)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "approve-license",
		Method:      http.MethodPost,
		Path:        "/api/v1/licenses/{id}/approve",
		Summary:     "Approve a requested license",
		Tags:        []string{"Requests"},
	}, func(ctx context.Context, input *ApproveLicenseInput) (*ApproveLicenseOutput, error) {
		start, err := parseDate("start_date", input.Body.StartDate)
		if err != nil {
			return nil, toHumaError(err)
		}
		end, err := parseDate("end_date", input.Body.EndDate)
		if err != nil {
			return nil, toHumaError(err)
		}

		license, err := requests.Approve(ctx, input.ID, app.ApproveParams{
			TotalSeats: input.Body.TotalSeats,
			StartDate:  start,
			EndDate:    end,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ApproveLicenseOutput{Body: toLicenseResponse(license)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "deny-license",
		Method:      http.MethodPost,
		Path:        "/api/v1/licenses/{id}/deny",
		Summary:     "Deny a requested license",
		Tags:        []string{"Requests"},
	}, func(ctx context.Context, input *DenyLicenseInput) (*DenyLicenseOutput, error) {
		license, err := requests.Deny(ctx, input.ID, input.Body.Reason)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &DenyLicenseOutput{Body: toLicenseResponse(license)}, nil
	})
}
