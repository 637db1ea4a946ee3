package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/licenseiq/internal/app"
	"github.com/neomorfeo/licenseiq/internal/domain"
)

// --- Organizations ---

type CreateOrganizationInput struct {
	Body struct {
		TenantID string `json:"tenant_id" minLength:"1" maxLength:"100" doc:"Owning tenant identifier"`
		Name     string `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Status   string `json:"status,omitempty" enum:"active,trial,expired,cancelled" doc:"Subscription state (defaults to active)"`
	}
}

type CreateOrganizationOutput struct {
	Body OrganizationResponse
}

type GetOrganizationInput struct {
	ID string `path:"id" doc:"Organization ID"`
}

type GetOrganizationOutput struct {
	Body OrganizationResponse
}

type ListOrganizationsInput struct {
	Status   string `query:"status" required:"false" doc:"Filter by status"`
	TenantID string `query:"tenant_id" required:"false" doc:"Filter by tenant"`
	Limit    int    `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset   int    `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type ListOrganizationsOutput struct {
	Body []OrganizationResponse
}

// --- Products ---

type CreateProductInput struct {
	Body struct {
		Code        string `json:"code" minLength:"1" maxLength:"100" pattern:"^[a-z0-9]+(?:-[a-z0-9]+)*$" doc:"Stable SKU code (lowercase, hyphens)"`
		Name        string `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Description string `json:"description,omitempty" doc:"Product description"`
		Status      string `json:"status,omitempty" enum:"active,inactive" doc:"Availability state (defaults to active)"`
	}
}

type CreateProductOutput struct {
	Body ProductResponse
}

type GetProductInput struct {
	Code string `path:"code" doc:"Product SKU code"`
}

type GetProductOutput struct {
	Body ProductResponse
}

type ListProductsInput struct {
	Status string `query:"status" required:"false" doc:"Filter by status"`
	Limit  int    `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset int    `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type ListProductsOutput struct {
	Body []ProductResponse
}

func registerCatalog(api huma.API, svc *app.CatalogService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-organization",
		Method:      http.MethodPost,
		Path:        "/api/v1/organizations",
		Summary:     "Register an organization",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *CreateOrganizationInput) (*CreateOrganizationOutput, error) {
		org, err := svc.CreateOrganization(ctx, input.Body.TenantID, input.Body.Name, domain.OrgStatus(input.Body.Status))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateOrganizationOutput{Body: toOrganizationResponse(org)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-organization",
		Method:      http.MethodGet,
		Path:        "/api/v1/organizations/{id}",
		Summary:     "Get an organization by ID",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *GetOrganizationInput) (*GetOrganizationOutput, error) {
		org, err := svc.GetOrganization(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetOrganizationOutput{Body: toOrganizationResponse(org)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-organizations",
		Method:      http.MethodGet,
		Path:        "/api/v1/organizations",
		Summary:     "List organizations",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *ListOrganizationsInput) (*ListOrganizationsOutput, error) {
		filter := domain.OrgFilter{
			TenantID: input.TenantID,
			Limit:    input.Limit,
			Offset:   input.Offset,
		}
		if input.Status != "" {
			s := domain.OrgStatus(input.Status)
			filter.Status = &s
		}

		orgs, err := svc.ListOrganizations(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]OrganizationResponse, len(orgs))
		for i, o := range orgs {
			resp[i] = toOrganizationResponse(o)
		}
		return &ListOrganizationsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-product",
		Method:      http.MethodPost,
		Path:        "/api/v1/products",
		Summary:     "Register a product",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *CreateProductInput) (*CreateProductOutput, error) {
		product, err := svc.CreateProduct(ctx, input.Body.Code, input.Body.Name, input.Body.Description, domain.ProductStatus(input.Body.Status))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateProductOutput{Body: toProductResponse(product)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{code}",
		Summary:     "Get a product by SKU code",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *GetProductInput) (*GetProductOutput, error) {
		product, err := svc.GetProductByCode(ctx, input.Code)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetProductOutput{Body: toProductResponse(product)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List products",
		Tags:        []string{"Catalog"},
	}, func(ctx context.Context, input *ListProductsInput) (*ListProductsOutput, error) {
		filter := domain.ProductFilter{
			Limit:  input.Limit,
			Offset: input.Offset,
		}
		if input.Status != "" {
			s := domain.ProductStatus(input.Status)
			filter.Status = &s
		}

		products, err := svc.ListProducts(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]ProductResponse, len(products))
		for i, p := range products {
			resp[i] = toProductResponse(p)
		}
		return &ListProductsOutput{Body: resp}, nil
	})
}
