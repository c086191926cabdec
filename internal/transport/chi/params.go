package chi

import (
	"fmt"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// SearchParams are the query parameters of GET /products.
type SearchParams struct {
	Q        *string
	Category *string
	Sort     *string
	Limit    *int
}

// RelatedParams are the query parameters of GET /products/{id}/related.
type RelatedParams struct {
	Limit *int
}

// RegionParams are the query parameters of GET /regions/detect.
type RegionParams struct {
	Locale *string
	TZ     *string
	Lat    *float64
	Lon    *float64
}

// AdminProductParams are the query parameters of GET /admin/products.
type AdminProductParams struct {
	Q        *string
	Category *string
	Status   *string
}

// OrderParams are the query parameters of GET /admin/orders.
type OrderParams struct {
	Status *string
}

// SalesParams are the query parameters of GET /admin/sales.
type SalesParams struct {
	Days *int
}

func pathID(r *http.Request) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", gochi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter id: %w", err)
	}
	return id, nil
}

// bindQuery binds one optional form-style query parameter.
func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return nil
}

type queryBinding struct {
	name string
	dest any
}

func bindAll(r *http.Request, bindings ...queryBinding) error {
	for _, b := range bindings {
		if err := bindQuery(r, b.name, b.dest); err != nil {
			return err
		}
	}
	return nil
}

func bindSearchParams(r *http.Request) (SearchParams, error) {
	var p SearchParams
	err := bindAll(r,
		queryBinding{"q", &p.Q},
		queryBinding{"category", &p.Category},
		queryBinding{"sort", &p.Sort},
		queryBinding{"limit", &p.Limit},
	)
	return p, err
}

func bindRegionParams(r *http.Request) (RegionParams, error) {
	var p RegionParams
	err := bindAll(r,
		queryBinding{"locale", &p.Locale},
		queryBinding{"tz", &p.TZ},
		queryBinding{"lat", &p.Lat},
		queryBinding{"lon", &p.Lon},
	)
	return p, err
}

func bindAdminProductParams(r *http.Request) (AdminProductParams, error) {
	var p AdminProductParams
	err := bindAll(r,
		queryBinding{"q", &p.Q},
		queryBinding{"category", &p.Category},
		queryBinding{"status", &p.Status},
	)
	return p, err
}

func bindOrderParams(r *http.Request) (OrderParams, error) {
	var p OrderParams
	err := bindQuery(r, "status", &p.Status)
	return p, err
}

func bindSalesParams(r *http.Request) (SalesParams, error) {
	var p SalesParams
	err := bindQuery(r, "days", &p.Days)
	return p, err
}

func bindRelatedParams(r *http.Request) (RelatedParams, error) {
	var p RelatedParams
	err := bindQuery(r, "limit", &p.Limit)
	return p, err
}
