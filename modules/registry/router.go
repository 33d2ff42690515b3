package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/reymi-tech/multitenant/pkg/apierrors"
	"github.com/reymi-tech/multitenant/pkg/tenant"
)

// Storer is the storage capability the router needs. *Store satisfies it.
type Storer interface {
	GetByCode(ctx context.Context, code string) (*tenant.Tenant, error)
	Create(ctx context.Context, t *tenant.Tenant) error
	SoftDelete(ctx context.Context, code string) error
	ValidateTenantExists(ctx context.Context, code string) bool
}

// Router mounts the admin surface of the tenant registry. The remote
// validation strategy in pkg/tenant is a client of these endpoints.
//
//	GET    /admin/tenant/validate/{code} -> {"exists": bool}
//	GET    /admin/tenant/code/{code}     -> tenant record
//	POST   /admin/tenant                 -> create tenant
//	DELETE /admin/tenant/{code}          -> soft delete
func Router(store Storer, responder *apierrors.Responder) chi.Router {
	r := chi.NewRouter()

	r.Route("/admin/tenant", func(admin chi.Router) {
		admin.Method(http.MethodGet, "/validate/{code}", responder.Handler(func(w http.ResponseWriter, req *http.Request) error {
			code := chi.URLParam(req, "code")
			exists := store.ValidateTenantExists(req.Context(), code)
			return writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
		}))

		admin.Method(http.MethodGet, "/code/{code}", responder.Handler(func(w http.ResponseWriter, req *http.Request) error {
			t, err := store.GetByCode(req.Context(), chi.URLParam(req, "code"))
			if err != nil {
				return err
			}
			return writeJSON(w, http.StatusOK, t)
		}))

		admin.Method(http.MethodPost, "/", responder.Handler(func(w http.ResponseWriter, req *http.Request) error {
			var in struct {
				Code string `json:"code"`
				Name string `json:"name"`
			}
			if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
				return apierrors.NewHTTPError(http.StatusBadRequest, "Invalid request body")
			}
			in.Code = strings.TrimSpace(in.Code)
			if in.Code == "" {
				return tenant.NewValidationFailedError(in.Code, []string{"code is required"})
			}

			t := &tenant.Tenant{Code: in.Code, Name: in.Name}
			if err := store.Create(req.Context(), t); err != nil {
				return err
			}
			return writeJSON(w, http.StatusCreated, t)
		}))

		admin.Method(http.MethodDelete, "/{code}", responder.Handler(func(w http.ResponseWriter, req *http.Request) error {
			if err := store.SoftDelete(req.Context(), chi.URLParam(req, "code")); err != nil {
				return err
			}
			w.WriteHeader(http.StatusNoContent)
			return nil
		}))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
