package tenant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteConfig configures the remote validation strategy.
type RemoteConfig struct {
	// BaseURL is the address of the central tenant registry service,
	// e.g. "https://registry.internal:8080".
	BaseURL string `env:"TENANT_REGISTRY_URL,required"`

	// RequestTimeout bounds each registry call. Failures, including
	// timeouts, degrade to "not found".
	RequestTimeout time.Duration `env:"TENANT_REGISTRY_TIMEOUT" envDefault:"5s"`
}

// RemoteValidator validates tenants against a central registry service over
// HTTP. Interchangeable with the local store-backed validator: both satisfy
// Validator and degrade to false/absent on any transport or parse failure.
type RemoteValidator struct {
	baseURL string
	client  *http.Client
}

// validateResponse is the wire shape of the registry's existence check.
type validateResponse struct {
	Exists bool `json:"exists"`
}

// NewRemoteValidator creates a validator calling the registry at cfg.BaseURL.
func NewRemoteValidator(cfg RemoteConfig) *RemoteValidator {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteValidator{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// ValidateTenantExists asks the registry whether a non-deleted tenant with
// the given code exists.
func (v *RemoteValidator) ValidateTenantExists(ctx context.Context, code string) bool {
	var resp validateResponse
	if err := v.getJSON(ctx, "/admin/tenant/validate/"+url.PathEscape(code), &resp); err != nil {
		return false
	}
	return resp.Exists
}

// FindByCode fetches the tenant record with the given code from the registry.
func (v *RemoteValidator) FindByCode(ctx context.Context, code string) (*Tenant, bool) {
	var t Tenant
	if err := v.getJSON(ctx, "/admin/tenant/code/"+url.PathEscape(code), &t); err != nil {
		return nil, false
	}
	if t.Code == "" || t.Deleted() {
		return nil, false
	}
	return &t, true
}

func (v *RemoteValidator) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("registry returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
