package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reymi-tech/multitenant/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "cf-connecting-ip wins",
			headers:    map[string]string{"CF-Connecting-IP": "203.0.113.5", "X-Forwarded-For": "198.51.100.1"},
			remoteAddr: "192.0.2.1:1234",
			want:       "203.0.113.5",
		},
		{
			name:       "x-forwarded-for first valid ip",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"},
			remoteAddr: "192.0.2.1:1234",
			want:       "198.51.100.1",
		},
		{
			name:       "x-forwarded-for skips garbage",
			headers:    map[string]string{"X-Forwarded-For": "unknown, 198.51.100.1"},
			remoteAddr: "192.0.2.1:1234",
			want:       "198.51.100.1",
		},
		{
			name:       "x-real-ip fallback",
			headers:    map[string]string{"X-Real-IP": "198.51.100.7"},
			remoteAddr: "192.0.2.1:1234",
			want:       "198.51.100.7",
		},
		{
			name:       "remote addr fallback",
			remoteAddr: "192.0.2.1:1234",
			want:       "192.0.2.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.1",
			want:       "192.0.2.1",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "invalid everything yields empty",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			remoteAddr: "garbage",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(req))
		})
	}
}
