package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/creatorkit/pkg/clientip"
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
			name: "cloudflare header wins",
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
				"X-Forwarded-For":  "192.168.1.1",
			},
			remoteAddr: "172.16.0.1:54321",
			want:       "203.0.113.195",
		},
		{
			name:       "first valid forwarded address",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.178, 203.0.113.195"},
			remoteAddr: "10.0.0.1:54321",
			want:       "198.51.100.178",
		},
		{
			name:       "invalid headers fall through",
			headers:    map[string]string{"CF-Connecting-IP": "nope", "X-Real-IP": "192.168.1.1"},
			remoteAddr: "10.0.0.1:54321",
			want:       "192.168.1.1",
		},
		{
			name:       "remote addr",
			remoteAddr: "10.0.0.1:54321",
			want:       "10.0.0.1",
		},
		{
			name:       "ipv6 is normalized",
			remoteAddr: "[2001:0db8:0000:0000:0000:0000:0000:0001]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "nothing usable",
			remoteAddr: "unix-socket",
			want:       "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}

func TestRemoteIP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:54321"
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	r.Header.Set("CF-Connecting-IP", "203.0.113.10")

	assert.Equal(t, "10.0.0.1", clientip.RemoteIP(r))
	assert.Equal(t, "203.0.113.10", clientip.GetIP(r))

	r.RemoteAddr = "[::1]:80"
	assert.Equal(t, "::1", clientip.RemoteIP(r))
}
