package mcpserver

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlockedIP(t *testing.T) {
	tests := []struct {
		ip      string
		blocked bool
	}{
		{"127.0.0.1", true},      // loopback
		{"10.0.0.1", true},       // private (Class A)
		{"172.16.0.1", true},     // private (Class B)
		{"192.168.1.1", true},    // private (Class C)
		{"169.254.1.1", true},    // link-local
		{"::1", true},            // IPv6 loopback
		{"0.0.0.0", true},        // unspecified IPv4
		{"::", true},             // unspecified IPv6
		{"fe80::1", true},        // IPv6 link-local
		{"fd00::1", true},        // IPv6 ULA (private)
		{"8.8.8.8", false},       // public (Google DNS)
		{"1.1.1.1", false},       // public (Cloudflare DNS)
		{"93.184.216.34", false}, // public (example.com)
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			require.NotNil(t, ip, "failed to parse IP: %s", tt.ip)
			assert.Equal(t, tt.blocked, isBlockedIP(ip))
		})
	}
}

func TestNewSafeHTTPClient(t *testing.T) {
	client := newSafeHTTPClient()
	require.NotNil(t, client)
	assert.NotZero(t, client.Timeout)
	assert.NotNil(t, client.CheckRedirect)
	assert.NotNil(t, client.Transport)
}

func TestHTTPClient(t *testing.T) {
	prev := *cfg
	t.Cleanup(func() { *cfg = prev })

	cfg.AllowPrivateIPs = false
	safe := httpClient()
	require.NotNil(t, safe.CheckRedirect, "the SSRF-safe client checks redirects")
	assert.Equal(t, cfg.FetchTimeout, safe.Timeout)

	cfg.AllowPrivateIPs = true
	open := httpClient()
	assert.Nil(t, open.CheckRedirect)
	assert.Nil(t, open.Transport)
	assert.Equal(t, cfg.FetchTimeout, open.Timeout)
}

func TestSafeHTTPClient_BlocksLoopback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"swagger": "2.0"}`))
	}))
	defer server.Close()

	_, err := newSafeHTTPClient().Get(server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBlockedAddress)
}

func TestGuardDial(t *testing.T) {
	tests := []struct {
		address string
		wantErr bool
	}{
		{address: "93.184.216.34:443"},
		{address: "[2606:4700::1111]:443"},
		{address: "127.0.0.1:80", wantErr: true},
		{address: "[::1]:80", wantErr: true},
		{address: "10.1.2.3:8080", wantErr: true},
		{address: "example.com:80", wantErr: true},
		{address: "no-port", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			err := guardDial("tcp", tt.address, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSafeHTTPClient_RedirectLimit(t *testing.T) {
	client := newSafeHTTPClient()
	via := make([]*http.Request, maxRedirects)
	assert.Error(t, client.CheckRedirect(nil, via))
	assert.NoError(t, client.CheckRedirect(nil, via[:1]))
}
