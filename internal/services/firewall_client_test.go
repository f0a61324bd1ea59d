package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netops/internal/infra"
	"netops/pkg/utils"
)

type recordedCall struct {
	method string
	path   string
	body   map[string]interface{}
}

type fakePfSense struct {
	mu       sync.Mutex
	calls    []recordedCall
	failPath string
	status   int
	payload  string
}

func (p *fakePfSense) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "pfsense", pass)

		call := recordedCall{method: r.Method, path: r.URL.Path}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &call.body))
		}
		p.mu.Lock()
		p.calls = append(p.calls, call)
		failPath, status, payload := p.failPath, p.status, p.payload
		p.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == failPath {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, payload)
			return
		}
		if r.URL.Path == "/api/v1/system/version" {
			_, _ = io.WriteString(w, `{"status":"ok","code":200,"return":0,"message":"Success","data":{"version":"2.7.2-RELEASE"}}`)
			return
		}
		_, _ = io.WriteString(w, `{"status":"ok","code":200,"return":0,"message":"Success","data":{}}`)
	}
}

func newTestPfSense(t *testing.T) (*PfSenseClient, *fakePfSense) {
	t.Helper()
	fake := &fakePfSense{}
	srv := httptest.NewTLSServer(fake.handler(t))
	t.Cleanup(srv.Close)

	client := NewPfSenseClient(infra.FirewallConfig{
		Host:       "pfsense.local",
		Username:   "admin",
		Password:   "pfsense",
		BlockAlias: "netops_blocked",
		Timeout:    2 * time.Second,
	})
	client.BaseURL = srv.URL
	return client, fake
}

func TestPfSenseClient_BlockAndUnblock(t *testing.T) {
	client, fake := newTestPfSense(t)

	require.NoError(t, client.Block(bg, "10.0.0.15", "netops: laptop"))
	require.NoError(t, client.Unblock(bg, "10.0.0.15"))

	require.Len(t, fake.calls, 4)
	assert.Equal(t, http.MethodPost, fake.calls[0].method)
	assert.Equal(t, "/api/v1/firewall/alias/entry", fake.calls[0].path)
	assert.Equal(t, "netops_blocked", fake.calls[0].body["name"])
	assert.Equal(t, []interface{}{"10.0.0.15"}, fake.calls[0].body["address"])
	assert.Equal(t, "/api/v1/firewall/apply", fake.calls[1].path)

	assert.Equal(t, http.MethodDelete, fake.calls[2].method)
	assert.Equal(t, "10.0.0.15", fake.calls[2].body["address"])
	assert.Equal(t, "/api/v1/firewall/apply", fake.calls[3].path)
}

func TestPfSenseClient_Status(t *testing.T) {
	client, _ := newTestPfSense(t)

	status, err := client.Status(bg)
	require.NoError(t, err)
	assert.True(t, status.Reachable)
	assert.Equal(t, "2.7.2-RELEASE", status.Version)
	assert.True(t, client.Enabled())
	assert.Equal(t, "pfsense.local", client.Host())
}

func TestPfSenseClient_Failures(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		client, fake := newTestPfSense(t)
		fake.failPath = "/api/v1/firewall/alias/entry"
		fake.status = http.StatusUnauthorized
		fake.payload = `{"status":"unauthorized","code":401,"return":3,"message":"Authentication failed"}`

		err := client.Block(bg, "10.0.0.15", "x")
		assert.ErrorIs(t, err, utils.ErrFirewallUnavailable)
		assert.Contains(t, err.Error(), "Authentication failed")
		assert.Len(t, fake.calls, 1)
	})

	t.Run("api level failure on 200", func(t *testing.T) {
		client, fake := newTestPfSense(t)
		fake.failPath = "/api/v1/firewall/apply"
		fake.status = http.StatusOK
		fake.payload = `{"status":"bad request","code":400,"return":1,"message":"Filter reload failed"}`

		err := client.Block(bg, "10.0.0.15", "x")
		assert.ErrorIs(t, err, utils.ErrFirewallUnavailable)

		// The alias entry is removed again so it cannot go live later.
		require.Len(t, fake.calls, 3)
		assert.Equal(t, http.MethodDelete, fake.calls[2].method)
		assert.Equal(t, "/api/v1/firewall/alias/entry", fake.calls[2].path)
		assert.Equal(t, "10.0.0.15", fake.calls[2].body["address"])
		assert.Equal(t, "netops_blocked", fake.calls[2].body["name"])
	})

	t.Run("unreachable appliance", func(t *testing.T) {
		client := NewPfSenseClient(infra.FirewallConfig{Host: "127.0.0.1", Port: 1, Timeout: time.Second})
		_, err := client.Status(bg)
		assert.ErrorIs(t, err, utils.ErrFirewallUnavailable)
	})
}

func TestNewFirewallClient_Disabled(t *testing.T) {
	client := NewFirewallClient(infra.FirewallConfig{Disabled: true})
	assert.False(t, client.Enabled())
	assert.ErrorIs(t, client.Block(bg, "10.0.0.1", ""), utils.ErrFirewallDisabled)
	assert.ErrorIs(t, client.Unblock(bg, "10.0.0.1"), utils.ErrFirewallDisabled)
}
