package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/buger/jsonparser"

	"netops/internal/infra"
	"netops/pkg/logger"
	"netops/pkg/metrics"
	"netops/pkg/utils"
)

type FirewallStatus struct {
	Reachable bool
	Version   string
}

// FirewallClient pushes device blocks to the perimeter firewall. Failures are
// returned to the caller; nothing is faked.
type FirewallClient interface {
	Enabled() bool
	Host() string
	Block(ctx context.Context, address, description string) error
	Unblock(ctx context.Context, address string) error
	Status(ctx context.Context) (FirewallStatus, error)
}

func NewFirewallClient(cfg infra.FirewallConfig) FirewallClient {
	if cfg.Disabled {
		logger.Warn("Firewall integration disabled; blocks are recorded locally only")
		return disabledFirewall{}
	}
	return NewPfSenseClient(cfg)
}

// -------------- pfSense REST API client ---------------

type PfSenseClient struct {
	HTTP     *http.Client
	BaseURL  string
	Username string
	Password string
	Alias    string
	host     string
}

func NewPfSenseClient(cfg infra.FirewallConfig) *PfSenseClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	port := cfg.Port
	if port == 0 {
		port = 443
	}
	// Appliances ship with self-signed certificates.
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
	}
	return &PfSenseClient{
		HTTP:     &http.Client{Timeout: timeout, Transport: transport},
		BaseURL:  "https://" + cfg.Host + ":" + strconv.Itoa(port),
		Username: cfg.Username,
		Password: cfg.Password,
		Alias:    cfg.BlockAlias,
		host:     cfg.Host,
	}
}

func (c *PfSenseClient) Enabled() bool { return true }

func (c *PfSenseClient) Host() string { return c.host }

func (c *PfSenseClient) Block(ctx context.Context, address, description string) (err error) {
	started := time.Now()
	defer func() { metrics.ObserveFirewall("block", started, err) }()

	body := map[string]interface{}{
		"name":    c.Alias,
		"address": []string{address},
		"detail":  []string{description},
	}
	if _, err = c.do(ctx, http.MethodPost, "/api/v1/firewall/alias/entry", body); err != nil {
		return err
	}
	if _, err = c.do(ctx, http.MethodPost, "/api/v1/firewall/apply", nil); err != nil {
		// An unapplied entry would go live on the next unrelated apply.
		rollback := map[string]interface{}{"name": c.Alias, "address": address}
		if _, rerr := c.do(ctx, http.MethodDelete, "/api/v1/firewall/alias/entry", rollback); rerr != nil {
			logger.Warn("Failed to remove unapplied alias entry", "address", address, "error", rerr)
		}
		return err
	}
	return nil
}

func (c *PfSenseClient) Unblock(ctx context.Context, address string) (err error) {
	started := time.Now()
	defer func() { metrics.ObserveFirewall("unblock", started, err) }()

	body := map[string]interface{}{
		"name":    c.Alias,
		"address": address,
	}
	if _, err = c.do(ctx, http.MethodDelete, "/api/v1/firewall/alias/entry", body); err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, "/api/v1/firewall/apply", nil)
	return err
}

func (c *PfSenseClient) Status(ctx context.Context) (status FirewallStatus, err error) {
	started := time.Now()
	defer func() { metrics.ObserveFirewall("status", started, err) }()

	payload, err := c.do(ctx, http.MethodGet, "/api/v1/system/version", nil)
	if err != nil {
		return FirewallStatus{}, err
	}
	status.Reachable = true
	if version, perr := jsonparser.GetString(payload, "data", "version"); perr == nil {
		status.Version = version
	}
	return status, nil
}

// do sends one request and returns the raw body. Transport errors, non-2xx
// answers and API-level failures are all ErrFirewallUnavailable.
func (c *PfSenseClient) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrFirewallUnavailable, err)
	}
	req.SetBasicAuth(c.Username, c.Password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", utils.ErrFirewallUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", utils.ErrFirewallUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := jsonparser.GetString(payload, "message")
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s %s returned %d: %s", utils.ErrFirewallUnavailable, method, path, resp.StatusCode, msg)
	}

	// The API reports failures in "return" even on some 200 answers.
	if code, perr := jsonparser.GetInt(payload, "return"); perr == nil && code != 0 {
		msg, _ := jsonparser.GetString(payload, "message")
		return nil, fmt.Errorf("%w: %s %s failed: %s", utils.ErrFirewallUnavailable, method, path, msg)
	}

	return payload, nil
}

// -------------- disabled appliance ---------------

type disabledFirewall struct{}

func (disabledFirewall) Enabled() bool { return false }

func (disabledFirewall) Host() string { return "" }

func (disabledFirewall) Block(context.Context, string, string) error {
	return utils.ErrFirewallDisabled
}

func (disabledFirewall) Unblock(context.Context, string) error {
	return utils.ErrFirewallDisabled
}

func (disabledFirewall) Status(context.Context) (FirewallStatus, error) {
	return FirewallStatus{}, utils.ErrFirewallDisabled
}
