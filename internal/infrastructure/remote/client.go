// Package remote implements the HTTP client for the upstream commerce API
// and the gateways the core services consume. All error classification and
// the unauthorized-response policy live here, in one place, so no call
// site can drift.
package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/diycomponents/storefront/internal/api/metrics"
	"github.com/diycomponents/storefront/internal/core/domain"
	"github.com/diycomponents/storefront/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Client is an HTTP client bound to one visitor's credential store.
// Authenticated requests carry the bearer token plus the legacy utoken
// header (base64 of the user e-mail) the upstream API still expects.
type Client struct {
	baseURL string
	http    *http.Client
	creds   ports.CredentialStore
	log     zerolog.Logger

	mu             sync.RWMutex
	onUnauthorized func(context.Context)
}

// NewClient creates a client for the given base URL. The timeout bounds
// each request end-to-end; zero selects the default.
func NewClient(baseURL string, timeout time.Duration, creds ports.CredentialStore, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		log:     log,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// NewClientWithHTTP injects a custom *http.Client. Test use.
func NewClientWithHTTP(baseURL string, hc *http.Client, creds ports.CredentialStore, log zerolog.Logger) *Client {
	c := NewClient(baseURL, 0, creds, log)
	if hc != nil {
		c.http = hc
	}
	return c
}

// OnUnauthorized installs the single policy run when any authenticated
// call is rejected with 401. Installed after construction because the
// session manager both consumes this client (through a gateway) and is the
// policy target.
func (c *Client) OnUnauthorized(fn func(context.Context)) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any, authed bool) error {
	return c.do(ctx, op, http.MethodGet, path, query, nil, out, authed)
}

func (c *Client) post(ctx context.Context, op, path string, body, out any, authed bool) error {
	return c.do(ctx, op, http.MethodPost, path, nil, body, out, authed)
}

func (c *Client) put(ctx context.Context, op, path string, body, out any, authed bool) error {
	return c.do(ctx, op, http.MethodPut, path, nil, body, out, authed)
}

func (c *Client) delete(ctx context.Context, op, path string, authed bool) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, nil, nil, authed)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any, authed bool) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, query, body, out, authed)
	c.observe(op, start, err)

	if err != nil && authed && domain.IsUnauthorized(err) {
		c.mu.RLock()
		hook := c.onUnauthorized
		c.mu.RUnlock()
		if hook != nil {
			hook(ctx)
		}
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		creds, err := c.creds.Load(ctx)
		if err != nil {
			c.log.Warn().Err(err).Msg("credential load failed, sending request unauthenticated")
		} else if creds.Present() {
			req.Header.Set("Authorization", "Bearer "+creds.Token)
			req.Header.Set("utoken", base64.StdEncoding.EncodeToString([]byte(creds.Email)))
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.RemoteError{Kind: domain.ErrKindNetwork, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.RemoteError{Kind: domain.ErrKindNetwork, Err: err}
	}

	if resp.StatusCode >= 400 {
		return classify(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &domain.RemoteError{
				Kind:   domain.ErrKindNetwork,
				Status: resp.StatusCode,
				Err:    fmt.Errorf("malformed response body: %w", err),
			}
		}
	}
	return nil
}

// classify maps an upstream status to the error taxonomy. The upstream
// error envelope is {"message": "..."}.
func classify(status int, raw []byte) error {
	var envelope struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &envelope)

	kind := domain.ErrKindValidation
	switch {
	case status == http.StatusUnauthorized:
		kind = domain.ErrKindUnauthorized
	case status == http.StatusForbidden:
		kind = domain.ErrKindForbidden
	case status == http.StatusNotFound:
		kind = domain.ErrKindNotFound
	case status >= 500:
		kind = domain.ErrKindServer
	}

	return &domain.RemoteError{Kind: kind, Status: status, Message: envelope.Message}
}

func (c *Client) observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		if k := domain.KindOf(err); k != "" {
			outcome = string(k)
		} else {
			outcome = "error"
		}
	}
	metrics.RemoteRequestsTotal.WithLabelValues(op, outcome).Inc()
	metrics.RemoteRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		var re *domain.RemoteError
		if errors.As(err, &re) {
			c.log.Debug().Err(err).Str("op", op).Int("status", re.Status).Msg("remote call failed")
		} else {
			c.log.Debug().Err(err).Str("op", op).Msg("remote call failed")
		}
	}
}
