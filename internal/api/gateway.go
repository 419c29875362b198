package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roxiler/storerating-client/internal/api/metrics"
	"github.com/roxiler/storerating-client/internal/core/domain"
)

const (
	// DefaultTimeout bounds every request; an unanswered request becomes a
	// network failure.
	DefaultTimeout = 10 * time.Second
	// DefaultBaseURL is used when no override is configured.
	DefaultBaseURL = "https://roxiler-systems-backend-bu80.onrender.com/api"

	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 4 << 20
)

// SessionSource is the part of the session manager the gateway consults: the
// token to inject, and the teardown to run when the server rejects it.
type SessionSource interface {
	CurrentToken() (string, bool)
	Logout(ctx context.Context)
}

// Request describes one call to the backend. Body, when non-nil, is sent as
// JSON.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Caller is satisfied by *Gateway; typed clients depend on it so they can be
// tested against a stub.
type Caller interface {
	Call(ctx context.Context, req Request) ([]byte, error)
}

// Options configures a Gateway.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the transport. Its Timeout is replaced by Timeout.
	HTTPClient *http.Client
}

// Gateway is the single chokepoint for server communication. Every call
// either returns the raw response body or a *domain.Failure.
type Gateway struct {
	baseURL string
	client  *http.Client
	session SessionSource
	log     zerolog.Logger
}

// NewGateway validates the base URL and builds a Gateway.
func NewGateway(opts Options, session SessionSource, log zerolog.Logger) (*Gateway, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: invalid base url %q", base)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{}
	if opts.HTTPClient != nil {
		c := *opts.HTTPClient
		client = &c
	}
	client.Timeout = timeout

	return &Gateway{
		baseURL: strings.TrimRight(base, "/"),
		client:  client,
		session: session,
		log:     log.With().Str("component", "gateway").Logger(),
	}, nil
}

// BaseURL returns the normalized base URL requests are sent to.
func (g *Gateway) BaseURL() string { return g.baseURL }

// Call performs req. On success the body is returned unmodified. On failure
// the error is always a *domain.Failure; an auth-expired failure has already
// cleared the session and carries the redirect to /login.
func (g *Gateway) Call(ctx context.Context, req Request) ([]byte, error) {
	start := time.Now()
	requestID := uuid.NewString()

	body, status, err := g.roundTrip(ctx, req, requestID)

	outcome := "ok"
	var f *domain.Failure
	if err != nil {
		f, _ = domain.AsFailure(err)
		outcome = f.Kind.String()
	}
	metrics.GatewayRequestsTotal.WithLabelValues(req.Method, outcome).Inc()
	metrics.GatewayRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	if f == nil {
		g.log.Debug().
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("path", req.Path).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("request completed")
		return body, nil
	}

	if f.Kind == domain.FailureAuthExpired {
		// Teardown must finish even if the caller's context is already done.
		g.session.Logout(context.WithoutCancel(ctx))
	}

	evt := g.log.Warn()
	if f.Kind == domain.FailureValidation {
		evt = g.log.Info()
	}
	evt.Str("request_id", requestID).
		Str("method", req.Method).
		Str("path", req.Path).
		Str("kind", f.Kind.String()).
		Int("status", f.Status).
		Str("base_url", g.baseURL).
		AnErr("cause", f.Err).
		Msg("request failed")

	return nil, f
}

func (g *Gateway) roundTrip(ctx context.Context, req Request, requestID string) ([]byte, int, error) {
	httpReq, err := g.newRequest(ctx, req, requestID)
	if err != nil {
		return nil, 0, &domain.Failure{
			Kind:    domain.FailureValidation,
			Message: "The request could not be encoded.",
			Err:     err,
		}
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, 0, Classify(Outcome{Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, Classify(Outcome{Err: fmt.Errorf("read body: %w", err)})
	}

	if resp.StatusCode/100 == 2 {
		return body, resp.StatusCode, nil
	}
	return nil, resp.StatusCode, Classify(Outcome{Status: resp.StatusCode, Body: body})
}

func (g *Gateway) newRequest(ctx context.Context, req Request, requestID string) (*http.Request, error) {
	if req.Method == "" {
		return nil, errors.New("missing method")
	}

	target := g.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if q := req.Query.Encode(); q != "" {
		target += "?" + q
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(headerRequestID, requestID)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token, ok := g.session.CurrentToken(); ok {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}
