package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"opportunityrisks/internal/logger"
	"opportunityrisks/internal/metrics"
)

// singleExclude trims the heavy sub-collections from a single-opportunity read.
const singleExclude = "snapshots,isPhaseProgressAllowed,worklistItems"

// ClientConfig holds the connection settings for the SAP CRM opportunity service.
type ClientConfig struct {
	BaseURL     string
	Endpoint    string
	Token       string
	Username    string
	Password    string
	PackageName string
	APIName     string
}

// StatusError is returned when SAP CRM answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client issues read requests to SAP CRM. Calls are never retried.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
	metrics    *metrics.Registry
	tracer     trace.Tracer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMetrics records request outcomes and latency on reg.
func WithMetrics(reg *metrics.Registry) ClientOption {
	return func(c *Client) { c.metrics = reg }
}

// WithTracer replaces the global tracer.
func WithTracer(t trace.Tracer) ClientOption {
	return func(c *Client) { c.tracer = t }
}

// NewClient creates a new SAP CRM client. The http.Client's Timeout bounds every call.
func NewClient(cfg ClientConfig, httpClient *http.Client, opts ...ClientOption) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	c := &Client{
		cfg:        cfg,
		httpClient: httpClient,
		tracer:     otel.Tracer("opportunityrisks/crm"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll retrieves the opportunity collection and returns the decoded body
// untouched, whatever shape it has.
func (c *Client) FetchAll(ctx context.Context) (any, error) {
	return c.get(ctx, "list", c.cfg.BaseURL+c.cfg.Endpoint)
}

// FetchOne retrieves a single opportunity. It returns nil without error when
// the body is not an object or carries no identifier, so callers can fall
// back to the collection.
func (c *Client) FetchOne(ctx context.Context, id string) (map[string]any, error) {
	target := fmt.Sprintf("%s%s/%s?$exclude=%s", c.cfg.BaseURL, c.cfg.Endpoint, url.PathEscape(id), singleExclude)
	payload, err := c.get(ctx, "single", target)
	if err != nil {
		return nil, err
	}

	record, ok := payload.(map[string]any)
	if !ok {
		return nil, nil
	}
	// Some tenants wrap the single entity in a "value" envelope.
	if inner, ok := record["value"].(map[string]any); ok {
		record = inner
	}
	if !HasIdentifier(record) {
		return nil, nil
	}
	return record, nil
}

func (c *Client) get(ctx context.Context, operation, target string) (payload any, err error) {
	ctx, span := c.tracer.Start(ctx, "crm."+operation, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("crm.operation", operation),
		attribute.String("http.url", target),
	)

	start := time.Now()
	defer func() {
		c.observe(operation, start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	logger.Get().Debugw("upstream call issued", "operation", operation, "url", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching opportunities: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return payload, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("DataServiceVersion", "2.0")
	req.Header.Set("config_authType", "Basic")
	req.Header.Set("config_urlPattern", "https://{hostname}")
	req.Header.Set("config_actualUrl", c.cfg.BaseURL)
	if c.cfg.Token != "" {
		req.Header.Set("x-sap-crm-token", c.cfg.Token)
	}
	if c.cfg.PackageName != "" {
		req.Header.Set("config_packageName", c.cfg.PackageName)
	}
	if c.cfg.APIName != "" {
		req.Header.Set("config_apiName", c.cfg.APIName)
	}
	if c.cfg.Username != "" && c.cfg.Password != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}
}

func (c *Client) observe(operation string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metrics.UpstreamRequests.WithLabelValues(operation, outcome).Inc()
	c.metrics.UpstreamLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
