package crm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"opportunityrisks/internal/metrics"
)

const testEndpoint = "/sap/c4c/api/v1/opportunity-service/opportunities"

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:     server.URL + "/",
		Endpoint:    testEndpoint,
		Token:       "tok",
		Username:    "user",
		Password:    "secret",
		PackageName: "SAPSalesServiceCloudV2",
		APIName:     "SalesSvcCloudV2_opportunity",
	}, server.Client(), opts...)
}

func TestClient_FetchAll_SendsHeaders(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":[{"id":"1","name":"A","expectedRevenueAmount":{"content":10}}]}`))
	})

	payload, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, testEndpoint, got.URL.Path)
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "2.0", got.Header.Get("DataServiceVersion"))
	assert.Equal(t, "tok", got.Header.Get("x-sap-crm-token"))
	assert.Equal(t, "Basic", got.Header.Get("config_authType"))
	assert.Equal(t, "SAPSalesServiceCloudV2", got.Header.Get("config_packageName"))
	assert.Equal(t, "SalesSvcCloudV2_opportunity", got.Header.Get("config_apiName"))
	assert.Equal(t, "https://{hostname}", got.Header.Get("config_urlPattern"))
	user, pass, ok := got.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "user", user)
	assert.Equal(t, "secret", pass)

	records := ExtractRecords(payload)
	require.Len(t, records, 1)
	assert.Equal(t, "10", NewNormalizer().Normalize(payload)[0].ExpectedRevenueAmount.String())
}

func TestClient_NoBasicAuthWithoutPassword(t *testing.T) {
	var hasAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, hasAuth = r.BasicAuth()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := NewClient(ClientConfig{BaseURL: server.URL, Endpoint: testEndpoint, Username: "user"}, server.Client())
	_, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestClient_FetchAll_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	})

	_, err := c.FetchAll(context.Background())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "token expired")
}

func TestClient_FetchAll_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>login</html>`))
	})

	_, err := c.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestClient_FetchAll_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	httpClient := server.Client()
	httpClient.Timeout = 20 * time.Millisecond
	c := NewClient(ClientConfig{BaseURL: server.URL, Endpoint: testEndpoint}, httpClient)

	_, err := c.FetchAll(context.Background())
	require.Error(t, err)
}

func TestClient_FetchOne(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantID any
	}{
		{"object with id", `{"id":"42","name":"Single"}`, "42"},
		{"value envelope", `{"value":{"id":"42","name":"Single"}}`, "42"},
		{"odata object id", `{"ObjectID":"00163E","Name":"Legacy"}`, nil},
		{"no identifier", `{"error":{"message":"not found"}}`, nil},
		{"array body", `[{"id":"42"}]`, nil},
		{"empty body", ``, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotExclude string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotExclude = r.URL.Query().Get("$exclude")
				_, _ = w.Write([]byte(tt.body))
			})

			record, err := c.FetchOne(context.Background(), "42")
			require.NoError(t, err)
			assert.Equal(t, testEndpoint+"/42", gotPath)
			assert.Equal(t, "snapshots,isPhaseProgressAllowed,worklistItems", gotExclude)

			switch tt.name {
			case "object with id", "value envelope":
				require.NotNil(t, record)
				assert.Equal(t, tt.wantID, record["id"])
			case "odata object id":
				require.NotNil(t, record)
				assert.Equal(t, "00163E", record["ObjectID"])
			default:
				assert.Nil(t, record)
			}
		})
	}
}

func TestClient_FetchOne_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	record, err := c.FetchOne(context.Background(), "missing")
	assert.Nil(t, record)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "unexpected status 404", statusErr.Error())
}

func TestClient_RecordsMetrics(t *testing.T) {
	reg := metrics.NewRegistry()
	fail := false
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if fail {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}, WithMetrics(reg))

	_, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	fail = true
	_, err = c.FetchOne(context.Background(), "1")
	require.Error(t, err)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(reg.UpstreamRequests.WithLabelValues("list", "ok")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(reg.UpstreamRequests.WithLabelValues("single", "error")))
	assert.Equal(t, 2, promtestutil.CollectAndCount(reg.UpstreamLatency))
}

func TestClient_EmitsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, WithTracer(provider.Tracer("test")))

	_, err := c.FetchAll(context.Background())
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "crm.list", spans[0].Name())
	assert.Equal(t, "Error", spans[0].Status().Code.String())
}
