package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/chaosmeter/pkg/config"
	"github.com/matzehuels/chaosmeter/pkg/observability"
)

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	s := New(cfg, log.New(io.Discard))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, config.Default())
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Version == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestAnalyze(t *testing.T) {
	ts := newTestServer(t, config.Default())
	resp, body := post(t, ts.URL+"/v1/analyze?format=graph&metric=cycle", "A -> B\nB -> C\nC -> A\n")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if _, err := uuid.Parse(body["id"].(string)); err != nil {
		t.Errorf("id = %v, want a UUID", body["id"])
	}
	if resp.Header.Get(requestIDHeader) != body["id"] {
		t.Errorf("header id = %q, body id = %v", resp.Header.Get(requestIDHeader), body["id"])
	}
	if body["metric"] != "cycle" || body["nodes"] != 3.0 || body["edges"] != 3.0 {
		t.Errorf("body = %v", body)
	}
	result := body["result"].(map[string]any)
	if result["total"] != 1.0 {
		t.Errorf("result = %v, want total 1", result)
	}
}

func TestAnalyze_Exclude(t *testing.T) {
	ts := newTestServer(t, config.Default())
	report := "   a.Main -> b.Util b.jar\n   a.Main -> java.lang.Object java.base\n"
	_, body := post(t, ts.URL+"/v1/analyze?format=jdeps&metric=density&exclude=java", report)
	if body["edges"] != 1.0 {
		t.Errorf("edges = %v, want 1", body["edges"])
	}
}

func TestAnalyze_Errors(t *testing.T) {
	ts := newTestServer(t, config.Default())

	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   string
	}{
		{"missing metric", "format=graph", "a -> b", 400, "INVALID_METRIC"},
		{"unknown metric", "format=graph&metric=chaos", "a -> b", 400, "INVALID_METRIC"},
		{"unsupported format", "format=txt&metric=cycle", "a -> b", 400, "UNSUPPORTED_FORMAT"},
		{"malformed", "format=graph&metric=cycle", "a b\n", 400, "MALFORMED_INPUT"},
		{"bad pattern", "format=madge&metric=cycle&exclude=(", "a\n  b\n", 400, "INVALID_PATTERN"},
		{"undefined", "format=json&metric=flow-hierarchy", `{"nodes":[{"id":"a"}]}`, 422, "UNDEFINED_METRIC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, ts.URL+"/v1/analyze?"+tt.query, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			detail, _ := body["error"].(map[string]any)
			if detail["code"] != tt.code {
				t.Errorf("code = %v, want %s", detail["code"], tt.code)
			}
		})
	}
}

func TestAnalyze_BodyTooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxBodyBytes = 16
	ts := newTestServer(t, cfg)

	resp, _ := post(t, ts.URL+"/v1/analyze?format=graph&metric=cycle", strings.Repeat("a -> b\n", 10))
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestReport(t *testing.T) {
	ts := newTestServer(t, config.Default())
	resp, body := post(t, ts.URL+"/v1/report?format=graph", "A -> B\nA -> C\nB -> D\nC -> D\n")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if body["nodes"] != 4.0 || body["density"] == nil {
		t.Errorf("body = %v", body)
	}
	topology := body["topology"].(map[string]any)
	if len(topology) != 3 {
		t.Errorf("topology = %v, want 3 layers", topology)
	}
	if body["flow-hierarchy"] != 1.0 {
		t.Errorf("flow-hierarchy = %v, want 1", body["flow-hierarchy"])
	}
}

func TestRequestID_Propagated(t *testing.T) {
	ts := newTestServer(t, config.Default())
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/v1/analyze?format=graph&metric=density", bytes.NewBufferString("a -> b\n"))
	req.Header.Set(requestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(requestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(config.Default(), log.New(io.Discard))
	observability.SetPipelineHooks(s.Metrics())
	defer observability.Reset()

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	post(t, ts.URL+"/v1/analyze?format=graph&metric=density", "a -> b\n")

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	text := string(data)

	for _, want := range []string{
		`chaosmeter_http_requests_total{method="POST",route="/v1/analyze",status="200"} 1`,
		`chaosmeter_parse_total{format="graph",status="ok"} 1`,
		`chaosmeter_analyze_total{metric="density",status="ok"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	routes []string
	codes  []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.routes = append(h.routes, route)
	h.codes = append(h.codes, status)
}

func TestRegisteredHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	ts := newTestServer(t, config.Default())
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	resp, err = http.Get(ts.URL + "/nowhere/42")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	wantRoutes := []string{"/healthz", "unmatched"}
	wantCodes := []int{http.StatusOK, http.StatusNotFound}
	if !slices.Equal(hooks.routes, wantRoutes) || !slices.Equal(hooks.codes, wantCodes) {
		t.Errorf("hooks saw routes %v codes %v, want %v %v", hooks.routes, hooks.codes, wantRoutes, wantCodes)
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(io.EOF); got != http.StatusInternalServerError {
		t.Errorf("statusFor(io.EOF) = %d, want 500", got)
	}
}
