package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/generate"
	"github.com/matzehuels/dashgrid/pkg/layout"
	"github.com/matzehuels/dashgrid/pkg/observability"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

func newTestServer(t *testing.T) *httptest.Server {
	return newTestServerWithStats(t, nil)
}

func newTestServerWithStats(t *testing.T, stats *observability.Stats) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
	deps := &Deps{
		Log:             logger,
		ResponseHandler: NewResponseHandler(logger),
		LayoutSvc:       runner,
		Profiles:        widget.DefaultProfiles(),
		Presets:         generate.DefaultPresets(),
		Policy:          widget.DefaultPolicy(),
		Stats:           stats,
	}
	srv := httptest.NewServer(NewRouter(deps))
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Widget  string          `json:"widget"`
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func TestServerAnalysis(t *testing.T) {
	srv := newTestServer(t)

	body := `{"widgets": [
		{"id": "a", "type": "kpi", "position": {"x": 0, "y": 0, "w": 10, "h": 3}},
		{"id": "b", "type": "bar", "position": {"x": 10, "y": 0, "w": 10, "h": 8}}
	]}`
	status, env := do(t, srv, http.MethodPost, "/layouts/analysis", body)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("status = %d, env = %+v", status, env)
	}

	var data LayoutResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Layout.Items) != 2 || data.Cached {
		t.Errorf("data = %+v", data)
	}
	if err := layout.Validate(data.Layout.Items, data.Layout.Columns); err != nil {
		t.Errorf("invalid layout: %v", err)
	}

	_, env = do(t, srv, http.MethodPost, "/layouts/analysis", body)
	_ = json.Unmarshal(env.Data, &data)
	if !data.Cached {
		t.Error("repeat request should be cached")
	}
}

func TestServerErrorStatus(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
		widget string
	}{
		{
			name:   "out of bounds",
			method: http.MethodPost, path: "/layouts/analysis",
			body:   `{"widgets": [{"id": "k", "type": "kpi", "position": {"x": 20, "y": 0, "w": 1, "h": 1}}]}`,
			status: http.StatusBadRequest, code: "INVALID_POSITION", widget: "k",
		},
		{
			name:   "duplicate id",
			method: http.MethodPost, path: "/layouts/resolve",
			body:   `{"items": [{"i": "a", "x": 0, "y": 0, "w": 1, "h": 1}, {"i": "a", "x": 1, "y": 0, "w": 1, "h": 1}]}`,
			status: http.StatusConflict, code: "DUPLICATE_ID", widget: "a",
		},
		{
			name:   "unknown preset",
			method: http.MethodPost, path: "/layouts/preset",
			body:   `{"preset": "nope"}`,
			status: http.StatusBadRequest, code: "INVALID_PRESET",
		},
		{
			name:   "negative count",
			method: http.MethodPost, path: "/layouts/binpack",
			body:   `{"count": -1}`,
			status: http.StatusBadRequest, code: "INVALID_INPUT",
		},
		{
			name:   "missing preset",
			method: http.MethodGet, path: "/presets/nope",
			status: http.StatusNotFound, code: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, srv, tt.method, tt.path, tt.body)
			if status != tt.status || env.Code != tt.code || env.Success {
				t.Errorf("got %d %s, want %d %s (%s)", status, env.Code, tt.status, tt.code, env.Message)
			}
			if env.Widget != tt.widget {
				t.Errorf("widget = %q, want %q", env.Widget, tt.widget)
			}
		})
	}
}

func TestServerPresetAndBinPack(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodPost, "/layouts/preset", `{"preset": "overview", "seed": 3}`)
	if status != http.StatusOK {
		t.Fatalf("preset status = %d (%s)", status, env.Message)
	}
	var data LayoutResponse
	_ = json.Unmarshal(env.Data, &data)
	if len(data.Layout.Items) != 7 || data.Layout.Preset != "overview" {
		t.Errorf("preset layout = %+v", data.Layout)
	}

	status, env = do(t, srv, http.MethodPost, "/layouts/binpack", `{"count": 5, "seed": 3}`)
	if status != http.StatusOK {
		t.Fatalf("binpack status = %d (%s)", status, env.Message)
	}
	_ = json.Unmarshal(env.Data, &data)
	if len(data.Layout.Items) != 5 {
		t.Errorf("binpack items = %d", len(data.Layout.Items))
	}
}

func TestServerCatalog(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodGet, "/presets", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var presets []generate.Preset
	_ = json.Unmarshal(env.Data, &presets)
	if len(presets) != len(generate.DefaultPresets()) {
		t.Errorf("got %d presets", len(presets))
	}

	status, env = do(t, srv, http.MethodGet, "/widget-types", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	var types []WidgetType
	_ = json.Unmarshal(env.Data, &types)
	if len(types) != len(widget.Components()) {
		t.Errorf("got %d widget types", len(types))
	}

	status, env = do(t, srv, http.MethodGet, "/healthz", "")
	var health HealthResponse
	_ = json.Unmarshal(env.Data, &health)
	if status != http.StatusOK || health.Status != "ok" {
		t.Errorf("healthz = %d %+v", status, health)
	}
}

func TestServerStats(t *testing.T) {
	stats := observability.NewStats()
	observability.Install(stats.Hooks())
	defer observability.Reset()
	srv := newTestServerWithStats(t, stats)

	if status, env := do(t, srv, http.MethodPost, "/layouts/binpack", `{"count": 3, "seed": 1}`); status != http.StatusOK {
		t.Fatalf("binpack status = %d (%s)", status, env.Message)
	}
	if status, _ := do(t, srv, http.MethodPost, "/layouts/preset", `{"preset": "nope"}`); status != http.StatusBadRequest {
		t.Fatalf("bad preset status = %d", status)
	}

	status, env := do(t, srv, http.MethodGet, "/stats", "")
	if status != http.StatusOK {
		t.Fatalf("stats status = %d", status)
	}
	var snap observability.StatsSnapshot
	if err := json.Unmarshal(env.Data, &snap); err != nil {
		t.Fatal(err)
	}
	if r := snap.Runs["binpack"]; r.Runs != 1 || r.Items != 3 {
		t.Errorf("binpack runs = %+v", r)
	}
	if r := snap.Runs["preset"]; r.Failures != 1 {
		t.Errorf("preset runs = %+v", r)
	}
	if snap.Responses["400"] != 1 {
		t.Errorf("responses = %v", snap.Responses)
	}
}

func TestServerStatsRouteOptional(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/stats")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /stats without Stats = %d, want 404", resp.StatusCode)
	}
}
