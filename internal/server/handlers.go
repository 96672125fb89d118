package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dashgrid/pkg/buildinfo"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/generate"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layout"
	"github.com/matzehuels/dashgrid/pkg/observability"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

// LayoutService runs layout jobs. *pipeline.Runner implements it.
type LayoutService interface {
	Execute(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error)
}

// Deps holds everything the handlers need.
type Deps struct {
	Log             *log.Logger
	ResponseHandler ResponseHandler
	LayoutSvc       LayoutService

	Profiles widget.Profiles
	Presets  generate.Presets
	Policy   widget.Policy

	// Stats backs GET /stats; the route is omitted when nil.
	Stats *observability.Stats
}

// =============================================================================
// Request / Response Types
// =============================================================================

type resolveRequest struct {
	Items []layout.Item `json:"items"`
}

type presetRequest struct {
	Preset       string `json:"preset"`
	Pattern      string `json:"pattern"`
	MinWidthCols int    `json:"minWidthCols"`
	Seed         uint64 `json:"seed"`
	Refresh      bool   `json:"refresh"`
}

type binPackRequest struct {
	Count   *int   `json:"count"`
	Seed    uint64 `json:"seed"`
	Refresh bool   `json:"refresh"`
}

// LayoutResponse is the data of every layout endpoint.
type LayoutResponse struct {
	Layout layout.Layout `json:"layout"`
	Hash   string        `json:"hash"`
	Cached bool          `json:"cached"`
	Stats  StatsResponse `json:"stats"`
}

// StatsResponse reports what a job did.
type StatsResponse struct {
	Items       int   `json:"items"`
	Corrections int   `json:"corrections"`
	DurationMS  int64 `json:"durationMs"`
}

// WidgetType describes one widget type for clients.
type WidgetType struct {
	Component string          `json:"component"`
	Category  widget.Category `json:"category"`
	SmallCard bool            `json:"smallCard"`
	MinW      int             `json:"minW"`
	MinH      int             `json:"minH"`
	MaxW      int             `json:"maxW,omitempty"`
	Profile   *widget.Profile `json:"profile,omitempty"`
}

// HealthResponse is the data of the health endpoint.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func newLayoutResponse(res *pipeline.Result) LayoutResponse {
	return LayoutResponse{
		Layout: res.Layout,
		Hash:   res.Hash,
		Cached: res.CacheHit,
		Stats: StatsResponse{
			Items:       res.Stats.Items,
			Corrections: res.Stats.Corrections,
			DurationMS:  res.Stats.Duration.Round(time.Millisecond).Milliseconds(),
		},
	}
}

// =============================================================================
// Layout Handlers
// =============================================================================

type layoutHandlers struct {
	ResponseHandler ResponseHandler
	LayoutSvc       LayoutService
}

// NewLayoutHandlers creates the /layouts handlers.
func NewLayoutHandlers(deps *Deps) *layoutHandlers {
	return &layoutHandlers{
		ResponseHandler: deps.ResponseHandler,
		LayoutSvc:       deps.LayoutSvc,
	}
}

func (h *layoutHandlers) LayoutRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/analysis", h.ConvertAnalysis)
	r.Post("/resolve", h.Resolve)
	r.Post("/preset", h.GeneratePreset)
	r.Post("/binpack", h.BinPack)
	return r
}

// ConvertAnalysis takes an analysis result as the request body.
func (h *layoutHandlers) ConvertAnalysis(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	h.run(w, r, pipeline.Options{Kind: pipeline.KindAnalysis, Input: body, Refresh: refresh})
}

func (h *layoutHandlers) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.run(w, r, pipeline.Options{Kind: pipeline.KindResolve, Items: req.Items})
}

func (h *layoutHandlers) GeneratePreset(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	opts := pipeline.Options{
		Kind:         pipeline.KindPreset,
		Preset:       req.Preset,
		MinWidthCols: req.MinWidthCols,
		Seed:         req.Seed,
		Refresh:      req.Refresh,
	}
	if req.Pattern != "" {
		pattern, err := generate.ParsePattern(req.Pattern)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		opts.Pattern = pattern
	}
	h.run(w, r, opts)
}

func (h *layoutHandlers) BinPack(w http.ResponseWriter, r *http.Request) {
	var req binPackRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	count := pipeline.DefaultCount
	if req.Count != nil {
		count = *req.Count
	}
	h.run(w, r, pipeline.Options{Kind: pipeline.KindBinPack, Count: count, Seed: req.Seed, Refresh: req.Refresh})
}

func (h *layoutHandlers) run(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	opts.Logger = requestLogger(r, nil)
	res, err := h.LayoutSvc.Execute(r.Context(), opts)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, newLayoutResponse(res))
}

// decodeJSON decodes a request body. An empty body decodes to the zero
// value.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

// =============================================================================
// Catalog Handlers
// =============================================================================

type catalogHandlers struct {
	ResponseHandler ResponseHandler
	Profiles        widget.Profiles
	Presets         generate.Presets
	Policy          widget.Policy
	Stats           *observability.Stats
}

// NewCatalogHandlers creates the read-only catalog handlers.
func NewCatalogHandlers(deps *Deps) *catalogHandlers {
	return &catalogHandlers{
		ResponseHandler: deps.ResponseHandler,
		Profiles:        deps.Profiles,
		Presets:         deps.Presets,
		Policy:          deps.Policy,
		Stats:           deps.Stats,
	}
}

func (h *catalogHandlers) ListPresets(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.Presets.List())
}

// GetPreset returns one preset by name.
func (h *catalogHandlers) GetPreset(w http.ResponseWriter, r *http.Request) {
	p, err := h.Presets.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, errors.Wrap(errors.ErrCodeNotFound, err, "preset"))
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, p)
}

// ListWidgetTypes returns every known component plus any custom profile.
func (h *catalogHandlers) ListWidgetTypes(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, WidgetTypes(h.Profiles, h.Policy))
}

// GetStats returns the in-process counters.
func (h *catalogHandlers) GetStats(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.Stats.Snapshot())
}

func (h *catalogHandlers) Health(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Get()})
}

// WidgetTypes builds the widget type catalog from the profile and policy
// tables.
func WidgetTypes(profiles widget.Profiles, policy widget.Policy) []WidgetType {
	var out []WidgetType
	seen := make(map[string]bool)
	for _, c := range widget.Components() {
		floor := policy.MinDimensions(c)
		wt := WidgetType{
			Component: string(c),
			Category:  c.Category(),
			SmallCard: c.IsSmallCard(),
			MinW:      floor.MinW,
			MinH:      floor.MinH,
			MaxW:      policy.MaxWidth(grid.Display, c),
		}
		if p, ok := profiles[string(c)]; ok {
			wt.Profile = &p
		}
		out = append(out, wt)
		seen[string(c)] = true
	}
	for _, name := range profiles.Names() {
		if seen[name] {
			continue
		}
		p := profiles[name]
		out = append(out, WidgetType{
			Component: name,
			Category:  p.Category,
			MinW:      p.MinCols,
			MinH:      p.MinRows,
			MaxW:      p.MaxCols,
			Profile:   &p,
		})
	}
	return out
}
