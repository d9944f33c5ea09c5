package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iafilius/LaunchDashboard/src/analysis"
	"github.com/iafilius/LaunchDashboard/src/config"
	"github.com/iafilius/LaunchDashboard/src/dataset"
	"github.com/iafilius/LaunchDashboard/src/render"
	"github.com/iafilius/LaunchDashboard/src/types"
)

// AllSitesLabel is the dropdown label of the AllSites entry.
const AllSitesLabel = "All Sites"

// errInvalidParam marks a malformed query parameter other than the payload range.
var errInvalidParam = errors.New("invalid parameter")

// Handler serves the dashboard over a single read-only dataset.
type Handler struct {
	ds      *dataset.Dataset
	cfg     config.Config
	metrics *Metrics
}

func NewHandler(ds *dataset.Dataset, cfg config.Config, metrics *Metrics) *Handler {
	return &Handler{ds: ds, cfg: cfg, metrics: metrics}
}

// SiteOptions returns the dropdown entries: AllSites first, then the configured sites or,
// when none are configured, every dataset site in order of first appearance.
func (h *Handler) SiteOptions() []types.SiteOption {
	out := []types.SiteOption{{Label: AllSitesLabel, Value: types.AllSites}}
	if len(h.cfg.Sites) > 0 {
		return append(out, h.cfg.Sites...)
	}
	for _, site := range h.ds.Sites() {
		out = append(out, types.SiteOption{Label: site, Value: site})
	}
	return out
}

type sliderView struct {
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Step  float64    `json:"step"`
	Marks []float64  `json:"marks"`
	Value [2]float64 `json:"value"`
}

type optionsView struct {
	Title  string             `json:"title"`
	Sites  []types.SiteOption `json:"sites"`
	Site   string             `json:"site"`
	Slider sliderView         `json:"slider"`
}

func (h *Handler) options() optionsView {
	lo, hi := h.ds.PayloadBounds()
	return optionsView{
		Title: h.cfg.Title,
		Sites: h.SiteOptions(),
		Site:  types.AllSites,
		Slider: sliderView{
			Min:   h.cfg.Slider.Min,
			Max:   h.cfg.Slider.Max,
			Step:  h.cfg.Slider.Step,
			Marks: h.cfg.Slider.Marks(),
			Value: [2]float64{lo, hi},
		},
	}
}

// selection reads site, low and high from the query string. A missing site means AllSites,
// a missing bound falls back to the dataset bound.
func (h *Handler) selection(r *http.Request) (analysis.Selection, error) {
	q := r.URL.Query()
	sel := analysis.Selection{Site: strings.TrimSpace(q.Get("site")), Payload: analysis.FullRange(h.ds)}
	if sel.Site == "" {
		sel.Site = types.AllSites
	}
	var err error
	if sel.Payload.Low, err = floatParam(q.Get("low"), sel.Payload.Low); err != nil {
		return sel, fmt.Errorf("%w: low: %v", analysis.ErrInvalidRange, err)
	}
	if sel.Payload.High, err = floatParam(q.Get("high"), sel.Payload.High); err != nil {
		return sel, fmt.Errorf("%w: high: %v", analysis.ErrInvalidRange, err)
	}
	return sel, sel.Payload.Validate()
}

func floatParam(raw string, fallback float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// widthParam parses the width query parameter of a chart image request.
func widthParam(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 || v > render.MaxChartWidth {
		return 0, fmt.Errorf("%w: width must be an integer in 1..%d, got %q", errInvalidParam, render.MaxChartWidth, raw)
	}
	return v, nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status, code, msg := mapError(err)
	logOperationError(r.Context(), operation, status, code, err)
	writeError(w, status, code, msg)
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	if h.ds == nil || h.ds.Len() == 0 {
		writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dataset not loaded")
		return
	}
	writeMessage(w, http.StatusOK, "ready")
}

func (h *Handler) getOptions(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, h.options())
}

func (h *Handler) getFigure(w http.ResponseWriter, r *http.Request) {
	kind := analysis.ChartKind(chi.URLParam(r, "chart"))
	b, err := analysis.BuilderFor(kind)
	if err != nil {
		h.fail(w, r, "get_figure", err)
		return
	}
	sel, err := h.selection(r)
	if err != nil {
		h.fail(w, r, "get_figure", err)
		return
	}
	writeSuccess(w, http.StatusOK, b.Build(h.ds, sel))
}

type recordsView struct {
	Selection analysis.Selection   `json:"selection"`
	Count     int                  `json:"count"`
	Records   []types.LaunchRecord `json:"records"`
}

func (h *Handler) getRecords(w http.ResponseWriter, r *http.Request) {
	sel, err := h.selection(r)
	if err != nil {
		h.fail(w, r, "get_records", err)
		return
	}
	rows := analysis.ScatterRows(h.ds, sel.Site, sel.Payload)
	writeSuccess(w, http.StatusOK, recordsView{Selection: sel, Count: len(rows), Records: rows})
}

func (h *Handler) getChartImage(w http.ResponseWriter, r *http.Request) {
	kind := analysis.ChartKind(chi.URLParam(r, "chart"))
	format, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		h.fail(w, r, "render_chart", err)
		return
	}
	b, err := analysis.BuilderFor(kind)
	if err != nil {
		h.fail(w, r, "render_chart", err)
		return
	}
	sel, err := h.selection(r)
	if err != nil {
		h.fail(w, r, "render_chart", err)
		return
	}
	opts := render.Options{Width: h.cfg.ChartWidth, Height: h.cfg.ChartHeight, Format: format}
	if raw := strings.TrimSpace(r.URL.Query().Get("width")); raw != "" {
		width, err := widthParam(raw)
		if err != nil {
			h.fail(w, r, "render_chart", err)
			return
		}
		if width != h.cfg.ChartWidth {
			opts.Width, opts.Height = width, 0
		}
	}
	img, err := render.Render(b.Build(h.ds, sel), opts)
	h.metrics.observeRender(string(b.Kind()), string(format), err)
	if err != nil {
		if !errors.Is(err, render.ErrUnsupportedFormat) {
			err = fmt.Errorf("render %s: %w", kind, err)
		}
		h.fail(w, r, "render_chart", err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
