package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}).ParseFS(templatesFS, "templates/dashboard.html"))

type pageData struct {
	Options     optionsView
	Placeholder string
	PieID       string
	ScatterID   string
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Options:     h.options(),
		Placeholder: "Select a Launch Site here",
		PieID:       "success-pie-chart",
		ScatterID:   "success-payload-scatter-chart",
	}
	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		h.fail(w, r, "render_page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func faviconHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
