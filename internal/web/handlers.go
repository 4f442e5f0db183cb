package web

import (
	"bytes"
	"embed"
	"html/template"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"clean-energy-predictor/internal/features"
	"clean-energy-predictor/internal/present"

	"github.com/rs/zerolog/log"
)

const pageTitle = "Clean Energy Price Predictor"

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type roleOption struct {
	Key      string
	Label    string
	Selected bool
}

type pageData struct {
	Title   string
	Form    features.FeatureRecord
	Roles   []roleOption
	MinHour int
	MaxHour int
	Result  *present.Result
	Error   string
}

func newPageData(rec features.FeatureRecord, selected features.Role) pageData {
	opts := make([]roleOption, 0, len(features.Roles))
	for _, r := range features.Roles {
		opts = append(opts, roleOption{Key: r.Key(), Label: r.String(), Selected: r == selected})
	}
	return pageData{
		Title:   pageTitle,
		Form:    rec,
		Roles:   opts,
		MinHour: features.MinHour,
		MaxHour: features.MaxHour,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, newPageData(features.Default(), features.DefaultRole))
}

func (s *Server) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		data := newPageData(features.Default(), features.DefaultRole)
		data.Error = "Could not read the submitted form."
		s.renderPage(w, http.StatusBadRequest, data)
		return
	}

	rec := parseFormRecord(r.PostForm)

	role := features.DefaultRole
	if v := strings.TrimSpace(r.PostForm.Get("role")); v != "" {
		parsed, err := features.ParseRole(v)
		if err != nil {
			data := newPageData(rec, features.DefaultRole)
			data.Error = "Please choose a user type from the list."
			s.renderPage(w, http.StatusBadRequest, data)
			return
		}
		role = parsed
	}

	data := newPageData(rec, role)

	res, err := s.predict(rec, role)
	if err != nil {
		data.Error = "Prediction failed: " + err.Error()
		s.renderPage(w, http.StatusInternalServerError, data)
		return
	}

	data.Result = &res
	s.renderPage(w, http.StatusOK, data)
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Error().Err(err).Msg("failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// parseFormRecord reads the four inputs the way the widgets constrain them:
// missing or unparseable values take the field default, then the record is
// clamped into range.
func parseFormRecord(form url.Values) features.FeatureRecord {
	def := features.Default()
	rec := features.FeatureRecord{
		UnmetKWh:        formFloat(form, "unmet_kwh", def.UnmetKWh),
		LoadKWh:         formFloat(form, "load_kwh", def.LoadKWh),
		Hour:            formInt(form, "hour", def.Hour),
		NaturalGasPrice: formFloat(form, "natural_gas_price", def.NaturalGasPrice),
	}
	return rec.Clamp()
}

func formFloat(form url.Values, key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(form.Get(key)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func formInt(form url.Values, key string, def int) int {
	raw := strings.TrimSpace(form.Get(key))
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	// range inputs occasionally post "7.0"
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(math.Round(math.Max(-1, math.Min(f, float64(features.MaxHour+1)))))
	}
	return def
}
