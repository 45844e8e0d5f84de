package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gonum.org/v1/plot/vg"

	"github.com/solartools/clearsky/internal/archive"
	"github.com/solartools/clearsky/pkg/chart"
	"github.com/solartools/clearsky/pkg/solar"
)

// Handlers contains all HTTP handlers for the irradiance API.
type Handlers struct {
	server *Server
}

// NewHandlers creates a new handlers instance
func NewHandlers(s *Server) *Handlers {
	return &Handlers{server: s}
}

// renderPNG is swappable in tests to exercise the render failure path.
var renderPNG func(w io.Writer, s chart.Series, width, height vg.Length) error = chart.WritePNG

// IrradianceResponse is the payload for GET /api/irradiance.
type IrradianceResponse struct {
	Latitude  float64   `json:"latitude"`
	DayOfYear int       `json:"day_of_year"`
	Hours     []int     `json:"hours"`
	GHI       []float64 `json:"ghi"`
	PeakHour  int       `json:"peak_hour"`
	PeakGHI   float64   `json:"peak_ghi"`
	DailyKWh  float64   `json:"daily_kwh"`
}

func parseFloatParam(req *http.Request, name string) (float64, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter %q", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %q: %v", name, err)
	}
	return v, nil
}

func parseIntParam(req *http.Request, name string) (int, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter %q", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %q: %v", name, err)
	}
	return v, nil
}

// GetIrradiance serves the hourly clear-sky GHI profile for ?lat= and ?doy=.
func (h *Handlers) GetIrradiance(w http.ResponseWriter, req *http.Request) {
	lat, err := parseFloatParam(req, "lat")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doy, err := parseIntParam(req, "doy")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p := solar.NewProfile(lat, doy)
	peakHour, peakGHI := p.Peak()
	resp := IrradianceResponse{
		Latitude:  p.Latitude,
		DayOfYear: p.DayOfYear,
		Hours:     p.Hours,
		GHI:       p.GHI,
		PeakHour:  peakHour,
		PeakGHI:   peakGHI,
		DailyKWh:  p.DailyEnergy(),
	}

	if err := writeResponse(w, req, resp); err != nil {
		h.server.logger.Errorf("error writing irradiance response: %v", err)
	}
}

// GetChart serves the profile as a rendered PNG line chart.
func (h *Handlers) GetChart(w http.ResponseWriter, req *http.Request) {
	lat, err := parseFloatParam(req, "lat")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doy, err := parseIntParam(req, "doy")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	title := req.URL.Query().Get("title")
	if title == "" {
		title = fmt.Sprintf("Clear-Sky GHI (lat %.2f, day %d)", lat, doy)
	}

	p := solar.NewProfile(lat, doy)
	xs := make([]float64, len(p.Hours))
	for i, hr := range p.Hours {
		xs[i] = float64(hr)
	}

	// Render into memory first so a failure can still return a 500 instead
	// of a truncated 200 body.
	var buf bytes.Buffer
	err = renderPNG(&buf, chart.Series{
		Title:  title,
		XLabel: "Hour of Day",
		YLabel: "GHI (W/m²)",
		X:      xs,
		Y:      p.GHI,
	}, chartWidth, chartHeight)
	if err != nil {
		h.server.logger.Errorf("error rendering chart: %v", err)
		http.Error(w, "error rendering chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := buf.WriteTo(w); err != nil {
		h.server.logger.Errorf("error writing chart response: %v", err)
	}
}

// GetSunTimes serves sunrise and sunset for ?lat=, ?lon= and ?doy=.
func (h *Handlers) GetSunTimes(w http.ResponseWriter, req *http.Request) {
	lat, err := parseFloatParam(req, "lat")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lon, err := parseFloatParam(req, "lon")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doy, err := parseIntParam(req, "doy")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := writeResponse(w, req, solar.RiseSet(doy, lat, lon)); err != nil {
		h.server.logger.Errorf("error writing sun times response: %v", err)
	}
}

// GetPosition serves the apparent solar position for ?lat=, ?lon= and an
// optional RFC3339 ?time= (default: now).
func (h *Handlers) GetPosition(w http.ResponseWriter, req *http.Request) {
	lat, err := parseFloatParam(req, "lat")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lon, err := parseFloatParam(req, "lon")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ts := time.Now().UTC()
	if raw := req.URL.Query().Get("time"); raw != "" {
		ts, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid \"time\": %v", err), http.StatusBadRequest)
			return
		}
	}

	if err := writeResponse(w, req, solar.PositionAt(ts, lat, lon)); err != nil {
		h.server.logger.Errorf("error writing position response: %v", err)
	}
}

// ListProfiles serves the archived profile runs, newest first.
func (h *Handlers) ListProfiles(w http.ResponseWriter, req *http.Request) {
	if h.server.store == nil {
		http.Error(w, "profile archive not enabled", http.StatusNotFound)
		return
	}

	records, err := h.server.store.List()
	if err != nil {
		h.server.logger.Errorf("error listing profiles: %v", err)
		http.Error(w, "error listing profiles", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []archive.Record{}
	}

	if err := writeResponse(w, req, records); err != nil {
		h.server.logger.Errorf("error writing profiles response: %v", err)
	}
}

// GetProfile serves one archived profile by id.
func (h *Handlers) GetProfile(w http.ResponseWriter, req *http.Request) {
	if h.server.store == nil {
		http.Error(w, "profile archive not enabled", http.StatusNotFound)
		return
	}

	id := mux.Vars(req)["id"]
	rec, err := h.server.store.Get(id)
	if errors.Is(err, archive.ErrNotFound) {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.server.logger.Errorf("error fetching profile %s: %v", id, err)
		http.Error(w, "error fetching profile", http.StatusInternalServerError)
		return
	}

	if err := writeResponse(w, req, rec); err != nil {
		h.server.logger.Errorf("error writing profile response: %v", err)
	}
}
