package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/dgnsrekt/gexlab/internal/chain"
	"github.com/dgnsrekt/gexlab/internal/gex"
	"github.com/dgnsrekt/gexlab/internal/series"
)

type errorResponse struct {
	Error string `json:"error"`
}

type profileResponse struct {
	Symbol     string               `json:"symbol"`
	Expiration string               `json:"expiration"`
	Snapshot   string               `json:"snapshot"`
	Spot       float64              `json:"spot"`
	ZeroGamma  *float64             `json:"zero_gamma"`
	TotalCall  float64              `json:"total_call"`
	TotalPut   float64              `json:"total_put"`
	Strikes    []gex.StrikeExposure `json:"strikes"`
}

type seriesResponse struct {
	Symbol     string        `json:"symbol"`
	Expiration string        `json:"expiration"`
	Metric     string        `json:"metric"`
	Points     series.Series `json:"points"`
}

type volumeResponse struct {
	Symbol     string             `json:"symbol"`
	Expiration string             `json:"expiration"`
	Snapshot   string             `json:"snapshot"`
	Spot       float64            `json:"spot"`
	Strikes    []gex.StrikeVolume `json:"strikes"`
}

// handleGEXProfile serves the per-strike exposure profile from the most
// recent snapshot matching symbol/expiration.
func (s *Server) handleGEXProfile(w http.ResponseWriter, r *http.Request) {
	symbol, expiration, ok := requireFilter(w, r)
	if !ok {
		return
	}

	rng, err := strikeRangeParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	path, err := chain.LatestSnapshot(s.cfg.DataDir, symbol, expiration)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	snap, err := chain.ReadSnapshot(path)
	if err != nil {
		s.logger.Error("reading snapshot", zap.String("file", filepath.Base(path)), zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "snapshot could not be read"})
		return
	}

	exposures := gex.AggregateByStrike(snap, s.cfg.NetGEX.Multiplier, rng)
	spot, _ := snap.Spot()

	resp := profileResponse{
		Symbol:     symbol,
		Expiration: expiration,
		Snapshot:   filepath.Base(path),
		Spot:       spot,
		Strikes:    exposures,
	}
	if level, ok := gex.ZeroGammaLevel(exposures); ok {
		resp.ZeroGamma = &level
	}
	for _, e := range exposures {
		resp.TotalCall += e.Call
		resp.TotalPut += e.Put
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNetGEX(w http.ResponseWriter, r *http.Request) {
	params := s.cfg.NetGEXParams()
	s.handleSeries(w, r, "netgex", func(snap *chain.Snapshot) float64 {
		return gex.NetGEXNearSpot(snap, params)
	})
}

func (s *Server) handleDGI(w http.ResponseWriter, r *http.Request) {
	minDelta, maxDelta := s.cfg.DGI.MinAbsDelta, s.cfg.DGI.MaxAbsDelta
	s.handleSeries(w, r, "dgi", func(snap *chain.Snapshot) float64 {
		return gex.DirectionalImbalance(snap, minDelta, maxDelta)
	})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request, name string, metric series.Metric) {
	symbol, expiration, ok := requireFilter(w, r)
	if !ok {
		return
	}

	points, err := s.loader.Load(r.Context(), series.Request{
		Symbol:     symbol,
		Expiration: expiration,
		SampleDate: r.URL.Query().Get("date"),
	}, metric)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, seriesResponse{
		Symbol:     symbol,
		Expiration: expiration,
		Metric:     name,
		Points:     points,
	})
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	symbol, expiration, ok := requireFilter(w, r)
	if !ok {
		return
	}

	rng, err := strikeRangeParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	filter := gex.VolumeFilter{Side: gex.SideAll, Range: rng}
	if side := r.URL.Query().Get("side"); side != "" {
		filter.Side = gex.Side(side)
	}
	if topN := r.URL.Query().Get("top"); topN != "" {
		n, err := strconv.Atoi(topN)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "top must be a positive integer"})
			return
		}
		filter.TopN = n
	}

	path, err := chain.LatestSnapshot(s.cfg.DataDir, symbol, expiration)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	snap, err := chain.ReadSnapshot(path)
	if err != nil {
		s.logger.Error("reading snapshot", zap.String("file", filepath.Base(path)), zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "snapshot could not be read"})
		return
	}

	volumes, err := gex.VolumeByStrike(snap, filter)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	spot, _ := snap.Spot()

	writeJSON(w, http.StatusOK, volumeResponse{
		Symbol:     symbol,
		Expiration: expiration,
		Snapshot:   filepath.Base(path),
		Spot:       spot,
		Strikes:    volumes,
	})
}

func requireFilter(w http.ResponseWriter, r *http.Request) (symbol, expiration string, ok bool) {
	symbol = r.URL.Query().Get("symbol")
	expiration = r.URL.Query().Get("expiration")
	if symbol == "" || expiration == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "symbol and expiration query parameters are required"})
		return "", "", false
	}
	return symbol, expiration, true
}

func strikeRangeParam(r *http.Request) (gex.StrikeRange, error) {
	var rng gex.StrikeRange
	for _, bound := range []struct {
		name string
		dst  **float64
	}{
		{"min_strike", &rng.Min},
		{"max_strike", &rng.Max},
	} {
		raw := r.URL.Query().Get(bound.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rng, errors.New(bound.name + " must be numeric")
		}
		*bound.dst = &v
	}
	return rng, nil
}

func (s *Server) writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, series.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, chain.ErrNoSnapshots):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, series.ErrNoValidData):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
