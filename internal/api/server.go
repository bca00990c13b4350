// Package api exposes the advisor over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"StockAdvisor/internal/backtest"
	"StockAdvisor/internal/cache"
	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/montecarlo"
	"StockAdvisor/internal/portfolio"
)

// Server wires the analysis components behind a mux router.
type Server struct {
	Analyzer  *portfolio.Analyzer
	Collector *collector.Collector
	Cache     *cache.Cache

	httpServer *http.Server
}

// NewServer builds the HTTP server on the given listen address.
func NewServer(addr string, an *portfolio.Analyzer, col *collector.Collector, c *cache.Cache) *Server {
	s := &Server{Analyzer: an, Collector: col, Cache: c}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyze", s.handleAnalyze).Methods("POST")
	api.HandleFunc("/report", s.handleReport).Methods("GET")
	api.HandleFunc("/simulate/{symbol}", s.handleSimulate).Methods("GET")
	api.HandleFunc("/backtest/{symbol}", s.handleBacktest).Methods("GET")

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	log.Infof("http server listening on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AnalyzeRequest is the POST /api/v1/analyze body.
type AnalyzeRequest struct {
	Holdings []model.Holding `json:"holdings"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request", err)
		return
	}
	if len(req.Holdings) == 0 {
		writeError(w, http.StatusBadRequest, "analyze", errors.New("holdings must not be empty"))
		return
	}

	report, err := s.Analyzer.Analyze(r.Context(), req.Holdings)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, portfolio.ErrEmptyReport) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, "analyze", err)
		return
	}

	s.Cache.PutReport(report)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	report, ok := s.Cache.LastReport()
	if !ok {
		writeError(w, http.StatusNotFound, "no cached report", errors.New("run an analysis first"))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	q := r.URL.Query()

	mode, err := montecarlo.ParseMode(q.Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "parse mode", err)
		return
	}
	cfg := montecarlo.Config{
		DaysForecast: intParam(q.Get("days"), 30),
		Simulations:  intParam(q.Get("sims"), 200),
		Mode:         mode,
		Seed:         int64(intParam(q.Get("seed"), 0)),
	}

	series, err := s.fetchSeries(symbol, q.Get("period"), "6mo")
	if err != nil {
		writeFetchError(w, symbol, err)
		return
	}

	bundle, err := montecarlo.Project(series.Closes(), cfg)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "project", err)
		return
	}
	bundle.Symbol = symbol

	resp := struct {
		*model.SimulationBundle
		Summary model.SimulationSummary `json:"summary"`
	}{bundle, montecarlo.Summarize(bundle)}
	if q.Get("paths") != "true" {
		resp.Paths = nil
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	q := r.URL.Query()

	cfg := backtest.Config{
		RSIWindow:      intParam(q.Get("window"), 0),
		BuyThreshold:   floatParam(q.Get("buy"), 0),
		SellThreshold:  floatParam(q.Get("sell"), 0),
		InitialCapital: floatParam(q.Get("capital"), 0),
	}

	series, err := s.fetchSeries(symbol, q.Get("period"), "1y")
	if err != nil {
		writeFetchError(w, symbol, err)
		return
	}

	result, err := backtest.Run(series, cfg)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "backtest", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) fetchSeries(symbol, period, fallback string) (*model.PriceSeries, error) {
	if period == "" {
		period = fallback
	}
	if !collector.ValidPeriod(period) {
		return nil, errInvalidPeriod
	}
	if series, ok := s.Cache.Series(symbol, period); ok {
		return series, nil
	}
	series, err := s.Collector.Fetcher.FetchHistory(symbol, period)
	if err != nil {
		return nil, err
	}
	s.Cache.PutSeries(symbol, period, series)
	return series, nil
}

var errInvalidPeriod = errors.New("invalid period")

func writeFetchError(w http.ResponseWriter, symbol string, err error) {
	switch {
	case errors.Is(err, errInvalidPeriod):
		writeError(w, http.StatusBadRequest, "period", err)
	case errors.Is(err, collector.ErrNoData):
		writeError(w, http.StatusNotFound, "fetch "+symbol, err)
	default:
		writeError(w, http.StatusBadGateway, "fetch "+symbol, err)
	}
}

func intParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return def
}

func floatParam(raw string, def float64) float64 {
	if raw == "" {
		return def
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return def
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	log.Warnf("%s: %v", msg, err)
	writeJSON(w, status, map[string]string{"error": msg + ": " + err.Error()})
}
