// Package web serves the price predictor over HTTP: the HTML form, a JSON
// API, a live websocket feed of predictions and the Prometheus endpoint.
package web

import (
	"context"
	"net/http"
	"time"

	"clean-energy-predictor/internal/common"
	"clean-energy-predictor/internal/features"
	"clean-energy-predictor/internal/ml"
	"clean-energy-predictor/internal/present"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Metrics is the subset of the metrics wrapper the HTTP layer records to.
type Metrics interface {
	RoleSelected(role string)
	RequestServed(route string, code int)
	FeedClientsSet(n int)
	HistoryWrite(ok bool)
}

// HistoryStore persists served predictions. Optional.
type HistoryStore interface {
	StorePrediction(res present.Result) (present.Result, error)
	RecentPredictions(limit int) ([]present.Result, error)
}

type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	HistoryLimit int
	EnableFeed   bool

	// Gatherer backs /metrics; nil means the default registry.
	Gatherer prometheus.Gatherer
}

// Server wires the predictor to its HTTP surface.
type Server struct {
	predictor ml.PredictorInterface
	history   HistoryStore
	metrics   Metrics
	feed      *Feed
	cfg       Config
	handler   http.Handler
	server    *http.Server
	now       func() time.Time
}

// NewServer builds the route table. history and metrics may be nil.
func NewServer(predictor ml.PredictorInterface, history HistoryStore, metrics Metrics, cfg Config) *Server {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = common.DefaultHistoryLimit
	}

	s := &Server{
		predictor: predictor,
		history:   history,
		metrics:   metrics,
		cfg:       cfg,
		now:       time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /predict", s.handlePredictForm)
	mux.HandleFunc("POST /api/predict", s.handlePredictAPI)
	mux.HandleFunc("GET /api/roles", s.handleRoles)
	mux.HandleFunc("GET /api/model", s.handleModelInfo)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /health", s.handleHealth)

	if cfg.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	} else {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	if cfg.EnableFeed {
		s.feed = NewFeed(metrics)
		mux.Handle("GET /ws/predictions", s.feed)
	}

	s.handler = s.logRequests(mux)
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Handler exposes the full middleware-wrapped route table.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Bool("feed", s.feed != nil).Bool("history", s.history != nil).
		Msg("starting price predictor server")
	return s.server.ListenAndServe()
}

// Shutdown drops feed clients, then gracefully stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.feed != nil {
		s.feed.Close()
	}
	return s.server.Shutdown(ctx)
}

// predict is the single path every trigger goes through: model call,
// rendering, then the optional history write and feed broadcast.
func (s *Server) predict(rec features.FeatureRecord, role features.Role) (present.Result, error) {
	price, err := s.predictor.Predict(rec)
	if err != nil {
		return present.Result{}, err
	}
	s.metrics.RoleSelected(role.Key())

	res := present.Render(price, role, rec, s.now().UTC())
	res.ID = uuid.New().String()

	if s.history != nil {
		stored, err := s.history.StorePrediction(res)
		s.metrics.HistoryWrite(err == nil)
		if err != nil {
			log.Warn().Err(err).Str("id", res.ID).Msg("failed to record prediction history")
		} else {
			res = stored
		}
	}

	if s.feed != nil {
		s.feed.Broadcast(res)
	}

	log.Info().
		Str("id", res.ID).
		Str("role", role.Key()).
		Float64("price", price).
		Msg("prediction served")

	return res, nil
}

type noopMetrics struct{}

func (noopMetrics) RoleSelected(string)      {}
func (noopMetrics) RequestServed(string, int) {}
func (noopMetrics) FeedClientsSet(int)        {}
func (noopMetrics) HistoryWrite(bool)         {}
