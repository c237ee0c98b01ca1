package server

import (
	"net/http"

	"github.com/rs/zerolog"

	"momo-sms/internal/store"
)

// Config holds server wiring options.
type Config struct {
	Username string
	Password string
	// Workers used by the XML ingest endpoint's extraction pool.
	Workers int
}

// Server exposes the transaction store over HTTP.
type Server struct {
	store *store.Store
	log   zerolog.Logger
	cfg   Config
}

// New creates a new Server instance
func New(st *store.Store, log zerolog.Logger, cfg Config) *Server {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Server{store: st, log: log, cfg: cfg}
}

// Handler builds the route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/transactions", s.listTransactions)
	mux.HandleFunc("POST /api/transactions", s.createTransaction)
	mux.HandleFunc("GET /api/transactions/{id}", s.getTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.updateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.deleteTransaction)

	mux.HandleFunc("POST /api/parse/xml", s.ingestXML)
	mux.HandleFunc("GET /api/dashboard/stats", s.dashboardStats)
	mux.HandleFunc("GET /api/search", s.searchTransactions)
	mux.HandleFunc("GET /api/export/transactions", s.exportTransactions)
	mux.HandleFunc("GET /api/system/health", s.health)

	var handler http.Handler = mux
	handler = BasicAuth(s.cfg.Username, s.cfg.Password)(handler)
	handler = CORS(handler)
	handler = Recovery(s.log)(handler)
	handler = RequestLogger(s.log)(handler)
	return handler
}
