// internal/app/app.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"weather-outfit/internal/config"
	hh "weather-outfit/internal/handlers/http"
	"weather-outfit/internal/history"
	"weather-outfit/internal/llm"
	"weather-outfit/internal/middleware"
	mysqlrepo "weather-outfit/internal/repositories/mysql"
	sqliterepo "weather-outfit/internal/repositories/sqlite"
	"weather-outfit/internal/services"
	"weather-outfit/pkg/db"
	"weather-outfit/pkg/weather"
)

// App menampung router utama
type App struct {
	Router  *mux.Router
	Handler http.Handler
	Metrics *middleware.RequestCounter

	closers []func() error
}

// Deps are the collaborators behind the routes. Zero-value Sessions disables
// the history endpoints.
type Deps struct {
	Weather        hh.ForecastFetcher
	Translator     hh.CityTranslator
	Outfit         hh.OutfitRecommender
	HistoryStorage history.Storage
	Sessions       *middleware.Sessions
	PassHash       string
	CORSOrigin     string
}

// New membuat instance App dari config: upstream clients, services, storage.
func New(cfg *config.Config) *App {
	wc := weather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.UpstreamTimeout).
		WithRateLimit(cfg.Weather.RPS, cfg.Weather.Burst)
	wc.Days = cfg.Weather.Days
	wc.Lang = cfg.Weather.Lang

	var lc llm.Client
	if c, err := llm.New(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		RPS:     cfg.LLM.RPS,
		Burst:   cfg.LLM.Burst,
	}); err != nil {
		log.Printf("[WARN] init llm client: %v", err)
		lc = unavailableLLM{err: err}
	} else {
		lc = c
	}

	deps := Deps{
		Weather:    wc,
		Translator: &services.TranslationService{LLM: lc},
		Outfit:     &services.OutfitService{LLM: lc},
		Sessions:   middleware.NewSessions(cfg.Session.JWTSecret, cfg.Session.TTL),
		PassHash:   cfg.Session.PassHash,
		CORSOrigin: cfg.CORSAllowOrigin,
	}

	var closers []func() error
	if deps.Sessions.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		storage, closer, err := openHistoryStorage(ctx, cfg)
		cancel()
		if err != nil {
			log.Printf("[ERROR] history storage: %v; falling back to memory", err)
			storage = history.NewMemoryStorage()
		}
		if closer != nil {
			closers = append(closers, closer)
		}
		deps.HistoryStorage = storage
	} else {
		log.Printf("[WARN] SESSION_JWT_SECRET empty; /api/session and /api/history disabled")
	}

	a := NewWithDeps(deps)
	a.closers = closers
	return a
}

// NewWithDeps wires routes and middleware around the given collaborators.
func NewWithDeps(d Deps) *App {
	if d.HistoryStorage == nil {
		d.HistoryStorage = history.NewMemoryStorage()
	}
	if d.Sessions == nil {
		d.Sessions = middleware.NewSessions("", 0)
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(hh.NotFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(hh.MethodNotAllowedHandler)

	counter := middleware.NewRequestCounter()
	r.Use(counter.Middleware)

	RegisterRoutes(r, d, counter)

	// outside the router so 404s and preflights get the same headers
	var h http.Handler = r
	h = middleware.CORS(d.CORSOrigin)(h)
	h = middleware.Recover(h)
	h = middleware.RequestID(h)

	return &App{Router: r, Handler: h, Metrics: counter}
}

// openHistoryStorage picks MySQL (DB_DSN), then SQLite, then memory.
func openHistoryStorage(ctx context.Context, cfg *config.Config) (history.Storage, func() error, error) {
	switch {
	case cfg.History.DSN != "":
		conn, err := db.OpenMySQL(ctx, cfg.History.DSN, 20)
		if err != nil {
			return nil, nil, err
		}
		repo := &mysqlrepo.HistoryRepo{DB: conn}
		return ensure(ctx, repo, conn)
	case cfg.History.SQLitePath != "":
		conn, err := db.OpenSQLite(ctx, cfg.History.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo := &sqliterepo.HistoryRepo{DB: conn}
		return ensure(ctx, repo, conn)
	default:
		log.Printf("[WARN] DB_DSN/HISTORY_SQLITE_PATH empty; history kept in memory")
		return history.NewMemoryStorage(), nil, nil
	}
}

type schemaStorage interface {
	history.Storage
	EnsureSchema(ctx context.Context) error
}

func ensure(ctx context.Context, repo schemaStorage, conn *sql.DB) (history.Storage, func() error, error) {
	if err := repo.EnsureSchema(ctx); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return repo, conn.Close, nil
}

// Close releases storage connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run menjalankan server HTTP
func (a *App) Run(addr string) {
	log.Printf("server running on %s", addr)
	if err := http.ListenAndServe(addr, a.Handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// unavailableLLM answers every call with the construction error, so the
// proxy still starts and reports 500 on the LLM endpoints.
type unavailableLLM struct{ err error }

func (u unavailableLLM) Complete(context.Context, string, llm.Options) (string, error) {
	return "", u.err
}

func (u unavailableLLM) Model() string { return "" }
