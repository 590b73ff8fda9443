package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/config"
	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/export"
	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/leads"
	"github.com/LUMNISEDUCACIONAL/leadhunter/internal/model"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP search API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		searcher := newSearcher(cfg)
		router := newRouter(searcher, cfg)

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: router,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("server listening", zap.Int("port", cfg.Server.Port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// searchAPI holds the server-side search dependencies. The semaphore keeps a
// single search in flight at a time; the limiter throttles how often
// searches may start against the backend.
type searchAPI struct {
	searcher *leads.Searcher
	cfg      *config.Config
	inflight *semaphore.Weighted
	limiter  *rate.Limiter
}

func newRouter(searcher *leads.Searcher, cfg *config.Config) http.Handler {
	api := &searchAPI{
		searcher: searcher,
		cfg:      cfg,
		inflight: semaphore.NewWeighted(1),
		limiter:  rate.NewLimiter(rate.Limit(float64(cfg.Server.RatePerMinute)/60.0), cfg.Server.RateBurst),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/api/search", api.handleSearch)
	r.Post("/api/search/csv", api.handleSearchCSV)

	return r
}

func (a *searchAPI) doSearch(w http.ResponseWriter, r *http.Request) (model.SearchCriteria, model.SearchResult, bool) {
	var none model.SearchCriteria

	if !a.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return none, model.SearchResult{}, false
	}

	if !a.inflight.TryAcquire(1) {
		writeError(w, http.StatusConflict, "a search is already in flight")
		return none, model.SearchResult{}, false
	}
	defer a.inflight.Release(1)

	var criteria model.SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return none, model.SearchResult{}, false
	}

	if err := criteria.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return none, model.SearchResult{}, false
	}

	result, err := runSearch(r.Context(), a.searcher, a.cfg, criteria)
	if err != nil {
		if leads.IsRetrievalError(err) {
			writeError(w, http.StatusBadGateway, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return none, model.SearchResult{}, false
	}

	return criteria, result, true
}

func (a *searchAPI) handleSearch(w http.ResponseWriter, r *http.Request) {
	_, result, ok := a.doSearch(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *searchAPI) handleSearchCSV(w http.ResponseWriter, r *http.Request) {
	criteria, result, ok := a.doSearch(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename(criteria.Niche)))
	if err := export.WriteCSV(w, result.Leads); err != nil {
		zap.L().Error("csv stream failed", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
