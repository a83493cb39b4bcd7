// Package server exposes the board operations over HTTP.
//
// The server is the "rendering layer" boundary of the layout engine: UI
// clients call it on layout-affecting events (add, resize, duplicate,
// branch, share) and draw cards at the returned coordinates. All layout
// computation happens in pkg/layout via the engine runner; the server only
// loads boards, applies operations, and saves the result.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/lmarchetti/cardflow/pkg/board"
	"github.com/lmarchetti/cardflow/pkg/cache"
	"github.com/lmarchetti/cardflow/pkg/engine"
	"github.com/lmarchetti/cardflow/pkg/errors"
	"github.com/lmarchetti/cardflow/pkg/render"
	"github.com/lmarchetti/cardflow/pkg/store"
)

// Server handles board HTTP requests.
type Server struct {
	store  store.Store
	runner *engine.Runner
	logger *log.Logger
}

// New creates a server over the given store and runner.
func New(st store.Store, runner *engine.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, runner: runner, logger: logger}
}

// NewFromConfig builds the store, cache, and runner a config describes.
func NewFromConfig(ctx context.Context, cfg Config, logger *log.Logger) (*Server, error) {
	st, err := newStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	c, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	var keyer cache.Keyer
	if cfg.Cache.Scope != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Scope)
	}
	runner := engine.NewRunner(c, keyer, logger)
	runner.TTL = time.Duration(cfg.Cache.TTL)
	return New(st, runner, logger), nil
}

func newStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "file":
		return store.NewFileStore(cfg.Dir)
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.URI,
			Database:   cfg.Database,
			Collection: cfg.Collection,
		})
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", cfg.Backend)
}

func newCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", "null":
		return cache.NewNullCache(), nil
	case "file":
		return cache.NewFileCache(cfg.Dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", cfg.Backend)
}

// Router builds the chi router with all board routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/boards", func(r chi.Router) {
		r.Get("/", s.handleListBoards)
		r.Post("/", s.handleCreateBoard)

		r.Route("/{boardID}", func(r chi.Router) {
			r.Get("/", s.handleGetBoard)
			r.Put("/", s.handlePutBoard)
			r.Delete("/", s.handleDeleteBoard)

			r.Post("/arrange", s.handleArrange)
			r.Get("/next-position", s.handleNextPosition)
			r.Get("/svg", s.handleSVG)
			r.Get("/lineage", s.handleLineage)

			r.Post("/cards", s.handleAddCard)
			r.Route("/cards/{cardID}", func(r chi.Router) {
				r.Post("/resize", s.handleResizeCard)
				r.Post("/duplicate", s.handleDuplicateCard)
				r.Post("/branch", s.handleBranchCard)
				r.Post("/share", s.handleShareCard)
			})
		})
	})

	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"boards": ids})
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	b := board.NewBoard(req.Name)
	if err := s.store.Put(r.Context(), b); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handlePutBoard(w http.ResponseWriter, r *http.Request) {
	var b board.Board
	if err := decodeJSON(r, &b); err != nil {
		s.writeError(w, err)
		return
	}
	b.ID = chi.URLParam(r, "boardID")

	if err := s.store.Put(r.Context(), &b); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &b)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "boardID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	arranged, cacheHit, err := s.runner.Arrange(r.Context(), b.Geometry())
	if err != nil {
		s.writeError(w, err)
		return
	}
	b.ApplyGeometry(arranged)

	if err := s.store.Put(r.Context(), b); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("X-Cache", cacheStatus(cacheHit))
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleNextPosition(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.runner.NextPosition(r.Context(), b.Geometry()))
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string         `json:"title"`
		Width    float64        `json:"width,omitempty"`
		Height   float64        `json:"height,omitempty"`
		Meta     map[string]any `json:"meta,omitempty"`
		AnchorID string         `json:"anchor_id,omitempty"`
		Flow     string         `json:"flow,omitempty"` // "grid" (default) or "free"
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	card := board.NewCard(req.Title)
	card.Width = req.Width
	card.Height = req.Height
	card.Meta = req.Meta

	var placed board.Card
	if req.Flow == "free" || req.AnchorID != "" {
		placed = b.PlaceCard(card, req.AnchorID)
	} else {
		placed = b.AddCard(card)
	}

	if err := s.store.Put(r.Context(), b); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, placed)
}

func (s *Server) handleResizeCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	// An unknown card id still repacks; that is the engine contract, not an
	// error. The resize itself just becomes a no-op.
	b.ResizeCard(chi.URLParam(r, "cardID"), req.Width, req.Height)

	if err := s.store.Put(r.Context(), b); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDuplicateCard(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	dup, err := b.DuplicateCard(chi.URLParam(r, "cardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.store.Put(r.Context(), b); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dup)
}

func (s *Server) handleBranchCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	branch, err := b.BranchCard(chi.URLParam(r, "cardID"), req.Title)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.store.Put(r.Context(), b); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, branch)
}

func (s *Server) handleShareCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetBoardID string `json:"target_board_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	ctx := r.Context()
	src, err := s.store.Get(ctx, chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	dst, err := s.store.Get(ctx, req.TargetBoardID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	shared, err := src.ShareCard(chi.URLParam(r, "cardID"), dst)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.store.Put(ctx, dst); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, shared)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(render.BoardSVG(b, render.WithTitles()))
}

func (s *Server) handleLineage(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.Write([]byte(render.LineageDOT(b, render.LineageOptions{})))
		return
	}

	svg, err := render.LineageSVG(b, render.LineageOptions{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

// =============================================================================
// Helpers
// =============================================================================

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.NotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidBoard),
		errors.Is(err, errors.ErrCodeInvalidCard):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}

	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  string(errors.GetCode(err)),
	})
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
