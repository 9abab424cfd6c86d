package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/patrickmn/go-cache"

	"gestion-astreinte-backend/config"
	"gestion-astreinte-backend/internal/auth"
	"gestion-astreinte-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	cfg     *config.Config
	tokens  *auth.TokenManager
	webpush *webpush.Options
	cache   *cache.Cache
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, cfg *config.Config, tokens *auth.TokenManager, webpushOptions *webpush.Options, responseCache *cache.Cache) *Handler {
	return &Handler{
		store:   s,
		cfg:     cfg,
		tokens:  tokens,
		webpush: webpushOptions,
		cache:   responseCache,
	}
}

// flushCache drops all cached GET responses. Called after every successful
// mutation so list and planning reads never serve stale data.
func (h *Handler) flushCache() {
	if h.cache != nil {
		h.cache.Flush()
	}
}
