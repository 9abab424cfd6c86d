package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"gestion-astreinte-backend/config"
	"gestion-astreinte-backend/internal/auth"
	"gestion-astreinte-backend/internal/mw"
	"gestion-astreinte-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	handler := NewHandler(s, cfg, tokens, webpushOptions, cacheStore)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)
	requireAuth := mw.BearerAuth(tokens)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Public surface: authentication and the push public key.
		api.POST("/login", handler.Login)
		api.POST("/register", handler.Register)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

		authed := api.Group("")
		authed.Use(requireAuth)
		{
			authed.GET("/services", handler.ListServices)
			authed.GET("/services/secretaries", handler.ListSecretaries)
			authed.GET("/services/secretary-service", handler.GetSecretaryService)
			authed.GET("/services/:id", handler.GetService)
			authed.POST("/services", handler.CreateService)
			authed.PUT("/services/:id", handler.UpdateService)
			authed.DELETE("/services/:id", handler.DeleteService)

			authed.GET("/agents", handler.ListAgents)
			authed.GET("/agents/:id", handler.GetAgent)
			authed.POST("/agents", handler.CreateAgent)
			authed.PUT("/agents/:id", handler.UpdateAgent)
			authed.DELETE("/agents/:id", handler.DeleteAgent)

			authed.GET("/periodes", handler.ListPeriodes)
			authed.GET("/periodes/:id", handler.GetPeriode)
			authed.GET("/periodes/:id/details", handler.GetPeriodeDetails)
			authed.POST("/periodes", handler.CreatePeriode)
			authed.PUT("/periodes/:id", handler.UpdatePeriode)
			authed.DELETE("/periodes/:id", handler.DeletePeriode)

			authed.GET("/indisponibilites", handler.ListIndisponibilites)
			authed.GET("/indisponibilites/:id", handler.GetIndisponibilite)
			authed.POST("/indisponibilites", handler.CreateIndisponibilite)
			authed.PUT("/indisponibilites/:id", handler.UpdateIndisponibilite)
			authed.DELETE("/indisponibilites/:id", handler.DeleteIndisponibilite)

			// The read-heavy calendar projection gets the response cache.
			authed.GET("/planning", caching, handler.GetPlanning)

			authed.GET("/subscriptions", handler.GetSubscription)
			authed.PUT("/subscriptions", handler.PutSubscription)
			authed.DELETE("/subscriptions", handler.DeleteSubscription)

			admin := authed.Group("")
			admin.Use(mw.RequireAdmin())
			{
				admin.GET("/users", handler.ListUsers)
				admin.GET("/users/:id", handler.GetUser)
				admin.POST("/users", handler.CreateUser)
				admin.PUT("/users/:id", handler.UpdateUser)
				admin.DELETE("/users/:id", handler.DeleteUser)
			}
		}

		if cfg.Server.TestEndpoints {
			api.POST("/_test/reset-database", handler.ResetDatabase)
		}
	}

	return r
}
