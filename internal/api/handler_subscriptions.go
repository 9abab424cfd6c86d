package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gestion-astreinte-backend/internal/model"
)

type putSubscriptionRequest struct {
	Endpoint           string  `json:"endpoint" binding:"required"`
	P256DH             string  `json:"p256dh" binding:"required"`
	Auth               string  `json:"auth" binding:"required"`
	SubscribedServices []int64 `json:"subscribed_services"`
}

// PutSubscription creates or replaces a push subscription and the set of
// services it follows.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscription := model.PushSubscription{
		Endpoint: req.Endpoint,
		P256DH:   req.P256DH,
		Auth:     req.Auth,
	}

	err := h.store.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(&subscription).Error; err != nil {
			return err
		}

		var services []model.Service
		if len(req.SubscribedServices) > 0 {
			if err := tx.Find(&services, req.SubscribedServices).Error; err != nil {
				return err
			}
		}

		return tx.Model(&subscription).Association("Services").Replace(&services)
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de l'enregistrement de l'abonnement"})
		return
	}

	c.Status(http.StatusCreated)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription removes a push subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.DB().Delete(&model.PushSubscription{Endpoint: req.Endpoint}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la suppression de l'abonnement"})
		return
	}

	c.Status(http.StatusNoContent)
}

// rawQueryParam extracts a query value without URL decoding: the endpoint is
// matched byte for byte against what the browser registered.
func rawQueryParam(rawQuery, key string) (string, bool) {
	for _, kv := range strings.Split(rawQuery, "&") {
		if strings.HasPrefix(kv, key+"=") {
			return kv[len(key)+1:], true
		}
	}
	return "", false
}

// GetSubscription returns the service IDs a subscription follows.
func (h *Handler) GetSubscription(c *gin.Context) {
	raw, ok := rawQueryParam(c.Request.URL.RawQuery, "endpoint")
	if !ok || raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Endpoint requis"})
		return
	}

	var subscription model.PushSubscription
	if err := h.store.DB().Preload("Services").First(&subscription, "endpoint = ?", raw).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Abonnement introuvable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération de l'abonnement"})
		}
		return
	}

	serviceIDs := make([]int64, len(subscription.Services))
	for i, service := range subscription.Services {
		serviceIDs[i] = service.ID
	}

	c.JSON(http.StatusOK, gin.H{"subscribed_services": serviceIDs})
}
