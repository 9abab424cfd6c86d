package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gestion-astreinte-backend/internal/model"
	"gestion-astreinte-backend/internal/mw"
)

type indisponibiliteRequest struct {
	AgentID      int64  `json:"agent_id" binding:"required"`
	Type         string `json:"type" binding:"required"`
	DateDebut    string `json:"date_debut" binding:"required"`
	DateFin      string `json:"date_fin" binding:"required"`
	Motif        string `json:"motif"`
	Statut       string `json:"statut"`
	RemplacantID *int64 `json:"remplacant_id"`
}

// agentInScope verifies that the given agent belongs to the caller's service.
// Admins pass unconditionally.
func (h *Handler) agentInScope(c *gin.Context, agentID int64) bool {
	scoped := mw.ScopedServiceID(c)
	if scoped == nil {
		return true
	}
	agent, err := h.store.GetAgent(c.Request.Context(), agentID)
	if err != nil {
		return false
	}
	return agent.ServiceID == *scoped
}

// ListIndisponibilites handles GET /api/indisponibilites, scoped to the
// secretary's service through the agent relation.
func (h *Handler) ListIndisponibilites(c *gin.Context) {
	indispos, err := h.store.ListIndisponibilites(c.Request.Context(), mw.ScopedServiceID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération des indisponibilités"})
		return
	}
	c.JSON(http.StatusOK, indispos)
}

func (h *Handler) indisponibiliteForCaller(c *gin.Context, id int64) (model.Indisponibilite, bool) {
	indispo, err := h.store.GetIndisponibilite(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Indisponibilité introuvable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération de l'indisponibilité"})
		}
		return model.Indisponibilite{}, false
	}
	if !h.agentInScope(c, indispo.AgentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès limité à votre service"})
		return model.Indisponibilite{}, false
	}
	return indispo, true
}

// GetIndisponibilite handles GET /api/indisponibilites/:id.
func (h *Handler) GetIndisponibilite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	indispo, ok := h.indisponibiliteForCaller(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, indispo)
}

// CreateIndisponibilite handles POST /api/indisponibilites.
func (h *Handler) CreateIndisponibilite(c *gin.Context) {
	var req indisponibiliteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.agentInScope(c, req.AgentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès limité à votre service"})
		return
	}
	if req.Statut == "" {
		req.Statut = "pending"
	}

	indispo := model.Indisponibilite{
		AgentID:      req.AgentID,
		Type:         req.Type,
		DateDebut:    req.DateDebut,
		DateFin:      req.DateFin,
		Motif:        req.Motif,
		Statut:       req.Statut,
		RemplacantID: req.RemplacantID,
	}
	if err := h.store.CreateIndisponibilite(c.Request.Context(), &indispo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la création de l'indisponibilité"})
		return
	}

	h.flushCache()
	c.JSON(http.StatusCreated, indispo)
}

// UpdateIndisponibilite handles PUT /api/indisponibilites/:id.
func (h *Handler) UpdateIndisponibilite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req indisponibiliteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	indispo, ok := h.indisponibiliteForCaller(c, id)
	if !ok {
		return
	}
	if !h.agentInScope(c, req.AgentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès limité à votre service"})
		return
	}

	indispo.AgentID = req.AgentID
	indispo.Type = req.Type
	indispo.DateDebut = req.DateDebut
	indispo.DateFin = req.DateFin
	indispo.Motif = req.Motif
	if req.Statut != "" {
		indispo.Statut = req.Statut
	}
	indispo.RemplacantID = req.RemplacantID
	indispo.Agent = nil
	indispo.Remplacant = nil

	if err := h.store.UpdateIndisponibilite(c.Request.Context(), &indispo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour de l'indisponibilité"})
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, indispo)
}

// DeleteIndisponibilite handles DELETE /api/indisponibilites/:id.
func (h *Handler) DeleteIndisponibilite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, ok := h.indisponibiliteForCaller(c, id); !ok {
		return
	}

	if err := h.store.DeleteIndisponibilite(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la suppression de l'indisponibilité"})
		return
	}

	h.flushCache()
	c.Status(http.StatusNoContent)
}
