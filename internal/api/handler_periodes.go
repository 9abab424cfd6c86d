package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gestion-astreinte-backend/internal/model"
	"gestion-astreinte-backend/internal/mw"
	"gestion-astreinte-backend/internal/planning"
)

type periodeRequest struct {
	Description string  `json:"description" binding:"required"`
	ServiceID   *int64  `json:"service_id"`
	DateDebut   string  `json:"date_debut" binding:"required"`
	DateFin     string  `json:"date_fin" binding:"required"`
	HeureDebut  string  `json:"heure_debut" binding:"required"`
	HeureFin    string  `json:"heure_fin" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Statut      string  `json:"statut"`
	Priorite    string  `json:"priorite"`
	Agents      []int64 `json:"agents"`
}

// periodeResponse is the wire shape of a periode: the stored record plus
// the denormalized service and the ordered agent display names.
type periodeResponse struct {
	model.Periode
	Agents []string `json:"agents"`
}

func toPeriodeResponse(p model.Periode) periodeResponse {
	return periodeResponse{Periode: p, Agents: p.AgentNoms()}
}

// ListPeriodes handles GET /api/periodes, scoped to the secretary's service.
func (h *Handler) ListPeriodes(c *gin.Context) {
	periodes, err := h.store.ListPeriodes(c.Request.Context(), mw.ScopedServiceID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération des périodes"})
		return
	}

	responses := make([]periodeResponse, 0, len(periodes))
	for _, p := range periodes {
		responses = append(responses, toPeriodeResponse(p))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handler) periodeForCaller(c *gin.Context, id int64) (model.Periode, bool) {
	periode, err := h.store.GetPeriode(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Période introuvable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération de la période"})
		}
		return model.Periode{}, false
	}
	if scoped := mw.ScopedServiceID(c); scoped != nil {
		if periode.ServiceID == nil || *periode.ServiceID != *scoped {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès limité à votre service"})
			return model.Periode{}, false
		}
	}
	return periode, true
}

// GetPeriode handles GET /api/periodes/:id.
func (h *Handler) GetPeriode(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	periode, ok := h.periodeForCaller(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toPeriodeResponse(periode))
}

// GetPeriodeDetails handles GET /api/periodes/:id/details, serving the
// detail-view projection with resolved labels and placeholders.
func (h *Handler) GetPeriodeDetails(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	periode, ok := h.periodeForCaller(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, planning.ProjectDetails(periode))
}

func validatePeriodeRequest(req *periodeRequest) {
	if req.Statut == "" {
		req.Statut = model.StatutScheduled
	}
	if req.Priorite == "" {
		req.Priorite = model.PrioriteNormal
	}
}

// CreatePeriode handles POST /api/periodes.
func (h *Handler) CreatePeriode(c *gin.Context) {
	var req periodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	validatePeriodeRequest(&req)

	serviceID := req.ServiceID
	if scoped := mw.ScopedServiceID(c); scoped != nil {
		serviceID = scoped
	}

	periode := model.Periode{
		Description: req.Description,
		ServiceID:   serviceID,
		DateDebut:   req.DateDebut,
		DateFin:     req.DateFin,
		HeureDebut:  req.HeureDebut,
		HeureFin:    req.HeureFin,
		Type:        req.Type,
		Statut:      req.Statut,
		Priorite:    req.Priorite,
	}
	if err := h.store.CreatePeriode(c.Request.Context(), &periode, req.Agents); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la création de la période"})
		return
	}

	created, err := h.store.GetPeriode(c.Request.Context(), periode.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la création de la période"})
		return
	}

	h.flushCache()
	c.JSON(http.StatusCreated, toPeriodeResponse(created))
}

// UpdatePeriode handles PUT /api/periodes/:id.
func (h *Handler) UpdatePeriode(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req periodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	validatePeriodeRequest(&req)

	periode, ok := h.periodeForCaller(c, id)
	if !ok {
		return
	}

	periode.Description = req.Description
	periode.DateDebut = req.DateDebut
	periode.DateFin = req.DateFin
	periode.HeureDebut = req.HeureDebut
	periode.HeureFin = req.HeureFin
	periode.Type = req.Type
	periode.Statut = req.Statut
	periode.Priorite = req.Priorite
	if mw.ScopedServiceID(c) == nil {
		periode.ServiceID = req.ServiceID
	}
	periode.Service = nil
	periode.Affectations = nil

	if err := h.store.UpdatePeriode(c.Request.Context(), &periode, req.Agents); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour de la période"})
		return
	}

	updated, err := h.store.GetPeriode(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour de la période"})
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, toPeriodeResponse(updated))
}

// DeletePeriode handles DELETE /api/periodes/:id.
func (h *Handler) DeletePeriode(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, ok := h.periodeForCaller(c, id); !ok {
		return
	}

	if err := h.store.DeletePeriode(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la suppression de la période"})
		return
	}

	h.flushCache()
	c.Status(http.StatusNoContent)
}

// GetPlanning handles GET /api/planning?year=&month=: the month-grid
// projection of the caller-visible periodes.
func (h *Handler) GetPlanning(c *gin.Context) {
	now := time.Now()

	year := now.Year()
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Année invalide"})
			return
		}
		year = parsed
	}

	month := now.Month()
	if m := c.Query("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mois invalide"})
			return
		}
		month = time.Month(parsed)
	}

	periodes, err := h.store.ListPeriodes(c.Request.Context(), mw.ScopedServiceID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération du planning"})
		return
	}

	view := planning.BuildMonth(year, month, periodes, now, planning.DefaultVisibleCap)
	c.JSON(http.StatusOK, view)
}
