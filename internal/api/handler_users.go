package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gestion-astreinte-backend/internal/auth"
	"gestion-astreinte-backend/internal/model"
	"gestion-astreinte-backend/internal/mw"
)

type userRequest struct {
	Nom       string `json:"nom" binding:"required"`
	Prenom    string `json:"prenom" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password"`
	Role      string `json:"role" binding:"required"`
	ServiceID *int64 `json:"service_id"`
}

// ListUsers handles GET /api/users. Admin only (enforced by the route group).
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération des utilisateurs"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /api/users/:id.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la récupération de l'utilisateur"})
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /api/users.
func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role != model.RoleAdmin && req.Role != model.RoleSecretaire {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle inconnu"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mot de passe trop court"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la création de l'utilisateur"})
		return
	}

	user := model.User{
		Nom:          req.Nom,
		Prenom:       req.Prenom,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         req.Role,
		ServiceID:    req.ServiceID,
	}
	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la création de l'utilisateur"})
		return
	}

	h.flushCache()
	c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /api/users/:id. An empty password keeps the current
// one.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role != model.RoleAdmin && req.Role != model.RoleSecretaire {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle inconnu"})
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour de l'utilisateur"})
		}
		return
	}

	user.Nom = req.Nom
	user.Prenom = req.Prenom
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.Role = req.Role
	user.ServiceID = req.ServiceID
	if req.Password != "" {
		if len(req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mot de passe trop court"})
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour de l'utilisateur"})
			return
		}
		user.PasswordHash = hash
	}

	if err := h.store.UpdateUser(c.Request.Context(), &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour de l'utilisateur"})
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/:id. A caller cannot delete their own
// account.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if claims := mw.ClaimsFrom(c); claims != nil && claims.UserID == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de supprimer votre propre compte"})
		return
	}

	if err := h.store.DeleteUser(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la suppression de l'utilisateur"})
		return
	}

	h.flushCache()
	c.Status(http.StatusNoContent)
}
