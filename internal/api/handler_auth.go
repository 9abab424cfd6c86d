package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gestion-astreinte-backend/internal/auth"
	"gestion-astreinte-backend/internal/model"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles the POST /api/login request.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.store.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la connexion"})
		}
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la connexion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user":         user,
	})
}

type registerRequest struct {
	Nom       string `json:"nom" binding:"required"`
	Prenom    string `json:"prenom" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
	ServiceID *int64 `json:"service_id"`
}

// Register handles the POST /api/register request. The route is open only
// until a first admin exists; afterwards it requires an admin token, so test
// fixtures can bootstrap while the running system stays closed.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleSecretaire
	}
	if role != model.RoleAdmin && role != model.RoleSecretaire {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle inconnu"})
		return
	}

	admins, err := h.store.CountAdmins(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la création du compte"})
		return
	}
	if admins > 0 && !h.callerIsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la création du compte"})
		return
	}

	user := model.User{
		Nom:          req.Nom,
		Prenom:       req.Prenom,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
		ServiceID:    req.ServiceID,
	}
	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la création du compte"})
		return
	}

	h.flushCache()
	c.JSON(http.StatusCreated, user)
}

// callerIsAdmin checks the optional bearer token on routes mounted outside
// the authenticated group.
func (h *Handler) callerIsAdmin(c *gin.Context) bool {
	header := c.GetHeader("Authorization")
	if header == "" {
		return false
	}
	claims, err := h.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return false
	}
	return claims.Role == model.RoleAdmin
}
