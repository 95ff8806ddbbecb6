package handlers

import (
	"net/http"
	"strings"

	"jenjangkarir/internal/http/middleware"
	"jenjangkarir/internal/services"

	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 24 * 60 * 60

func (h *Handlers) setSession(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(services.SessionCookie, token, maxAge, "/", "", h.SecureCookie, true)
}

// POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.auth(c).Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "registrasi berhasil", "user": u})
}

type loginRequest struct {
	// Identifier is an email or a username; "email" is accepted for older
	// clients.
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

func (r loginRequest) id() string {
	for _, v := range []string{r.Identifier, r.Email, r.Username} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token, u, err := h.auth(c).Login(c.Request.Context(), req.id(), req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.setSession(c, token, sessionMaxAge)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// POST /api/auth/admin/login
func (h *Handlers) AdminLogin(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token, err := h.auth(c).AdminLogin(req.id(), req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.setSession(c, token, sessionMaxAge)
	c.JSON(http.StatusOK, gin.H{"token": token, "role": "admin"})
}

// POST /api/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	h.setSession(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logout berhasil"})
}

// GET /api/auth/me
func (h *Handlers) Me(c *gin.Context) {
	rc, ok := middleware.Identity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "silakan login terlebih dahulu", nil)
		return
	}
	c.JSON(http.StatusOK, rc)
}
