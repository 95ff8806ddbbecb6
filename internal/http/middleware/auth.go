package middleware

import (
	"net/http"
	"strings"

	"jenjangkarir/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
	userNameKey = "userName"
)

// TokenParser turns a session token into the caller's identity.
type TokenParser interface {
	Parse(token string) (domain.RequestContext, error)
}

func sessionToken(c *gin.Context, cookie string) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if v, err := c.Cookie(cookie); err == nil {
		return v
	}
	return ""
}

func setIdentity(c *gin.Context, rc domain.RequestContext) {
	c.Set(userIDKey, int64(rc.UserID))
	c.Set(userRoleKey, string(rc.Role))
	c.Set(userNameKey, rc.Name)
}

// AuthOptional attaches the identity when a valid session is present and
// otherwise passes through.
func AuthOptional(p TokenParser, cookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := sessionToken(c, cookie); tok != "" {
			if rc, err := p.Parse(tok); err == nil {
				setIdentity(c, rc)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a valid session, read from the
// Bearer header first and the session cookie second.
func RequireAuth(p TokenParser, cookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := sessionToken(c, cookie)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "silakan login terlebih dahulu",
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		rc, err := p.Parse(tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "sesi tidak valid atau sudah berakhir",
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		setIdentity(c, rc)
		c.Next()
	}
}

// RequireRoles only lets through callers whose role, set by RequireAuth, is
// one of allowedRoles.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(userRoleKey)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized: role tidak ditemukan pada context",
			})
			return
		}
		if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "forbidden: role tidak diizinkan",
			})
			return
		}
		c.Next()
	}
}

// Identity returns what RequireAuth or AuthOptional stored.
func Identity(c *gin.Context) (domain.RequestContext, bool) {
	id, ok := c.Get(userIDKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	uid, _ := id.(int64)
	return domain.RequestContext{
		UserID: domain.ID(uid),
		Role:   domain.Role(c.GetString(userRoleKey)),
		Name:   c.GetString(userNameKey),
	}, true
}

// UserID is the authenticated user's id, zero when anonymous.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
