package handlers

import (
	"net/http"
	"time"

	intconfig "railpass/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandlers issues tokens for the task mutation endpoints. A single admin
// account from env is enough; traveler-facing reads stay public.
type AuthHandlers struct {
	Env intconfig.Env
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h AuthHandlers) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if h.Env.AdminPassHash == "" {
		RespondError(c, http.StatusServiceUnavailable, "admin login not configured", nil)
		return
	}
	if req.Username != h.Env.AdminUser {
		RespondError(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.Env.AdminPassHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  req.Username,
		"role": "admin",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(h.Env.JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}
	RespondOK(c, gin.H{"token": signed, "expiresIn": 86400})
}
