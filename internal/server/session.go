package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/storefront/internal/buyerctx"
)

const sessionCookieName = "storefront_session"

// Session cookies carry the buyer email signed with the session secret:
// base64(email) + "." + base64(hmac-sha256(email)).

type CreateSessionRequest struct {
	Email string `json:"email"`
}

func (s *Server) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		AbortWithError(c, newValidationError("email", "invalid_email", "invalid email address"))
		return
	}

	c.SetCookie(sessionCookieName, s.signSession(email), 30*24*3600, "/", "", s.cfg.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"email": email})
}

func (s *Server) DestroySession(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", s.cfg.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// BuyerRequired rejects requests without a valid session cookie and stores
// the buyer email in the request context.
func (s *Server) BuyerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(sessionCookieName)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		email, ok := s.verifySession(cookie)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Request = c.Request.WithContext(buyerctx.WithEmail(c.Request.Context(), email))
		c.Next()
	}
}

func (s *Server) signSession(email string) string {
	mac := hmac.New(sha256.New, []byte(s.cfg.SessionSecret))
	mac.Write([]byte(email))
	return base64.RawURLEncoding.EncodeToString([]byte(email)) +
		"." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *Server) verifySession(cookie string) (string, bool) {
	if s.cfg.SessionSecret == "" {
		return "", false
	}

	parts := strings.SplitN(cookie, ".", 2)
	if len(parts) != 2 {
		return "", false
	}

	emailBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", false
	}

	mac := hmac.New(sha256.New, []byte(s.cfg.SessionSecret))
	mac.Write(emailBytes)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", false
	}

	return string(emailBytes), true
}
