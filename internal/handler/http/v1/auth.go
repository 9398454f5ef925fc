package v1

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/smartbash/brgy_dispatch/internal/config"
	"github.com/smartbash/brgy_dispatch/internal/models"
)

const (
	callerEmailKey     = "callerEmail"
	officialKey        = "official"
	responseServiceKey = "responseService"
)

// APIKeyAuthMiddleware authenticates machine callers by API key
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		isValid := false
		for _, key := range cfg.APIKeys {
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
				isValid = true
				break
			}
		}

		if !isValid {
			log.Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

// BearerAuthMiddleware verifies an HS256 token issued by the account service
// and stores the caller's email, taken from the "email" claim or else "sub".
func BearerAuthMiddleware(secret string, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}
		if secret == "" {
			log.Error("JWT_SECRET is not configured, rejecting bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			log.WithError(err).Warn("Token parse error")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		email, _ := claims["email"].(string)
		if email == "" {
			email, _ = claims["sub"].(string)
		}
		if strings.TrimSpace(email) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		c.Set(callerEmailKey, email)
		c.Next()
	}
}

// officialAuth resolves the caller to an active barangay official
func (h *Handler) officialAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		official, err := h.officialService.ResolveOfficial(c.Request.Context(), c.GetString(callerEmailKey))
		if err != nil {
			h.abortAuth(c, err, "officialAuth")
			return
		}
		c.Set(officialKey, official)
		c.Next()
	}
}

// serviceAuth resolves the caller to an active response service
func (h *Handler) serviceAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, err := h.responderService.ResolveService(c.Request.Context(), c.GetString(callerEmailKey))
		if err != nil {
			h.abortAuth(c, err, "serviceAuth")
			return
		}
		c.Set(responseServiceKey, svc)
		c.Next()
	}
}

func (h *Handler) abortAuth(c *gin.Context, err error, method string) {
	log := h.logger.WithField("method", method)
	if errors.Is(err, models.ErrUnauthorized) {
		log.WithError(err).Warn("Caller rejected")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	log.WithError(err).Error("Failed to resolve caller")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func currentOfficial(c *gin.Context) *models.BrgyOfficial {
	official, _ := c.MustGet(officialKey).(*models.BrgyOfficial)
	return official
}

func currentService(c *gin.Context) *models.ResponseService {
	svc, _ := c.MustGet(responseServiceKey).(*models.ResponseService)
	return svc
}
