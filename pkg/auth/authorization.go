package auth

import (
	"context"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware guards the admin route group. A request is authorized by
// either the shared-secret header or a Bearer ID token verified against
// Firebase. The slot services themselves never authenticate.
func AdminMiddleware(firebaseApp *firebase.App, adminSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminSecret != "" && c.GetHeader("x-admin-secret") == adminSecret {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		idToken := strings.TrimSpace(authHeader[len("Bearer "):])

		if firebaseApp == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token auth is not configured"})
			c.Abort()
			return
		}

		ctx := context.Background()
		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize Firebase Auth"})
			c.Abort()
			return
		}

		token, err := authClient.VerifyIDToken(ctx, idToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid ID token"})
			c.Abort()
			return
		}

		// Attach token to the context
		c.Set("token", token)

		c.Next()
	}
}

// CronMiddleware guards the cron route group. The scheduler may pass the
// secret either as a Bearer token or as a ?secret= query parameter for
// manual triggering. An empty secret locks the group down entirely.
func CronMiddleware(cronSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cronSecret == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "cron secret is not configured"})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "Bearer "+cronSecret || c.Query("secret") == cronSecret {
			c.Next()
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
	}
}
