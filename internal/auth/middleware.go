package auth

import (
	"net/http"
	"strings"

	"socialgraph/backend/internal/database"
	"socialgraph/backend/internal/models"
	"socialgraph/backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// Middleware guards protected routes. It verifies the bearer access token,
// requires a structurally valid signed refresh cookie, resolves the token's
// subject to a user row and stores the user ID in the context.
//
// The cookie's value is deliberately not looked up in the session list here;
// only the refresh and logout handlers consult sessions. An access token
// issued before logout therefore keeps working until it expires.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		userID, err := token.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: " + err.Error()})
			return
		}

		if _, err := RefreshCookieValue(c); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: user not found"})
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}
