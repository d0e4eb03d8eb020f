package middleware

import (
	"net/http"
	"strings"

	"freeworldfirst/internal/db"
	"freeworldfirst/internal/models"
	"freeworldfirst/internal/utils"

	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// LoadUser resolves the bearer token, if any, and sets the current
// user on the context. The user record is re-read from the database on
// every request so a revoked admin flag takes effect immediately, not
// when the token expires.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		userID, err := utils.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := db.DB.First(&user, "id = ?", userID).Error; err == nil {
			c.Set(CheckUserKey, &user)
		}
		c.Next()
	}
}

// AuthRequired rejects requests that carry no valid identity.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		c.Next()
	}
}

// AdminRequired rejects requests from non-admin users. Runs after
// AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CheckUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		if !u.(*models.User).IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "administrator rights required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by LoadUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	u, exists := c.Get(CheckUserKey)
	if !exists {
		return nil
	}
	return u.(*models.User)
}
