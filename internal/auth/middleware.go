package auth

import (
	"log"
	"net/http"
	"strings"

	"saarthi/internal/database"
	"saarthi/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware authenticates the request. Two credentials are accepted:
// an Authorization: Bearer <Google ID token> header (what the SPA sends on
// every API call) or the dashboard session cookie. Either way the resolved
// advisor's ID lands in the context as "advisor_id".
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			authenticateBearer(c, token)
			return
		}
		authenticateSession(c)
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func authenticateBearer(c *gin.Context, token string) {
	payload, err := VerifyIDToken(c, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		c.Abort()
		return
	}

	db := database.GetDB()
	var advisor models.Advisor
	if err := db.Where("google_id = ?", payload.Subject).First(&advisor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no account for this identity"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		}
		c.Abort()
		return
	}

	setAdvisorContext(c, &advisor)
	c.Next()
}

func authenticateSession(c *gin.Context) {
	session, err := GetSession(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		c.Abort()
		return
	}

	if session.IsExpired() {
		DeleteSession(c)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
		c.Abort()
		return
	}

	// Best effort: an expired Google access token doesn't end the session
	if err := RefreshSessionToken(c, session); err != nil {
		log.Printf("Warning: failed to refresh session token: %v", err)
	}

	db := database.GetDB()
	var advisor models.Advisor
	if err := db.First(&advisor, session.AdvisorID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
		c.Abort()
		return
	}

	setAdvisorContext(c, &advisor)
	c.Next()
}

func setAdvisorContext(c *gin.Context, advisor *models.Advisor) {
	c.Set("advisor_id", advisor.ID)
	c.Set("google_id", advisor.GoogleID)
	c.Set("email", advisor.Email)
	c.Set("name", advisor.FullName)
	c.Set("picture", advisor.AvatarURL)
	c.Set("subscription_current", advisor.SubscriptionCurrent())
}

// AdvisorID pulls the authenticated advisor's ID out of the context
func AdvisorID(c *gin.Context) uint {
	if v, ok := c.Get("advisor_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// SubscriptionGuard blocks paid features once the advisor's subscription has
// lapsed. Billing endpoints stay reachable so they can pay.
func SubscriptionGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("subscription_current") {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":    "subscription expired",
				"renew_at": "/api/payment/plans",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
