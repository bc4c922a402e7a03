package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"saarthi/internal/database"
	"saarthi/internal/models"
	"saarthi/internal/services"
	"saarthi/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

var (
	googleOAuthConfig *oauth2.Config
)

// InitOAuth initializes the Google OAuth configuration
func InitOAuth() error {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_REDIRECT_URL")

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, and GOOGLE_REDIRECT_URL must be set")
	}

	googleOAuthConfig = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile", "openid"},
		Endpoint:     google.Endpoint,
	}

	return nil
}

// GetLoginURL returns the Google OAuth login URL with a secure state parameter
func GetLoginURL(c *gin.Context) (string, error) {
	state, err := SetOAuthState(c)
	if err != nil {
		return "", err
	}

	return googleOAuthConfig.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	), nil
}

// HandleGoogleCallback processes the OAuth callback from Google. An advisor
// who has signed in before lands on the dashboard; a first-time sign-in gets a
// provisional advisor record and is sent to onboarding.
func HandleGoogleCallback(c *gin.Context) {
	// Verify state parameter (CSRF protection)
	state := c.Query("state")
	if !VerifyOAuthState(c, state) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state, possible CSRF attack"})
		c.Abort()
		return
	}

	// Exchange auth code for token
	code := c.Query("code")
	token, err := googleOAuthConfig.Exchange(context.Background(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "code exchange failed"})
		c.Abort()
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get id_token"})
		c.Abort()
		return
	}

	payload, err := VerifyIDToken(c, rawIDToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to verify id_token: %v", err)})
		c.Abort()
		return
	}

	userInfo := extractUserInfoFromPayload(payload)

	db := database.GetDB()

	var advisor models.Advisor
	err = db.Where("google_id = ?", userInfo.Sub).First(&advisor).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		c.Abort()
		return
	}

	if err == gorm.ErrRecordNotFound {
		// First sign-in: create a provisional advisor record
		advisor = models.Advisor{
			GoogleID:      userInfo.Sub,
			Email:         userInfo.Email,
			EmailVerified: userInfo.EmailVerified,
			FullName:      userInfo.Name,
			AvatarURL:     userInfo.Picture,
			LastLogin:     time.Now(),
		}
		if err := db.Create(&advisor).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create advisor account"})
			c.Abort()
			return
		}
		go func(a models.Advisor) {
			if err := services.NewEmailService().SendWelcomeEmail(a); err != nil {
				log.Printf("Warning: failed to send welcome email to %s: %v", a.Email, err)
			}
		}(advisor)
	} else {
		if err := db.Model(&advisor).Update("last_login", time.Now()).Error; err != nil {
			log.Printf("Warning: failed to update last_login for advisor %d: %v", advisor.ID, err)
		}
	}

	// Offline access tokens are kept encrypted on the account
	if err := SaveRefreshTokenToAdvisor(db, userInfo.Sub, token); err != nil {
		log.Printf("Warning: failed to store refresh token: %v", err)
	}

	if err := CreateSession(c, token, userInfo, advisor.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		c.Abort()
		return
	}

	recordLogin(db, advisor.ID, c)

	if advisor.FirmName == "" {
		c.Redirect(http.StatusTemporaryRedirect, "/onboarding")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
}

// VerifyIDToken validates a Google ID token against our client ID
func VerifyIDToken(ctx context.Context, rawToken string) (*idtoken.Payload, error) {
	payload, err := idtoken.Validate(ctx, rawToken, googleOAuthConfig.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate ID token: %w", err)
	}
	return payload, nil
}

// extractUserInfoFromPayload extracts user info from the verified token payload
func extractUserInfoFromPayload(payload *idtoken.Payload) *UserInfo {
	userInfo := &UserInfo{Sub: payload.Subject}

	if email, ok := payload.Claims["email"].(string); ok {
		userInfo.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		userInfo.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		userInfo.Picture = picture
	}
	if givenName, ok := payload.Claims["given_name"].(string); ok {
		userInfo.GivenName = givenName
	}
	if familyName, ok := payload.Claims["family_name"].(string); ok {
		userInfo.FamilyName = familyName
	}
	if locale, ok := payload.Claims["locale"].(string); ok {
		userInfo.Locale = locale
	}
	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok {
		userInfo.EmailVerified = emailVerified
	}

	return userInfo
}

// recordLogin writes a login audit row; failures are logged, not fatal
func recordLogin(db *gorm.DB, advisorID uint, c *gin.Context) {
	entry := models.LoginLog{
		AdvisorID: advisorID,
		IPAddress: utils.GetRealClientIP(c),
		UserAgent: c.Request.UserAgent(),
		Timestamp: time.Now(),
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("Warning: failed to record login for advisor %d: %v", advisorID, err)
	}
}

// LogoutHandler handles user logout
func LogoutHandler(c *gin.Context) {
	DeleteSession(c)
	c.Redirect(http.StatusTemporaryRedirect, "/")
}
