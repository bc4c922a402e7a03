package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"saarthi/internal/database"
	"saarthi/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const (
	// SessionCookieName is the name of the cookie that stores the session ID
	SessionCookieName = "saarthi_session"
	// StateCookieName is the name of the cookie that temporarily stores the OAuth state
	StateCookieName = "saarthi_oauth_state"
	// SessionIDLength is the length of the random session ID in bytes
	SessionIDLength = 32
	// StateLength is the length of the random state string in bytes
	StateLength = 32
)

// GenerateRandomString creates a cryptographically secure random string
func GenerateRandomString(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length], nil
}

// CreateSession creates a new session for the advisor
func CreateSession(c *gin.Context, token *oauth2.Token, userInfo *UserInfo, advisorID uint) error {
	sessionID, err := GenerateRandomString(SessionIDLength)
	if err != nil {
		return fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := models.Session{
		ID:          sessionID,
		GoogleID:    userInfo.Sub,
		AdvisorID:   advisorID,
		AccessToken: token.AccessToken,
		TokenExpiry: token.Expiry,
		Email:       userInfo.Email,
		Name:        userInfo.Name,
		Picture:     userInfo.Picture,
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(models.SessionDuration),
	}

	db := database.GetDB()
	if err := db.Create(&session).Error; err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	secure := gin.Mode() != gin.DebugMode
	c.SetCookie(
		SessionCookieName,
		sessionID,
		int(time.Until(session.ExpiresAt).Seconds()),
		"/",
		"",
		secure,
		true, // HttpOnly for security
	)

	return nil
}

// GetSession retrieves the current session from the request
func GetSession(c *gin.Context) (*models.Session, error) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil {
		return nil, fmt.Errorf("session cookie not found: %w", err)
	}

	db := database.GetDB()
	var session models.Session
	if err := db.Where("id = ?", sessionID).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to retrieve session: %w", err)
	}

	if session.IsExpired() {
		DeleteSession(c)
		return nil, fmt.Errorf("session expired")
	}

	return &session, nil
}

// RefreshSessionToken refreshes the OAuth access token for the session using
// the refresh token stored on the advisor's account
func RefreshSessionToken(c *gin.Context, session *models.Session) error {
	if !session.NeedsTokenRefresh() {
		return nil
	}

	db := database.GetDB()
	refreshToken, _, err := GetRefreshTokenFromAdvisor(db, session.GoogleID)
	if err != nil {
		return fmt.Errorf("no refresh token available: %w", err)
	}

	token := &oauth2.Token{RefreshToken: refreshToken}
	newToken, err := googleOAuthConfig.TokenSource(c, token).Token()
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	updates := map[string]interface{}{
		"access_token": newToken.AccessToken,
		"token_expiry": newToken.Expiry,
	}
	if err := db.Model(&session).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	if newToken.RefreshToken != "" {
		if err := UpdateAdvisorToken(db, session.GoogleID, newToken); err != nil {
			return fmt.Errorf("failed to update advisor token: %w", err)
		}
	}

	return nil
}

// DeleteSession removes the session and clears cookies
func DeleteSession(c *gin.Context) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err == nil {
		db := database.GetDB()
		db.Where("id = ?", sessionID).Delete(&models.Session{})
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// SetOAuthState generates and stores a random state for CSRF protection
func SetOAuthState(c *gin.Context) (string, error) {
	state, err := GenerateRandomString(StateLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	// Only lives for the duration of the OAuth round-trip
	secure := gin.Mode() != gin.DebugMode
	c.SetCookie(
		StateCookieName,
		state,
		int(10*time.Minute.Seconds()),
		"/",
		"",
		secure,
		true, // HttpOnly for security
	)

	return state, nil
}

// VerifyOAuthState verifies the state parameter from the OAuth callback
func VerifyOAuthState(c *gin.Context, receivedState string) bool {
	savedState, err := c.Cookie(StateCookieName)
	if err != nil {
		return false
	}

	// Clear the state cookie regardless of outcome
	c.SetCookie(StateCookieName, "", -1, "/", "", false, true)

	return savedState == receivedState
}
