package auth

import (
	"fmt"
	"time"

	"saarthi/internal/models"

	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// SaveRefreshTokenToAdvisor encrypts and saves a refresh token on the advisor's account
func SaveRefreshTokenToAdvisor(db *gorm.DB, googleID string, token *oauth2.Token) error {
	if token == nil || token.RefreshToken == "" {
		return nil // No refresh token to save
	}

	encryptedToken, err := EncryptRefreshToken(token.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to encrypt refresh token: %w", err)
	}

	updates := map[string]interface{}{
		"encrypted_refresh_token": encryptedToken,
		"token_expiry":            token.Expiry,
	}

	if err := db.Model(&models.Advisor{}).
		Where("google_id = ?", googleID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to save refresh token to advisor: %w", err)
	}

	return nil
}

// GetRefreshTokenFromAdvisor retrieves and decrypts a refresh token from an advisor account
func GetRefreshTokenFromAdvisor(db *gorm.DB, googleID string) (string, time.Time, error) {
	var advisor models.Advisor

	if err := db.Select("encrypted_refresh_token, token_expiry").
		Where("google_id = ?", googleID).
		First(&advisor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", time.Time{}, fmt.Errorf("advisor not found")
		}
		return "", time.Time{}, fmt.Errorf("failed to retrieve advisor: %w", err)
	}

	refreshToken, err := DecryptRefreshToken(advisor.EncryptedRefreshToken)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to decrypt refresh token: %w", err)
	}

	return refreshToken, advisor.TokenExpiry, nil
}

// UpdateAdvisorToken updates an advisor's token information
func UpdateAdvisorToken(db *gorm.DB, googleID string, token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("token is nil")
	}

	updates := map[string]interface{}{
		"token_expiry": token.Expiry,
	}

	if token.RefreshToken != "" {
		encryptedToken, err := EncryptRefreshToken(token.RefreshToken)
		if err != nil {
			return fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
		updates["encrypted_refresh_token"] = encryptedToken
	}

	if err := db.Model(&models.Advisor{}).
		Where("google_id = ?", googleID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update advisor token: %w", err)
	}

	return nil
}
