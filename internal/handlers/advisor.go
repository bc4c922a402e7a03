package handlers

import (
	"net/http"

	"saarthi/internal/auth"
	"saarthi/internal/database"
	"saarthi/internal/models"
	"saarthi/internal/services"

	"github.com/gin-gonic/gin"
)

// GetMe returns the authenticated advisor's profile
func GetMe(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var advisor models.Advisor
	if err := db.First(&advisor, advisorID).Error; err != nil {
		handleError(c, http.StatusNotFound, "Advisor not found", err)
		return
	}

	c.JSON(http.StatusOK, advisor)
}

// UpdateProfile updates the advisor's editable profile fields
func UpdateProfile(c *gin.Context) {
	advisorID := auth.AdvisorID(c)

	var request models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	db := database.GetDB()
	var advisor models.Advisor
	if err := db.First(&advisor, advisorID).Error; err != nil {
		handleError(c, http.StatusNotFound, "Advisor not found", err)
		return
	}

	if request.FullName != "" {
		advisor.FullName = request.FullName
	}
	if request.FirmName != "" {
		advisor.FirmName = request.FirmName
	}
	if request.PhoneNumber != "" {
		advisor.PhoneNumber = request.PhoneNumber
	}

	if err := db.Save(&advisor).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}

	c.JSON(http.StatusOK, advisor)
}

// UploadAvatar replaces the advisor's profile picture
func UploadAvatar(c *gin.Context) {
	advisorID := auth.AdvisorID(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		handleError(c, http.StatusBadRequest, "Avatar file is required", err)
		return
	}
	defer file.Close()

	imageService, err := services.NewImageService()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Image service unavailable", err)
		return
	}

	if err := imageService.ValidateUploadSize(file, 5<<20); err != nil {
		handleError(c, http.StatusBadRequest, "Avatar must be 5MB or smaller", err)
		return
	}

	avatarURL, err := imageService.UploadAvatar(file, header.Filename, advisorID)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to upload avatar", err)
		return
	}

	db := database.GetDB()
	if err := db.Model(&models.Advisor{}).Where("id = ?", advisorID).Update("avatar_url", avatarURL).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to save avatar", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": avatarURL})
}

// GetLoginHistory returns the advisor's recent sign-ins
func GetLoginHistory(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var logs []models.LoginLog
	if err := db.Where("advisor_id = ?", advisorID).Order("timestamp DESC").Limit(20).Find(&logs).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch login history", err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
