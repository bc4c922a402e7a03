package handlers

import (
	"errors"
	"net/http"

	"saarthi/internal/auth"
	"saarthi/internal/database"
	"saarthi/internal/models"
	"saarthi/internal/reminders"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetTemplates lists the advisor's message templates
func GetTemplates(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var templates []models.MessageTemplate
	if err := db.Where("advisor_id = ?", advisorID).Order("category ASC").Find(&templates).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch templates", err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

// UpsertTemplate saves the advisor's template for one category, replacing any
// previous text
func UpsertTemplate(c *gin.Context) {
	var request models.UpsertTemplateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	category, err := reminders.ParseCategory(request.Category)
	if err != nil {
		handleError(c, http.StatusBadRequest, "Unknown category", err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var template models.MessageTemplate
	err = db.Where("advisor_id = ? AND category = ?", advisorID, category).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		template = models.MessageTemplate{
			AdvisorID:       advisorID,
			Category:        category,
			Name:            request.Name,
			TemplateMessage: request.TemplateMessage,
		}
		if err := db.Create(&template).Error; err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to save template", err)
			return
		}
		c.JSON(http.StatusCreated, template)
		return
	}
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to save template", err)
		return
	}

	template.Name = request.Name
	template.TemplateMessage = request.TemplateMessage
	if err := db.Save(&template).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to save template", err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteTemplate removes the advisor's template for one category
func DeleteTemplate(c *gin.Context) {
	category, err := reminders.ParseCategory(c.Param("category"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Unknown category", err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	result := db.Where("advisor_id = ? AND category = ?", advisorID, category).Delete(&models.MessageTemplate{})
	if result.Error != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete template", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		handleError(c, http.StatusNotFound, "Template not found", gorm.ErrRecordNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}
